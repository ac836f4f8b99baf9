package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/geange/automata"
	"github.com/geange/automata/internal/config"
	"github.com/geange/automata/internal/loader"
	"github.com/geange/automata/internal/render"
)

const appName = "automata"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Version is reported by --version.
var Version = "dev"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// cfg is resolved by the root command before any subcommand runs.
	cfg config.Config

	configPath string
	output     string
	outPath    string
	trace      bool
	maxStates  int
}

// New creates a CLI logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Automata converts NFAs to DFAs and minimizes them",
		Long: `Automata reads finite automata from YAML, TOML or JSON files, converts NFAs to DFAs
by subset construction, minimizes DFAs by partition refinement, and shows every step.`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "TOML config file")
	flags.StringVarP(&c.output, "output", "o", c.cfg.Output, "output format: "+strings.Join(config.Outputs, ", "))
	flags.StringVar(&c.outPath, "out", "", "write the result to this file instead of stdout")
	flags.BoolVar(&c.trace, "trace", c.cfg.Trace, "show the conversion steps")
	flags.IntVar(&c.maxStates, "max-states", c.cfg.MaxStates, "maximum number of DFA states")

	root.AddCommand(c.determinizeCommand())
	root.AddCommand(c.minimizeCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.closureCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.equivCommand())
	root.AddCommand(c.dotCommand())

	return root
}

// setup resolves the configuration (defaults, then --config, then explicit flags) and
// attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		c.Logger.Debug("loaded config", "path", c.configPath)
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = c.output
	}
	if flags.Changed("trace") {
		cfg.Trace = c.trace
	}
	if flags.Changed("max-states") {
		cfg.MaxStates = c.maxStates
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

func (c *CLI) loadOptions() loader.Options {
	return loader.Options{EpsilonAliases: c.cfg.EpsilonAliases}
}

// load reads one automaton file.
func (c *CLI) load(ctx context.Context, path string) (automata.Automaton, error) {
	a, err := loader.Load(path, c.loadOptions())
	if err != nil {
		return automata.Automaton{}, err
	}
	loggerFromContext(ctx).Debug("loaded automaton",
		"path", path,
		"states", len(a.States),
		"symbols", len(a.Alphabet),
		"transitions", len(a.Transitions))
	return a, nil
}

// emit writes res in the configured output format, to --out or to the command output.
func (c *CLI) emit(cmd *cobra.Command, res *automata.Result) error {
	data, err := c.format(cmd.Context(), res)
	if err != nil {
		return err
	}

	if c.outPath == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(c.outPath, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	printSuccess(cmd.ErrOrStderr(), "Wrote %s", c.cfg.Output)
	printFile(cmd.ErrOrStderr(), c.outPath)
	return nil
}

func (c *CLI) format(ctx context.Context, res *automata.Result) ([]byte, error) {
	switch c.cfg.Output {
	case config.OutputTable:
		var b strings.Builder
		b.WriteString(render.Table(res.Automaton))
		b.WriteString("\n")
		if len(res.Steps) > 0 {
			b.WriteString(render.Steps(res.Steps))
			b.WriteString("\n")
		}
		return []byte(b.String()), nil
	case config.OutputJSON, config.OutputYAML, config.OutputTOML:
		format := loader.Format(c.cfg.Output)
		if len(res.Steps) > 0 {
			return loader.EncodeResult(res, format)
		}
		return loader.Encode(res.Automaton, format)
	case config.OutputDOT:
		return []byte(automata.ToDOT(res.Automaton)), nil
	case config.OutputSVG:
		return render.SVG(ctx, automata.ToDOT(res.Automaton))
	}
	return nil, fmt.Errorf("invalid output %q", c.cfg.Output)
}
