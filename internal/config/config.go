// Package config holds the settings shared by every automata command.
//
// Settings come from three layers, later ones winning: the built-in defaults of [Default],
// an optional TOML file read by [Load], and command-line flags applied by the caller.
//
//	max_states = 5000
//	output = "yaml"
//	trace = true
//	epsilon_aliases = ["eps", "_"]
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/geange/automata"
)

// Output formats understood by the CLI.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputTOML  = "toml"
	OutputDOT   = "dot"
	OutputSVG   = "svg"
)

// Outputs lists the valid values of Config.Output.
var Outputs = []string{OutputTable, OutputJSON, OutputYAML, OutputTOML, OutputDOT, OutputSVG}

// DefaultEpsilonAliases are the spellings accepted for an epsilon move in input files,
// besides automata.Epsilon itself.
var DefaultEpsilonAliases = []string{"eps", "epsilon", "λ"}

// Config is the resolved configuration of one run.
type Config struct {
	// MaxStates caps subset construction.
	MaxStates int `toml:"max_states"`
	// Output is one of Outputs.
	Output string `toml:"output"`
	// Trace prints the conversion steps along with the result.
	Trace bool `toml:"trace"`
	// EpsilonAliases are read as epsilon in transition symbols.
	EpsilonAliases []string `toml:"epsilon_aliases"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxStates:      automata.DefaultMaxStates,
		Output:         OutputTable,
		EpsilonAliases: slices.Clone(DefaultEpsilonAliases),
	}
}

// Load reads a TOML file over the defaults. Keys the file sets replace the default value,
// the others keep it. Unknown keys are an error so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if c.MaxStates < 1 {
		return fmt.Errorf("max_states must be positive, got %d", c.MaxStates)
	}
	if !slices.Contains(Outputs, c.Output) {
		return fmt.Errorf("invalid output %q (must be one of %s)", c.Output, strings.Join(Outputs, ", "))
	}
	return nil
}

// Options converts the configuration to engine options.
func (c Config) Options() []automata.Option {
	opts := []automata.Option{automata.WithMaxStates(c.MaxStates)}
	if !c.Trace {
		opts = append(opts, automata.WithoutTrace())
	}
	return opts
}
