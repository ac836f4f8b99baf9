package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geange/automata"
	"github.com/geange/automata/internal/config"
)

func (c *CLI) closureCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "closure [file] [state...]",
		Short: "Print the epsilon closure of a set of states",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nfa, err := c.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			states := make([]automata.StateID, len(args)-1)
			for i, s := range args[1:] {
				states[i] = automata.StateID(s)
			}
			closure, err := automata.EpsilonClosure(nfa, states)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ε-closure(%s) = %s\n", joinStates(states), joinStates(closure))
			return nil
		},
	}
}

func joinStates(ids []automata.StateID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// splitWord turns a command-line word into symbols: one per rune, or the pieces between
// sep when sep is set.
func splitWord(word, sep string) []automata.Symbol {
	if sep == "" {
		return automata.Symbols(word)
	}
	symbols := []automata.Symbol{}
	if word == "" {
		return symbols
	}
	for _, s := range strings.Split(word, sep) {
		symbols = append(symbols, automata.Symbol(s))
	}
	return symbols
}

func (c *CLI) runCommand() *cobra.Command {
	var sep string

	cmd := &cobra.Command{
		Use:   "run [file] [word...]",
		Short: "Report which words the automaton accepts",
		Long: `Run matches each word against the automaton. A word is split into one symbol per
character unless --sep is given. Pass "" for the empty word.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rejected := 0
			for _, word := range args[1:] {
				ok, err := automata.Accepts(a, splitWord(word, sep))
				if err != nil {
					return fmt.Errorf("word %q: %w", word, err)
				}
				if ok {
					printSuccess(out, "%q accepted", word)
				} else {
					printError(out, "%q rejected", word)
					rejected++
				}
			}
			printInfo(out, "%d of %d words accepted", len(args)-1-rejected, len(args)-1)
			return nil
		},
	}

	cmd.Flags().StringVar(&sep, "sep", "", "symbol separator inside words (default: one symbol per character)")
	return cmd
}

func (c *CLI) equivCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "equiv [file] [file]",
		Short: "Check that two automata accept the same language",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			b, err := c.load(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			same, word, err := automata.Equivalent(a, b, c.cfg.Options()...)
			if err != nil {
				return err
			}
			if !same {
				return fmt.Errorf("not equivalent: %q is accepted by only one of them", symbolsString(word))
			}
			printSuccess(cmd.OutOrStdout(), "%s and %s accept the same language", args[0], args[1])
			return nil
		},
	}
}

func symbolsString(word []automata.Symbol) string {
	var b strings.Builder
	for _, s := range word {
		b.WriteString(string(s))
	}
	return b.String()
}

func (c *CLI) dotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dot [file]",
		Short: "Export an automaton as Graphviz DOT, or as SVG with -o svg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if c.cfg.Output != config.OutputSVG {
				c.cfg.Output = config.OutputDOT
			}
			return c.emit(cmd, &automata.Result{Automaton: a})
		},
	}
}
