package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geange/automata"
)

func (c *CLI) determinizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "determinize [file]",
		Short: "Convert an NFA to a DFA by subset construction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			nfa, err := c.load(ctx, args[0])
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			res, err := automata.ToDFA(nfa, c.cfg.Options()...)
			if err != nil {
				return fmt.Errorf("determinize: %w", err)
			}
			prog.done(fmt.Sprintf("Determinized %d states into %d", len(nfa.States), len(res.Automaton.States)))

			return c.emit(cmd, res)
		},
	}
}

func (c *CLI) minimizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "minimize [file]",
		Short: "Minimize a DFA by partition refinement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dfa, err := c.load(ctx, args[0])
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			res, err := automata.Minimize(dfa, c.cfg.Options()...)
			if err != nil {
				return fmt.Errorf("minimize: %w", err)
			}
			prog.done(fmt.Sprintf("Minimized %d states into %d", len(dfa.States), len(res.Automaton.States)))

			return c.emit(cmd, res)
		},
	}
}

func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [file]",
		Short: "Determinize an NFA, then minimize the resulting DFA",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			nfa, err := c.load(ctx, args[0])
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			dfa, err := automata.ToDFA(nfa, c.cfg.Options()...)
			if err != nil {
				return fmt.Errorf("determinize: %w", err)
			}
			logger.Debug("determinized", "states", len(dfa.Automaton.States))

			res, err := automata.Minimize(dfa.Automaton, c.cfg.Options()...)
			if err != nil {
				return fmt.Errorf("minimize: %w", err)
			}
			prog.done(fmt.Sprintf("Converted %d NFA states into %d DFA states", len(nfa.States), len(res.Automaton.States)))

			if dfa.Steps != nil {
				res.Steps = append(dfa.Steps, res.Steps...)
			}
			return c.emit(cmd, res)
		},
	}
}
