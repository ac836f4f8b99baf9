// Package cli implements the automata command-line interface.
//
// Commands read automaton descriptions with the loader package, run one engine operation
// and print the result in the configured output format.
//
// # Commands
//
//   - determinize: subset construction (NFA to DFA)
//   - minimize: partition refinement of a DFA
//   - convert: determinize then minimize
//   - closure: epsilon closure of a set of states
//   - run: match words against an automaton
//   - equiv: check that two automata accept the same language
//   - dot: export an automaton as Graphviz DOT or SVG
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at the given level, with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of one operation.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Determinized into 4 states (2ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
