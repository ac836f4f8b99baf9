// Package render draws automata and conversion traces for the terminal and as SVG.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-graphviz"

	"github.com/geange/automata"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleStart  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleAccept = lipgloss.NewStyle().Foreground(colorGreen)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
)

const (
	markStart  = "→"
	markAccept = "*"
	noTarget   = "-"
)

// Table draws the transition table of a: one row per state, one column per symbol, plus an
// ε column when a has epsilon moves. The first column marks the start state with → and
// accept states with *.
func Table(a automata.Automaton) string {
	symbols := append([]automata.Symbol{}, a.Alphabet...)
	for _, t := range a.Transitions {
		if t.Symbol == automata.Epsilon {
			symbols = append(symbols, automata.Epsilon)
			break
		}
	}

	targets := make(map[automata.StateID]map[automata.Symbol][]string, len(a.States))
	for _, t := range a.Transitions {
		row, ok := targets[t.From]
		if !ok {
			row = make(map[automata.Symbol][]string)
			targets[t.From] = row
		}
		row[t.Symbol] = append(row[t.Symbol], string(t.To))
	}

	headers := []string{"", "state"}
	for _, sym := range symbols {
		headers = append(headers, string(sym))
	}

	rows := make([][]string, 0, len(a.States))
	for _, s := range a.States {
		mark := ""
		if s.Start {
			mark += markStart
		}
		if s.Accept {
			mark += markAccept
		}
		row := []string{mark, string(s.ID)}
		for _, sym := range symbols {
			cell := noTarget
			if to := targets[s.ID][sym]; len(to) > 0 {
				cell = strings.Join(to, ", ")
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			if col == 1 && row < len(a.States) {
				switch s := a.States[row]; {
				case s.Start:
					return styleStart.Padding(0, 1)
				case s.Accept:
					return styleAccept.Padding(0, 1)
				}
			}
			return styleCell
		})
	return t.Render()
}

// Steps draws a numbered trace, one step per row.
func Steps(steps []automata.Step) string {
	rows := make([][]string, len(steps))
	for i, s := range steps {
		rows[i] = []string{strconv.Itoa(i + 1), s.Kind.String(), s.Description}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "kind", "step").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return styleCell
		})
	return t.Render()
}

// SVG lays out a DOT graph with Graphviz and returns the SVG document.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
