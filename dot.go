package automata

import (
	"bytes"
	"fmt"
	"strings"
)

// ToDOT renders a in the Graphviz DOT language. Accept states are drawn as double circles,
// the start state gets an arrow from an invisible point, and parallel transitions between two
// states share one edge whose label lists their symbols.
func ToDOT(a Automaton) string {
	var buf bytes.Buffer
	buf.WriteString("digraph automaton {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=circle, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")
	buf.WriteString("  __start [shape=point, style=invis];\n")

	for _, s := range a.States {
		shape := "circle"
		if s.Accept {
			shape = "doublecircle"
		}
		fmt.Fprintf(&buf, "  %q [shape=%s];\n", s.ID, shape)
	}
	for _, s := range a.States {
		if s.Start {
			fmt.Fprintf(&buf, "  __start -> %q;\n", s.ID)
		}
	}

	type pair struct{ from, to StateID }
	var order []pair
	labels := make(map[pair][]string)
	for _, t := range a.Transitions {
		p := pair{t.From, t.To}
		if _, ok := labels[p]; !ok {
			order = append(order, p)
		}
		labels[p] = append(labels[p], string(t.Symbol))
	}

	buf.WriteString("\n")
	for _, p := range order {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", p.from, p.to, strings.Join(labels[p], ","))
	}

	buf.WriteString("}\n")
	return buf.String()
}
