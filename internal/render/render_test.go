package render

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geange/automata"
)

func epsilonNFA() automata.Automaton {
	return automata.Automaton{
		States: []automata.State{
			{ID: "p", Start: true},
			{ID: "q"},
			{ID: "r", Accept: true},
		},
		Alphabet: []automata.Symbol{"a", "b"},
		Transitions: []automata.Transition{
			{From: "p", Symbol: "a", To: "p"},
			{From: "p", Symbol: "a", To: "q"},
			{From: "q", Symbol: automata.Epsilon, To: "r"},
			{From: "r", Symbol: "b", To: "p"},
		},
	}
}

func lineWith(t *testing.T, out, needle string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, needle) {
			return line
		}
	}
	t.Fatalf("no line contains %q in\n%s", needle, out)
	return ""
}

func TestTable(t *testing.T) {
	out := Table(epsilonNFA())

	header := lineWith(t, out, "state")
	assert.Contains(t, header, "ε")

	p := lineWith(t, out, "p, q")
	assert.Contains(t, p, markStart)

	r := lineWith(t, out, markAccept)
	assert.Contains(t, r, " r ")
	assert.Contains(t, r, noTarget)
}

func TestTableWithoutEpsilon(t *testing.T) {
	dfa := automata.Automaton{
		States:      []automata.State{{ID: "only", Start: true, Accept: true}},
		Alphabet:    []automata.Symbol{"x"},
		Transitions: []automata.Transition{{From: "only", Symbol: "x", To: "only"}},
	}
	out := Table(dfa)

	assert.NotContains(t, out, "ε")
	assert.Contains(t, lineWith(t, out, "only"), markStart+markAccept)
}

func TestSteps(t *testing.T) {
	res, err := automata.ToDFA(epsilonNFA())
	require.NoError(t, err)

	out := Steps(res.Steps)
	assert.Contains(t, out, "ClosureComputed")
	assert.Contains(t, lineWith(t, out, "new accepting state"), "StateCreated")
	assert.Contains(t, out, "δ({p}, a) = {p,q,r}")
}

func TestSVG(t *testing.T) {
	svg, err := SVG(context.Background(), automata.ToDOT(epsilonNFA()))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "<title>r</title>")
}
