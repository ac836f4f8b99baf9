package automata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimize(t *testing.T) {
	t.Run("five states", func(t *testing.T) {
		res, err := Minimize(fiveStateDFA())
		require.NoError(t, err)

		want := Automaton{
			States: []State{
				{ID: "{q0,q1}", Start: true},
				{ID: "{q2,q3}", Accept: true},
				{ID: "q4"},
			},
			Alphabet: []Symbol{"0", "1"},
			Transitions: []Transition{
				{From: "{q0,q1}", Symbol: "0", To: "{q0,q1}"},
				{From: "{q0,q1}", Symbol: "1", To: "{q2,q3}"},
				{From: "{q2,q3}", Symbol: "0", To: "q4"},
				{From: "{q2,q3}", Symbol: "1", To: "{q0,q1}"},
				{From: "q4", Symbol: "0", To: "q4"},
				{From: "q4", Symbol: "1", To: "q4"},
			},
		}
		assert.Equal(t, want, res.Automaton)

		same, _, err := Equivalent(fiveStateDFA(), res.Automaton)
		require.NoError(t, err)
		assert.True(t, same)
	})

	t.Run("single accepting state", func(t *testing.T) {
		dfa := Automaton{
			States:      []State{{ID: "only", Start: true, Accept: true}},
			Alphabet:    []Symbol{"a", "b"},
			Transitions: []Transition{{From: "only", Symbol: "a", To: "only"}},
		}
		res, err := Minimize(dfa)
		require.NoError(t, err)
		assert.Equal(t, dfa, res.Automaton)
	})

	t.Run("single rejecting state", func(t *testing.T) {
		dfa := Automaton{
			States:      []State{{ID: "only", Start: true}},
			Alphabet:    []Symbol{"a"},
			Transitions: []Transition{{From: "only", Symbol: "a", To: "only"}},
		}
		res, err := Minimize(dfa)
		require.NoError(t, err)
		assert.Equal(t, dfa, res.Automaton)
	})

	t.Run("unreachable states are dropped", func(t *testing.T) {
		dfa := fiveStateDFA()
		dfa.States = append(dfa.States, State{ID: "lost", Accept: true})
		dfa.Transitions = append(dfa.Transitions, Transition{From: "lost", Symbol: "0", To: "q0"})

		res, err := Minimize(dfa)
		require.NoError(t, err)
		assert.Len(t, res.Automaton.States, 3)
		_, ok := res.Automaton.State("lost")
		assert.False(t, ok)
	})

	t.Run("explicit dead state merges with missing transitions", func(t *testing.T) {
		dfa := Automaton{
			States: []State{
				{ID: "s", Start: true},
				{ID: "x", Accept: true},
				{ID: "dead"},
				{ID: "y", Accept: true},
			},
			Alphabet: []Symbol{"a", "b"},
			Transitions: []Transition{
				{From: "s", Symbol: "a", To: "x"},
				{From: "s", Symbol: "b", To: "y"},
				{From: "x", Symbol: "a", To: "dead"},
				{From: "dead", Symbol: "a", To: "dead"},
				{From: "dead", Symbol: "b", To: "dead"},
			},
		}

		res, err := Minimize(dfa)
		require.NoError(t, err)
		assert.Equal(t, []State{
			{ID: "s", Start: true},
			{ID: "{x,y}", Accept: true},
			{ID: "dead"},
		}, res.Automaton.States)
		assert.Equal(t, []Transition{
			{From: "s", Symbol: "a", To: "{x,y}"},
			{From: "s", Symbol: "b", To: "{x,y}"},
			{From: "{x,y}", Symbol: "a", To: "dead"},
			{From: "dead", Symbol: "a", To: "dead"},
			{From: "dead", Symbol: "b", To: "dead"},
		}, res.Automaton.Transitions)
	})
}

func TestMinimizeTrace(t *testing.T) {
	res, err := Minimize(fiveStateDFA())
	require.NoError(t, err)
	require.Len(t, res.Steps, 3)

	assert.Equal(t, PartitionSplit, res.Steps[0].Kind)
	assert.Equal(t, [][]StateID{{"q0", "q1", "q4"}, {"q2", "q3"}}, res.Steps[0].Payload.Blocks)

	assert.Equal(t, PartitionSplit, res.Steps[1].Kind)
	assert.Equal(t, "round 1: {q0,q1,q4} splits into {q0,q1} {q4}", res.Steps[1].Description)
	assert.Equal(t, 1, res.Steps[1].Payload.Iteration)

	assert.Equal(t, PartitionStable, res.Steps[2].Kind)
	assert.Equal(t, [][]StateID{{"q0", "q1"}, {"q2", "q3"}, {"q4"}}, res.Steps[2].Payload.Blocks)
	assert.Equal(t, 2, res.Steps[2].Payload.Iteration)
}

func TestMinimizeErrors(t *testing.T) {
	t.Run("epsilon move", func(t *testing.T) {
		dfa := fiveStateDFA()
		dfa.Transitions = append(dfa.Transitions, Transition{From: "q4", Symbol: Epsilon, To: "q0"})

		_, err := Minimize(dfa)
		var unknown *UnknownSymbolError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, Epsilon, unknown.Symbol)
	})

	t.Run("nondeterministic", func(t *testing.T) {
		_, err := Minimize(endsWithAB())
		var nondet *NondeterministicError
		require.ErrorAs(t, err, &nondet)
		assert.Equal(t, StateID("q0"), nondet.State)
		assert.Equal(t, Symbol("a"), nondet.Symbol)
	})

	t.Run("unknown state", func(t *testing.T) {
		dfa := fiveStateDFA()
		dfa.Transitions[0].To = "q7"

		_, err := Minimize(dfa)
		var unknown *UnknownStateError
		require.ErrorAs(t, err, &unknown)
	})

	t.Run("no start state", func(t *testing.T) {
		dfa := fiveStateDFA()
		dfa.States[0].Start = false

		_, err := Minimize(dfa)
		var noStart *NoStartStateError
		require.ErrorAs(t, err, &noStart)
	})
}

// distinguishable reports whether some word of length at most maxLen is accepted from exactly
// one of p and q.
func distinguishable(dfa Automaton, p, q StateID, maxLen int) bool {
	for _, w := range words(dfa.Alphabet, maxLen) {
		if walk(dfa, p, w) != walk(dfa, q, w) {
			return true
		}
	}
	return false
}

func TestMinimizeProperties(t *testing.T) {
	r := newRand()
	alphabet := []Symbol{"a", "b"}

	for i := 0; i < 40; i++ {
		dfa := randomDFA(r, 6, alphabet)

		res, err := Minimize(dfa)
		require.NoError(t, err)
		minimal := res.Automaton
		require.NoError(t, minimal.ValidateDFA())

		for _, w := range words(alphabet, 6) {
			assert.Equal(t, walk(dfa, startOf(dfa), w), walk(minimal, startOf(minimal), w), "dfa %d word %v", i, w)
		}

		for x := 0; x < len(minimal.States); x++ {
			for y := x + 1; y < len(minimal.States); y++ {
				p, q := minimal.States[x].ID, minimal.States[y].ID
				assert.True(t, distinguishable(minimal, p, q, len(minimal.States)+1),
					"dfa %d: %s and %s are equivalent", i, p, q)
			}
		}

		again, err := Minimize(minimal)
		require.NoError(t, err)
		assert.Len(t, again.Automaton.States, len(minimal.States))
	}
}

func TestConvertPipeline(t *testing.T) {
	r := newRand()
	for i := 0; i < 20; i++ {
		nfa := randomNFA(r, 5, []Symbol{"a", "b"}, true)

		dfa, err := ToDFA(nfa)
		require.NoError(t, err)
		minimal, err := Minimize(dfa.Automaton)
		require.NoError(t, err)

		assert.LessOrEqual(t, len(minimal.Automaton.States), len(dfa.Automaton.States))
		same, word, err := Equivalent(nfa, minimal.Automaton)
		require.NoError(t, err)
		assert.True(t, same, "nfa %d differs on %v", i, word)
	}
}
