package automata

import (
	"slices"
	"strconv"
)

// Automata builds small automata over a fixed alphabet.
type Automata struct {
	Alphabet []Symbol
}

// MakeEmpty returns a (deterministic) automaton with the empty language.
func (m *Automata) MakeEmpty() Automaton {
	return Automaton{
		States:   []State{{ID: "q0", Start: true}},
		Alphabet: slices.Clone(m.Alphabet),
	}
}

// MakeEmptyString returns a (deterministic) automaton that accepts only the empty string.
func (m *Automata) MakeEmptyString() Automaton {
	return Automaton{
		States:   []State{{ID: "q0", Start: true, Accept: true}},
		Alphabet: slices.Clone(m.Alphabet),
	}
}

// MakeAnyString returns a (deterministic) automaton that accepts all strings.
func (m *Automata) MakeAnyString() Automaton {
	a := m.MakeEmptyString()
	for _, sym := range m.Alphabet {
		a.Transitions = append(a.Transitions, Transition{From: "q0", Symbol: sym, To: "q0"})
	}
	return a
}

// MakeString returns a (deterministic) automaton that accepts exactly word.
func (m *Automata) MakeString(word []Symbol) (Automaton, error) {
	a := Automaton{Alphabet: slices.Clone(m.Alphabet)}
	for i := 0; i <= len(word); i++ {
		a.States = append(a.States, State{
			ID:     stateName(i),
			Start:  i == 0,
			Accept: i == len(word),
		})
	}
	for i, sym := range word {
		if !slices.Contains(m.Alphabet, sym) {
			return Automaton{}, &UnknownSymbolError{Symbol: sym}
		}
		a.Transitions = append(a.Transitions, Transition{From: stateName(i), Symbol: sym, To: stateName(i + 1)})
	}
	return a, nil
}

func stateName(i int) StateID {
	return StateID("q" + strconv.Itoa(i))
}
