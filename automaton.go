package automata

import "slices"

// Symbol is one letter of an alphabet.
type Symbol string

// Epsilon labels an empty-string move. It may only appear on NFA transitions and is never
// part of an alphabet.
const Epsilon Symbol = "ε"

// StateID names a state. Ids are unique within one automaton.
type StateID string

// State is one state of an automaton description.
type State struct {
	ID     StateID `json:"id" yaml:"id" toml:"id"`
	Start  bool    `json:"start,omitempty" yaml:"start,omitempty" toml:"start,omitempty"`
	Accept bool    `json:"accept,omitempty" yaml:"accept,omitempty" toml:"accept,omitempty"`
}

// Transition is a labelled move between two states. Symbol may be Epsilon for an NFA.
type Transition struct {
	From   StateID `json:"from" yaml:"from" toml:"from"`
	Symbol Symbol  `json:"symbol" yaml:"symbol" toml:"symbol"`
	To     StateID `json:"to" yaml:"to" toml:"to"`
}

// Automaton describes an NFA or a DFA: its states, its alphabet (without Epsilon) and its
// transitions. Exactly one state must be flagged as start. The same shape is used for the
// input and the output of every operation in this package, and no operation mutates or
// retains the value it is given.
type Automaton struct {
	States      []State      `json:"states" yaml:"states" toml:"states"`
	Alphabet    []Symbol     `json:"alphabet" yaml:"alphabet" toml:"alphabet"`
	Transitions []Transition `json:"transitions" yaml:"transitions" toml:"transitions"`
}

// StartState returns the id of the unique start state.
func (a Automaton) StartState() (StateID, error) {
	var start StateID
	count := 0
	for _, s := range a.States {
		if s.Start {
			start = s.ID
			count++
		}
	}
	if count != 1 {
		return "", &NoStartStateError{Count: count}
	}
	return start, nil
}

// State returns the state with the given id.
func (a Automaton) State(id StateID) (State, bool) {
	for _, s := range a.States {
		if s.ID == id {
			return s, true
		}
	}
	return State{}, false
}

// Clone returns a deep copy of a.
func (a Automaton) Clone() Automaton {
	return Automaton{
		States:      slices.Clone(a.States),
		Alphabet:    slices.Clone(a.Alphabet),
		Transitions: slices.Clone(a.Transitions),
	}
}

// Validate checks a as an NFA: one start state, unique state ids, known endpoints, and
// transition symbols drawn from the alphabet or Epsilon.
func (a Automaton) Validate() error {
	_, err := compile(a, true)
	return err
}

// ValidateDFA checks a as a possibly partial DFA: the NFA rules plus no epsilon moves and
// at most one target per (state, symbol).
func (a Automaton) ValidateDFA() error {
	_, err := compile(a, false)
	return err
}

// IsDeterministic reports whether a is a valid DFA.
func (a Automaton) IsDeterministic() bool {
	return a.ValidateDFA() == nil
}

// compiled ties a table to the names and symbols of the description it was built from.
type compiled struct {
	t        *table
	names    []StateID
	index    map[StateID]int
	alphabet []Symbol
	symbols  map[Symbol]int
}

func (c *compiled) label(i int) Symbol {
	if i == epsilonLabel {
		return Epsilon
	}
	return c.alphabet[i]
}

func (c *compiled) lookup(ids []StateID) ([]int, error) {
	states := make([]int, 0, len(ids))
	for _, id := range ids {
		s, ok := c.index[id]
		if !ok {
			return nil, &UnknownStateError{State: id}
		}
		states = append(states, s)
	}
	return states, nil
}

// compile validates a and converts it to its int-indexed table. States keep their
// declaration order and alphabet symbols keep their first occurrence order.
func compile(a Automaton, allowEpsilon bool) (*compiled, error) {
	c := &compiled{
		names:   make([]StateID, 0, len(a.States)),
		index:   make(map[StateID]int, len(a.States)),
		symbols: make(map[Symbol]int, len(a.Alphabet)),
	}

	b := newTableBuilder(len(a.States), len(a.Transitions))
	start, starts := -1, 0
	for _, s := range a.States {
		if _, ok := c.index[s.ID]; ok {
			return nil, &DuplicateStateError{State: s.ID}
		}
		state := b.createState()
		c.index[s.ID] = state
		c.names = append(c.names, s.ID)
		b.setAccept(state, s.Accept)
		if s.Start {
			start = state
			starts++
		}
	}
	if starts != 1 {
		return nil, &NoStartStateError{Count: starts}
	}

	for _, sym := range a.Alphabet {
		if sym == Epsilon {
			return nil, &UnknownSymbolError{Symbol: sym}
		}
		if _, ok := c.symbols[sym]; ok {
			continue
		}
		c.symbols[sym] = len(c.alphabet)
		c.alphabet = append(c.alphabet, sym)
	}

	for _, tr := range a.Transitions {
		from, ok := c.index[tr.From]
		if !ok {
			return nil, &UnknownStateError{State: tr.From}
		}
		to, ok := c.index[tr.To]
		if !ok {
			return nil, &UnknownStateError{State: tr.To}
		}

		label := epsilonLabel
		if tr.Symbol == Epsilon {
			if !allowEpsilon {
				return nil, &UnknownSymbolError{Symbol: tr.Symbol, State: tr.From}
			}
		} else if label, ok = c.symbols[tr.Symbol]; !ok {
			return nil, &UnknownSymbolError{Symbol: tr.Symbol, State: tr.From}
		}
		b.addTransition(from, label, to)
	}

	c.t = b.finish(start, len(c.alphabet))

	if !allowEpsilon && !c.t.deterministic {
		state, label := c.t.firstConflict()
		return nil, &NondeterministicError{State: c.names[state], Symbol: c.label(label)}
	}
	return c, nil
}
