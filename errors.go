package automata

import "fmt"

// NoStartStateError is returned when an automaton does not have exactly one start state.
type NoStartStateError struct {
	// Count is the number of states flagged as start.
	Count int
}

func (e *NoStartStateError) Error() string {
	if e.Count == 0 {
		return "automata: automaton has no start state"
	}
	return fmt.Sprintf("automata: automaton has %d start states, want exactly one", e.Count)
}

// UnknownStateError is returned when a transition or a closure request references a state
// that is not declared by the automaton.
type UnknownStateError struct {
	State StateID
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("automata: unknown state %q", e.State)
}

// UnknownSymbolError is returned when a transition uses a symbol outside the declared
// alphabet, when the alphabet lists epsilon, or when a DFA transition uses epsilon.
type UnknownSymbolError struct {
	Symbol Symbol
	// State is the source state of the offending transition, empty for alphabet errors.
	State StateID
}

func (e *UnknownSymbolError) Error() string {
	if e.State == "" {
		return fmt.Sprintf("automata: symbol %q not allowed in alphabet", e.Symbol)
	}
	return fmt.Sprintf("automata: unknown symbol %q on transition from %q", e.Symbol, e.State)
}

// DuplicateStateError is returned when two states share one id.
type DuplicateStateError struct {
	State StateID
}

func (e *DuplicateStateError) Error() string {
	return fmt.Sprintf("automata: state %q declared more than once", e.State)
}

// NondeterministicError is returned when an automaton passed as a DFA has more than one
// target for a (state, symbol) pair.
type NondeterministicError struct {
	State  StateID
	Symbol Symbol
}

func (e *NondeterministicError) Error() string {
	return fmt.Sprintf("automata: state %q has several transitions on %q", e.State, e.Symbol)
}

// RefinementDidNotConvergeError is returned when partition refinement runs more rounds
// than the automaton has states. It points at a bug, not at bad input.
type RefinementDidNotConvergeError struct {
	Iterations int
}

func (e *RefinementDidNotConvergeError) Error() string {
	return fmt.Sprintf("automata: partition refinement did not converge after %d iterations", e.Iterations)
}

// StateSpaceTooLargeError is returned when subset construction would create more DFA
// states than the configured ceiling.
type StateSpaceTooLargeError struct {
	Limit int
}

func (e *StateSpaceTooLargeError) Error() string {
	return fmt.Sprintf("automata: subset construction exceeds the limit of %d states", e.Limit)
}
