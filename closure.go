package automata

// EpsilonClosure returns the states reachable from states using only epsilon moves, states
// included, in declaration order. It fails with UnknownStateError if an id is not declared
// by nfa. An empty input gives an empty closure.
func EpsilonClosure(nfa Automaton, states []StateID) ([]StateID, error) {
	c, err := compile(nfa, true)
	if err != nil {
		return nil, err
	}
	ids, err := c.lookup(states)
	if err != nil {
		return nil, err
	}

	set := NewStateSet(c.t.numStates())
	for _, s := range ids {
		set.Add(s)
	}
	c.t.closure(set)
	return memberNames(set.GetArray(), c.names), nil
}

// closure adds to set every state reachable from it through epsilon moves. Each state is
// expanded at most once: it is queued only when first added to the set.
func (t *table) closure(set *StateSet) *StateSet {
	worklist := set.GetArray()
	for len(worklist) > 0 {
		s := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		lo, hi := t.labelRange(s, epsilonLabel)
		for i := lo; i < hi; i++ {
			if d := t.destAt(i); !set.Contains(d) {
				set.Add(d)
				worklist = append(worklist, d)
			}
		}
	}
	return set
}

// move returns the states reached from members on label, before closure.
func (t *table) move(members []int, label int) *StateSet {
	moved := NewStateSet(t.numStates())
	for _, s := range members {
		lo, hi := t.labelRange(s, label)
		for i := lo; i < hi; i++ {
			moved.Add(t.destAt(i))
		}
	}
	return moved
}
