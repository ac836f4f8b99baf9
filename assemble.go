package automata

import "slices"

// memberNames maps sorted state indexes to their ids.
func memberNames(members []int, names []StateID) []StateID {
	ids := make([]StateID, len(members))
	for i, m := range members {
		ids[i] = names[m]
	}
	return ids
}

// setName names a DFA state after its NFA members, e.g. "{q0,q1}".
func setName(members []int, names []StateID) StateID {
	return StateID(formatSet(memberNames(members, names)))
}

// blockName names a minimized state: a single member keeps its own id, a larger block is
// named after all of its members.
func blockName(members []int, names []StateID) StateID {
	if len(members) == 1 {
		return names[members[0]]
	}
	return setName(members, names)
}

// namer hands out state ids, appending primes to ids already taken so that a generated
// name can never shadow another one that happens to look the same.
type namer struct {
	seen map[StateID]struct{}
}

func newNamer() *namer {
	return &namer{seen: make(map[StateID]struct{})}
}

func (n *namer) unique(id StateID) StateID {
	for {
		if _, ok := n.seen[id]; !ok {
			break
		}
		id += "'"
	}
	n.seen[id] = struct{}{}
	return id
}

// describe turns a finished table into an Automaton description. States keep their index
// order and transitions are listed per state in alphabet order.
func describe(t *table, names []StateID, alphabet []Symbol) Automaton {
	a := Automaton{
		States:      make([]State, t.numStates()),
		Alphabet:    slices.Clone(alphabet),
		Transitions: make([]Transition, 0, t.numTransitions()),
	}

	e := &edge{}
	for s := 0; s < t.numStates(); s++ {
		a.States[s] = State{
			ID:     names[s],
			Start:  s == t.start,
			Accept: t.accepts(s),
		}

		count := t.initEdge(s, e)
		for i := 0; i < count; i++ {
			t.nextEdge(e)
			symbol := Epsilon
			if e.Label != epsilonLabel {
				symbol = alphabet[e.Label]
			}
			a.Transitions = append(a.Transitions, Transition{
				From:   names[s],
				Symbol: symbol,
				To:     names[e.Dest],
			})
		}
	}
	return a
}
