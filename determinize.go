package automata

// ToDFA determinizes nfa by subset construction. Only the DFA states reachable from the
// closure of the start state are built; an empty move emits no transition, so the result may
// be partial. Each DFA state is named after its NFA members in declaration order.
//
// Worst case complexity: exponential in the number of NFA states. The construction fails with
// StateSpaceTooLargeError once it would create more states than WithMaxStates allows.
func ToDFA(nfa Automaton, opts ...Option) (*Result, error) {
	o := newOptions(opts...)

	c, err := compile(nfa, true)
	if err != nil {
		return nil, err
	}
	return newSubsetConstruction(c, o).run()
}

// subsetConstruction holds the transient state of one ToDFA call.
type subsetConstruction struct {
	nfa *compiled

	maxStates int

	// sets interns canonical NFA state sets. Each frozen set carries its DFA state.
	sets *HashMap[*FrozenIntSet]

	// worklist holds DFA states whose transitions are not computed yet, in creation order.
	worklist []*FrozenIntSet

	b     *tableBuilder
	names []StateID
	namer *namer
	trace *tracer
}

func newSubsetConstruction(nfa *compiled, o *options) *subsetConstruction {
	return &subsetConstruction{
		nfa:       nfa,
		maxStates: o.maxStates,
		sets:      NewHashMap[*FrozenIntSet](WithCapacity(nfa.t.numStates())),
		b:         newTableBuilder(nfa.t.numStates(), nfa.t.numTransitions()),
		namer:     newNamer(),
		trace:     newTracer(o.trace),
	}
}

func (sc *subsetConstruction) run() (*Result, error) {
	t := sc.nfa.t

	initial := NewStateSet(t.numStates())
	initial.Add(t.start)
	sc.closure(initial)

	start, err := sc.intern(initial)
	if err != nil {
		return nil, err
	}

	for len(sc.worklist) > 0 {
		set := sc.worklist[0]
		sc.worklist = sc.worklist[1:]

		s, members := set.State(), set.GetArray()
		for label := 0; label < t.numLabels; label++ {
			moved := t.move(members, label)
			if moved.Empty() {
				continue
			}
			sc.closure(moved)

			dest, err := sc.intern(moved)
			if err != nil {
				return nil, err
			}
			sc.b.addTransition(s, label, dest)

			sym := sc.nfa.alphabet[label]
			sc.trace.add(TransitionAdded, Payload{
				From:   []StateID{sc.names[s]},
				Symbol: sym,
				State:  sc.names[dest],
			}, "δ(%s, %s) = %s", sc.names[s], sym, sc.names[dest])
		}
	}

	dfa := sc.b.finish(start, t.numLabels)
	return &Result{
		Automaton: describe(dfa, sc.names, sc.nfa.alphabet),
		Steps:     sc.trace.result(),
	}, nil
}

// closure extends set to its epsilon closure and records the step.
func (sc *subsetConstruction) closure(set *StateSet) {
	from := memberNames(set.GetArray(), sc.nfa.names)
	sc.nfa.t.closure(set)
	members := memberNames(set.GetArray(), sc.nfa.names)

	sc.trace.add(ClosureComputed, Payload{
		From:    from,
		Members: members,
	}, "ε-closure(%s) = %s", formatSet(from), formatSet(members))
}

// intern returns the DFA state for set, creating it if the set was not seen before.
func (sc *subsetConstruction) intern(set *StateSet) (int, error) {
	if frozen, ok := sc.sets.Get(set); ok {
		state := frozen.State()
		sc.trace.add(StateReused, Payload{
			State: sc.names[state],
		}, "%s already exists", sc.names[state])
		return state, nil
	}

	if sc.sets.Size() >= sc.maxStates {
		return -1, &StateSpaceTooLargeError{Limit: sc.maxStates}
	}

	state := sc.b.createState()
	frozen := set.Freeze(state)
	sc.sets.Set(frozen, frozen)
	sc.worklist = append(sc.worklist, frozen)

	accept := set.bits.IntersectionCardinality(sc.nfa.t.isAccept) > 0
	sc.b.setAccept(state, accept)

	name := sc.namer.unique(setName(frozen.GetArray(), sc.nfa.names))
	sc.names = append(sc.names, name)

	kind := "non-accepting"
	if accept {
		kind = "accepting"
	}
	sc.trace.add(StateCreated, Payload{
		State:   name,
		Members: memberNames(frozen.GetArray(), sc.nfa.names),
	}, "new %s state %s", kind, name)
	return state, nil
}
