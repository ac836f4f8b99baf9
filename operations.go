package automata

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// reachable returns the states reachable from the start state, following every transition
// including epsilon moves.
func (t *table) reachable() *bitset.BitSet {
	live := bitset.New(uint(t.numStates()))
	if t.numStates() == 0 {
		return live
	}

	workList := []int{t.start}
	live.Set(uint(t.start))

	e := &edge{}
	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]

		count := t.initEdge(s, e)
		for i := 0; i < count; i++ {
			t.nextEdge(e)
			if !live.Test(uint(e.Dest)) {
				live.Set(uint(e.Dest))
				workList = append(workList, e.Dest)
			}
		}
	}
	return live
}

// restrict returns a copy of t keeping only the states in keep, renumbered in their declaration
// order, along with their names.
func (t *table) restrict(keep *bitset.BitSet, names []StateID) (*table, []StateID) {
	numStates := t.numStates()
	mp := make([]int, numStates)

	b := newTableBuilder(int(keep.Count()), t.numTransitions())
	kept := make([]StateID, 0, keep.Count())
	for s := 0; s < numStates; s++ {
		mp[s] = -1
		if keep.Test(uint(s)) {
			mp[s] = b.createState()
			b.setAccept(mp[s], t.accepts(s))
			kept = append(kept, names[s])
		}
	}

	e := &edge{}
	for s := 0; s < numStates; s++ {
		if mp[s] < 0 {
			continue
		}
		count := t.initEdge(s, e)
		for i := 0; i < count; i++ {
			t.nextEdge(e)
			if mp[e.Dest] >= 0 {
				b.addTransition(mp[s], e.Label, mp[e.Dest])
			}
		}
	}

	return b.finish(mp[t.start], t.numLabels), kept
}

// Reachable returns the states of a reachable from its start state, in declaration order.
func Reachable(a Automaton) ([]StateID, error) {
	c, err := compile(a, true)
	if err != nil {
		return nil, err
	}

	live := c.t.reachable()
	ids := make([]StateID, 0, live.Count())
	for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
		ids = append(ids, c.names[i])
	}
	return ids, nil
}

// IsEmpty reports whether a accepts no string at all.
func IsEmpty(a Automaton) (bool, error) {
	c, err := compile(a, true)
	if err != nil {
		return false, err
	}

	live := c.t.reachable()
	for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
		if c.t.accepts(int(i)) {
			return false, nil
		}
	}
	return true, nil
}

// Totalize returns a copy of dfa where every missing transition leads to a new non-accepting
// state named sink, which loops to itself on every symbol. A DFA that is already total is
// returned as a plain copy.
func Totalize(dfa Automaton, sink StateID) (Automaton, error) {
	c, err := compile(dfa, false)
	if err != nil {
		return Automaton{}, err
	}
	if _, ok := c.index[sink]; ok {
		return Automaton{}, &DuplicateStateError{State: sink}
	}

	result := dfa.Clone()
	result.Alphabet = slices.Clone(c.alphabet)

	missing := false
	for s := 0; s < c.t.numStates(); s++ {
		for label := 0; label < c.t.numLabels; label++ {
			if c.t.step(s, label) < 0 {
				missing = true
				result.Transitions = append(result.Transitions, Transition{
					From:   c.names[s],
					Symbol: c.alphabet[label],
					To:     sink,
				})
			}
		}
	}
	if !missing {
		return result, nil
	}

	result.States = append(result.States, State{ID: sink})
	for _, sym := range c.alphabet {
		result.Transitions = append(result.Transitions, Transition{From: sink, Symbol: sym, To: sink})
	}
	return result, nil
}

// Equivalent reports whether a and b accept the same language. Both are determinized over the
// union of their alphabets and walked in lockstep breadth first, so when they differ the
// returned word is a shortest string accepted by exactly one of them.
func Equivalent(a, b Automaton, opts ...Option) (bool, []Symbol, error) {
	alphabet := slices.Clone(a.Alphabet)
	for _, sym := range b.Alphabet {
		if !slices.Contains(alphabet, sym) {
			alphabet = append(alphabet, sym)
		}
	}

	opts = append(slices.Clone(opts), WithoutTrace())
	da, err := determinizeOver(a, alphabet, opts)
	if err != nil {
		return false, nil, err
	}
	db, err := determinizeOver(b, alphabet, opts)
	if err != nil {
		return false, nil, err
	}
	return newProduct(da, db).counterexample()
}

func determinizeOver(a Automaton, alphabet []Symbol, opts []Option) (*compiled, error) {
	a = a.Clone()
	a.Alphabet = alphabet

	res, err := ToDFA(a, opts...)
	if err != nil {
		return nil, err
	}
	return compile(res.Automaton, false)
}

// product walks two DFAs over the same alphabet in lockstep. State -1 is the implicit dead
// state of a partial DFA.
type product struct {
	a, b *table
	syms []Symbol
	n    int
}

func newProduct(a, b *compiled) *product {
	return &product{a: a.t, b: b.t, syms: a.alphabet, n: b.t.numStates() + 1}
}

func (p *product) index(x, y int) int {
	return (x+1)*p.n + (y + 1)
}

func acceptsOrDead(t *table, s int) bool {
	return s >= 0 && t.accepts(s)
}

func stepOrDead(t *table, s, label int) int {
	if s < 0 {
		return -1
	}
	return t.step(s, label)
}

func (p *product) counterexample() (bool, []Symbol, error) {
	type pair struct {
		x, y   int
		parent int
		label  int
	}

	seen := bitset.New(uint((p.a.numStates() + 1) * p.n))
	queue := []pair{{x: p.a.start, y: p.b.start, parent: -1, label: -1}}
	seen.Set(uint(p.index(p.a.start, p.b.start)))

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if acceptsOrDead(p.a, cur.x) != acceptsOrDead(p.b, cur.y) {
			var word []Symbol
			for i := head; queue[i].parent >= 0; i = queue[i].parent {
				word = append(word, p.syms[queue[i].label])
			}
			slices.Reverse(word)
			if word == nil {
				word = []Symbol{}
			}
			return false, word, nil
		}

		for label := range p.syms {
			x, y := stepOrDead(p.a, cur.x, label), stepOrDead(p.b, cur.y, label)
			if x < 0 && y < 0 {
				continue
			}
			if i := uint(p.index(x, y)); !seen.Test(i) {
				seen.Set(i)
				queue = append(queue, pair{x: x, y: y, parent: head, label: label})
			}
		}
	}
	return true, nil, nil
}
