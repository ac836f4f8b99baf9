package automata

import "slices"

// Minimize reduces dfa to its minimal form by partition refinement (Moore's algorithm).
//
// States unreachable from the start state are dropped first. A missing transition means
// "reject": refinement runs on the DFA completed with one virtual dead state, which is never
// emitted, so a state whose transitions all lead nowhere merges with states that have no
// transitions at all. A block with one member keeps that member's id; a larger block is
// named after its members.
func Minimize(dfa Automaton, opts ...Option) (*Result, error) {
	o := newOptions(opts...)

	c, err := compile(dfa, false)
	if err != nil {
		return nil, err
	}

	t, names := c.t.restrict(c.t.reachable(), c.names)
	r := newRefiner(t, names, o)
	if err := r.refine(); err != nil {
		return nil, err
	}

	return &Result{
		Automaton: r.quotient(c.alphabet),
		Steps:     r.trace.result(),
	}, nil
}

// signature is the refinement key of a state: its current block followed by the block reached
// on each label.
type signature []int

func (s signature) Hash() uint64 {
	h := uint64(len(s))
	for _, v := range s {
		h = h*31 + mix(v)
	}
	return h
}

func (s signature) Equals(other Hashable) bool {
	o, ok := other.(signature)
	return ok && slices.Equal(s, o)
}

// refiner holds the partition of one Minimize call. State t.numStates() is the virtual dead
// state.
type refiner struct {
	t     *table
	names []StateID
	sink  int

	// blockOf maps every state, sink included, to its block. Blocks are numbered by their
	// smallest member.
	blockOf   []int
	numBlocks int

	trace *tracer
}

func newRefiner(t *table, names []StateID, o *options) *refiner {
	return &refiner{
		t:     t,
		names: names,
		sink:  t.numStates(),
		trace: newTracer(o.trace),
	}
}

func (r *refiner) delta(s, label int) int {
	if s == r.sink {
		return r.sink
	}
	if d := r.t.step(s, label); d >= 0 {
		return d
	}
	return r.sink
}

// refine runs refinement rounds until the partition is stable.
func (r *refiner) refine() error {
	r.blockOf = make([]int, r.sink+1)
	ids := make(map[bool]int, 2)
	for s := range r.blockOf {
		accept := s != r.sink && r.t.accepts(s)
		id, ok := ids[accept]
		if !ok {
			id = len(ids)
			ids[accept] = id
		}
		r.blockOf[s] = id
	}
	r.numBlocks = len(ids)

	blocks := r.blocks(r.blockOf, r.numBlocks)
	r.trace.add(PartitionSplit, Payload{
		Blocks: blocks,
	}, "initial partition by acceptance: %s", formatBlocks(blocks))

	// The block count grows every round that changes the partition and cannot exceed the
	// number of states, sink included.
	limit := r.sink + 1
	for iteration := 1; ; iteration++ {
		if iteration > limit {
			return &RefinementDidNotConvergeError{Iterations: iteration - 1}
		}

		next, count := r.split()
		if count == r.numBlocks {
			blocks := r.blocks(r.blockOf, r.numBlocks)
			r.trace.add(PartitionStable, Payload{
				Blocks:    blocks,
				Iteration: iteration,
			}, "round %d: partition is stable: %s", iteration, formatBlocks(blocks))
			return nil
		}

		r.traceSplits(iteration, next, count)
		r.blockOf, r.numBlocks = next, count
	}
}

// split computes the next partition. Signatures are read from r.blockOf only, which is not
// touched until the caller commits the returned partition.
func (r *refiner) split() ([]int, int) {
	snapshot := r.blockOf
	next := make([]int, len(snapshot))
	signatures := NewHashMap[int](WithCapacity(r.numBlocks * 2))

	for s := range snapshot {
		key := make(signature, r.t.numLabels+1)
		key[0] = snapshot[s]
		for label := 0; label < r.t.numLabels; label++ {
			key[label+1] = snapshot[r.delta(s, label)]
		}

		next[s], _ = signatures.Intern(key, signatures.Size())
	}
	return next, signatures.Size()
}

// traceSplits records one step per block that the round divided. Splits that only separate
// the virtual dead state are not visible in the trace.
func (r *refiner) traceSplits(iteration int, next []int, count int) {
	if r.trace == nil {
		return
	}

	before := r.members(r.blockOf, r.numBlocks)
	for _, members := range before {
		parts := make(map[int][]int)
		var order []int
		for _, s := range members {
			b := next[s]
			if _, ok := parts[b]; !ok {
				order = append(order, b)
			}
			parts[b] = append(parts[b], s)
		}
		if len(order) < 2 {
			continue
		}

		var sub [][]StateID
		for _, b := range order {
			if ids := r.realNames(parts[b]); len(ids) > 0 {
				sub = append(sub, ids)
			}
		}
		if len(sub) < 2 {
			continue
		}

		old := r.realNames(members)
		r.trace.add(PartitionSplit, Payload{
			Members:   old,
			Blocks:    sub,
			Iteration: iteration,
		}, "round %d: %s splits into %s", iteration, formatSet(old), formatBlocks(sub))
	}
}

// members lists the states of each block in ascending order.
func (r *refiner) members(blockOf []int, numBlocks int) [][]int {
	out := make([][]int, numBlocks)
	for s, b := range blockOf {
		out[b] = append(out[b], s)
	}
	return out
}

// blocks lists the named members of each block, leaving out the virtual dead state and the
// blocks it is alone in.
func (r *refiner) blocks(blockOf []int, numBlocks int) [][]StateID {
	var out [][]StateID
	for _, members := range r.members(blockOf, numBlocks) {
		if ids := r.realNames(members); len(ids) > 0 {
			out = append(out, ids)
		}
	}
	return out
}

func (r *refiner) realNames(members []int) []StateID {
	ids := make([]StateID, 0, len(members))
	for _, s := range members {
		if s != r.sink {
			ids = append(ids, r.names[s])
		}
	}
	return ids
}

// quotient emits one state per block that holds a real state. A transition (block, a) is
// taken from the first member that defines one; every member agrees on the target block.
func (r *refiner) quotient(alphabet []Symbol) Automaton {
	members := r.members(r.blockOf, r.numBlocks)
	out := make([]int, r.numBlocks)

	b := newTableBuilder(r.numBlocks, r.t.numTransitions())
	nm := newNamer()
	var names []StateID
	for blk, m := range members {
		if m[0] == r.sink {
			out[blk] = -1
			continue
		}
		if m[len(m)-1] == r.sink {
			m = m[:len(m)-1]
			members[blk] = m
		}
		out[blk] = b.createState()
		b.setAccept(out[blk], r.t.accepts(m[0]))
		names = append(names, nm.unique(blockName(m, r.names)))
	}

	for blk, m := range members {
		if out[blk] < 0 {
			continue
		}
		for label := 0; label < r.t.numLabels; label++ {
			for _, s := range m {
				if d := r.t.step(s, label); d >= 0 {
					b.addTransition(out[blk], label, out[r.blockOf[d]])
					break
				}
			}
		}
	}

	t := b.finish(out[r.blockOf[r.t.start]], r.t.numLabels)
	return describe(t, names, alphabet)
}
