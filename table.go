package automata

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// epsilonLabel is the label of an epsilon move. It sorts before every alphabet label.
const epsilonLabel = -1

// table is the int-indexed automaton the algorithms run on. States are dense ints, labels are
// indexes into the alphabet. The transitions leaving one state are stored contiguously, sorted
// by label then dest, without duplicates. A table is never modified once finished.
type table struct {
	// Index in the transitions array where the state's leaving transitions start, followed by
	// how many there are.
	states []int

	// Holds label, dest for each transition.
	transitions []int

	isAccept *bitset.BitSet

	start     int
	numLabels int

	// True if there are no epsilon moves and no state has two transitions with the same label.
	deterministic bool
}

// edge is a cursor over the transitions leaving one state.
type edge struct {
	Source int
	Label  int
	Dest   int

	upto int
}

func (t *table) numStates() int {
	return len(t.states) / 2
}

func (t *table) numTransitions() int {
	return len(t.transitions) / 2
}

func (t *table) accepts(state int) bool {
	return t.isAccept.Test(uint(state))
}

// initEdge positions e before the first transition leaving state and returns how many
// transitions leave it. Call nextEdge to read each one.
func (t *table) initEdge(state int, e *edge) int {
	e.Source = state
	e.upto = t.states[2*state]
	return t.states[2*state+1]
}

func (t *table) nextEdge(e *edge) {
	e.Label = t.transitions[e.upto]
	e.Dest = t.transitions[e.upto+1]
	e.upto += 2
}

// labelRange returns the half-open range of transition indexes leaving state on label.
// Transitions are sorted by label so the range is found by binary search.
func (t *table) labelRange(state, label int) (int, int) {
	first := t.states[2*state] / 2
	count := t.states[2*state+1]

	lo := sort.Search(count, func(i int) bool {
		return t.transitions[2*(first+i)] >= label
	})
	hi := sort.Search(count, func(i int) bool {
		return t.transitions[2*(first+i)] > label
	})
	return first + lo, first + hi
}

func (t *table) destAt(i int) int {
	return t.transitions[2*i+1]
}

// step returns the destination of the transition leaving state on label, or -1 if there is
// none. It assumes determinism.
func (t *table) step(state, label int) int {
	lo, hi := t.labelRange(state, label)
	if lo == hi {
		return -1
	}
	return t.destAt(lo)
}

// firstConflict returns the first state and label violating determinism, or -1, -1.
func (t *table) firstConflict() (int, int) {
	e := &edge{}
	for s := 0; s < t.numStates(); s++ {
		last := epsilonLabel - 1
		count := t.initEdge(s, e)
		for i := 0; i < count; i++ {
			t.nextEdge(e)
			if e.Label == epsilonLabel || e.Label == last {
				return s, e.Label
			}
			last = e.Label
		}
	}
	return -1, -1
}

// tableBuilder collects states and transitions in any order. finish sorts and reduces them
// into a table.
type tableBuilder struct {
	numStates int

	// Holds source, label, dest for each added transition.
	transitions []int

	isAccept *bitset.BitSet
}

func newTableBuilder(numStates, numTransitions int) *tableBuilder {
	return &tableBuilder{
		transitions: make([]int, 0, numTransitions*3),
		isAccept:    bitset.New(uint(numStates)),
	}
}

func (b *tableBuilder) createState() int {
	state := b.numStates
	b.numStates++
	return state
}

func (b *tableBuilder) setAccept(state int, accept bool) {
	b.isAccept.SetTo(uint(state), accept)
}

func (b *tableBuilder) addTransition(source, label, dest int) {
	b.transitions = append(b.transitions, source, label, dest)
}

func (b *tableBuilder) finish(start, numLabels int) *table {
	sort.Sort(&builderSorter{values: b.transitions})

	t := &table{
		states:        make([]int, 0, 2*b.numStates),
		transitions:   make([]int, 0, len(b.transitions)/3*2),
		isAccept:      b.isAccept.Clone(),
		start:         start,
		numLabels:     numLabels,
		deterministic: true,
	}

	upto := 0
	for s := 0; s < b.numStates; s++ {
		offset := len(t.transitions)
		lastLabel, lastDest := epsilonLabel-1, -1
		for ; upto < len(b.transitions) && b.transitions[upto] == s; upto += 3 {
			label, dest := b.transitions[upto+1], b.transitions[upto+2]
			if label == lastLabel && dest == lastDest {
				continue
			}
			if label == epsilonLabel || label == lastLabel {
				t.deterministic = false
			}
			t.transitions = append(t.transitions, label, dest)
			lastLabel, lastDest = label, dest
		}
		t.states = append(t.states, offset, (len(t.transitions)-offset)/2)
	}
	return t
}

var _ sort.Interface = &builderSorter{}

// builderSorter sorts packed (source, label, dest) triples.
type builderSorter struct {
	values []int
}

func (b *builderSorter) Len() int {
	return len(b.values) / 3
}

func (b *builderSorter) Less(i, j int) bool {
	i *= 3
	j *= 3

	for k := 0; k < 3; k++ {
		if b.values[i+k] != b.values[j+k] {
			return b.values[i+k] < b.values[j+k]
		}
	}
	return false
}

func (b *builderSorter) Swap(i, j int) {
	i *= 3
	j *= 3

	b.values[i], b.values[j] = b.values[j], b.values[i]
	b.values[i+1], b.values[j+1] = b.values[j+1], b.values[i+1]
	b.values[i+2], b.values[j+2] = b.values[j+2], b.values[i+2]
}
