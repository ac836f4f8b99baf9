package automata

import "github.com/bits-and-blooms/bitset"

var _ IntSet = &StateSet{}

// StateSet is a mutable set of NFA state ids used while computing moves and closures.
// Freeze turns it into the canonical FrozenIntSet that identifies a DFA state.
type StateSet struct {
	bits        *bitset.BitSet
	hashUpdated bool
	hashCode    uint64
}

func NewStateSet(numStates int) *StateSet {
	return &StateSet{
		bits: bitset.New(uint(numStates)),
	}
}

func (s *StateSet) Hash() uint64 {
	if s.hashUpdated {
		return s.hashCode
	}
	s.hashCode = hashInts(s.GetArray())
	s.hashUpdated = true
	return s.hashCode
}

func (s *StateSet) Equals(other Hashable) bool {
	is, ok := other.(IntSet)
	if !ok {
		return false
	}
	if o, ok := other.(*FrozenIntSet); ok && o == nil {
		return false
	}
	if o, ok := other.(*StateSet); ok && o == nil {
		return false
	}
	return equalInts(s, is)
}

// GetArray returns the members in ascending order.
func (s *StateSet) GetArray() []int {
	keys := make([]int, 0, s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		keys = append(keys, int(i))
	}
	return keys
}

func (s *StateSet) Size() int {
	return int(s.bits.Count())
}

func (s *StateSet) Empty() bool {
	return s.bits.None()
}

func (s *StateSet) Contains(state int) bool {
	return s.bits.Test(uint(state))
}

func (s *StateSet) keyChanged() {
	s.hashUpdated = false
	s.hashCode = 0
}

func (s *StateSet) Add(state int) {
	if !s.bits.Test(uint(state)) {
		s.bits.Set(uint(state))
		s.keyChanged()
	}
}

func (s *StateSet) Remove(state int) {
	if s.bits.Test(uint(state)) {
		s.bits.Clear(uint(state))
		s.keyChanged()
	}
}

// Freeze returns an immutable copy of the members, tagged with the DFA state it stands for.
func (s *StateSet) Freeze(state int) *FrozenIntSet {
	return NewFrozenIntSet(s.GetArray(), s.Hash(), state)
}
