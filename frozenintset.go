package automata

var _ IntSet = &FrozenIntSet{}

// FrozenIntSet is an immutable, sorted set of NFA state ids together with the DFA state it
// was assigned during subset construction.
type FrozenIntSet struct {
	values   []int
	state    int
	hashCode uint64
}

func NewFrozenIntSet(values []int, hashCode uint64, state int) *FrozenIntSet {
	return &FrozenIntSet{values: values, state: state, hashCode: hashCode}
}

func (f *FrozenIntSet) Hash() uint64 {
	return f.hashCode
}

// Equals reports whether other holds the same members. The assigned state is not compared.
func (f *FrozenIntSet) Equals(other Hashable) bool {
	if f == nil {
		switch o := other.(type) {
		case *FrozenIntSet:
			return o == nil
		case *StateSet:
			return o == nil
		default:
			return false
		}
	}

	is, ok := other.(IntSet)
	if !ok || is == nil {
		return false
	}
	if o, ok := other.(*FrozenIntSet); ok && o == nil {
		return false
	}
	if o, ok := other.(*StateSet); ok && o == nil {
		return false
	}
	return equalInts(f, is)
}

func (f *FrozenIntSet) GetArray() []int {
	return f.values
}

func (f *FrozenIntSet) Size() int {
	return len(f.values)
}

// State returns the DFA state assigned to this set.
func (f *FrozenIntSet) State() int {
	return f.state
}
