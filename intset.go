package automata

// IntSet is a set of state ids usable as a HashMap key.
type IntSet interface {
	Hashable

	// GetArray returns the members in ascending order.
	GetArray() []int

	Size() int
}

// hashInts is the hash shared by every IntSet implementation: the size plus the mixed
// members, so equal sets hash equally whatever their representation.
func hashInts(values []int) uint64 {
	h := uint64(len(values))
	for _, v := range values {
		h += mix(v)
	}
	return h
}

func equalInts(a, b IntSet) bool {
	if a.Size() != b.Size() || a.Hash() != b.Hash() {
		return false
	}
	x, y := a.GetArray(), b.GetArray()
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
