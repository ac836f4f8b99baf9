package automata

// Hashable is a key of HashMap.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// HashMap interns keys whose identity is their content: canonical state sets during subset
// construction and block signatures during refinement. Mutable and frozen views of the same
// content (a StateSet and its FrozenIntSet) must hash and compare alike, which is why keys
// are Hashable rather than Go-comparable.
//
// Slots are probed linearly and the hash of every key is kept next to it, so growing never
// rehashes a key and a probe only calls Equals on a full hash match. Keys cannot be removed;
// a conversion only ever adds states or signatures. Not safe for concurrent use.
type HashMap[T any] struct {
	hashes     []uint64
	keys       []Hashable
	values     []T
	size       int
	mask       uint64
	loadFactor float64
}

type optionsHashMap struct {
	capacity    int
	loadFactory float64
}

type OptionsHashMap func(hashMap *optionsHashMap)

// WithCapacity sets the initial slot count, rounded up to a power of two.
func WithCapacity(capacity int) OptionsHashMap {
	return func(hashMap *optionsHashMap) {
		hashMap.capacity = capacity
	}
}

// WithLoadFactory sets the size/slots ratio above which the table doubles. Values outside
// (0, 1) keep the default of 0.75.
func WithLoadFactory(loadFactory float64) OptionsHashMap {
	return func(hashMap *optionsHashMap) {
		if loadFactory > 0 && loadFactory < 1 {
			hashMap.loadFactory = loadFactory
		}
	}
}

func NewHashMap[T any](options ...OptionsHashMap) *HashMap[T] {
	opt := &optionsHashMap{capacity: 1, loadFactory: 0.75}
	for _, o := range options {
		o(opt)
	}

	slots := 1
	for slots < opt.capacity {
		slots <<= 1
	}

	m := &HashMap[T]{loadFactor: opt.loadFactory}
	m.alloc(slots)
	return m
}

func (m *HashMap[T]) alloc(slots int) {
	m.hashes = make([]uint64, slots)
	m.keys = make([]Hashable, slots)
	m.values = make([]T, slots)
	m.mask = uint64(slots - 1)
}

// find returns the slot holding key, or the empty slot where it belongs.
func (m *HashMap[T]) find(key Hashable, hash uint64) (int, bool) {
	for i := hash & m.mask; ; i = (i + 1) & m.mask {
		k := m.keys[i]
		if k == nil {
			return int(i), false
		}
		if m.hashes[i] == hash && k.Equals(key) {
			return int(i), true
		}
	}
}

// Get returns the value stored under key.
func (m *HashMap[T]) Get(key Hashable) (T, bool) {
	i, ok := m.find(key, key.Hash())
	if !ok {
		var zero T
		return zero, false
	}
	return m.values[i], true
}

// Set inserts key or replaces its value.
func (m *HashMap[T]) Set(key Hashable, value T) {
	hash := key.Hash()
	i, ok := m.find(key, hash)
	if ok {
		m.values[i] = value
		return
	}
	m.insert(i, key, hash, value)
}

// Intern returns the value stored under key. A missing key is stored with value first, and
// the second result reports whether key was already present.
func (m *HashMap[T]) Intern(key Hashable, value T) (T, bool) {
	hash := key.Hash()
	i, ok := m.find(key, hash)
	if ok {
		return m.values[i], true
	}
	m.insert(i, key, hash, value)
	return value, false
}

func (m *HashMap[T]) insert(slot int, key Hashable, hash uint64, value T) {
	if float64(m.size+1) > m.loadFactor*float64(len(m.keys)) {
		m.grow()
		slot, _ = m.find(key, hash)
	}
	m.hashes[slot] = hash
	m.keys[slot] = key
	m.values[slot] = value
	m.size++
}

func (m *HashMap[T]) grow() {
	hashes, keys, values := m.hashes, m.keys, m.values
	m.alloc(len(keys) << 1)

	for i, k := range keys {
		if k == nil {
			continue
		}
		slot, _ := m.find(k, hashes[i])
		m.hashes[slot] = hashes[i]
		m.keys[slot] = k
		m.values[slot] = values[i]
	}
}

// Size returns the number of keys.
func (m *HashMap[T]) Size() int {
	return m.size
}
