package term

// ============================================================
// Map and HashSet keyed by structural equality
// ============================================================

type mapEntry[V any] struct {
	key   *Term
	value V
}

// Map associates values with terms. Lookups hash first and fall back to
// full structural comparison, so colliding hashes never alias two keys.
// Iteration follows insertion order.
type Map[V any] struct {
	buckets map[uint64][]int
	entries []mapEntry[V]
	live    int
}

// NewMap returns an empty map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{buckets: make(map[uint64][]int)}
}

func (m *Map[V]) find(k *Term) int {
	for _, i := range m.buckets[k.hash] {
		if m.entries[i].key != nil && m.entries[i].key.Equal(k) {
			return i
		}
	}
	return -1
}

func (m *Map[V]) Get(k *Term) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	if i := m.find(k); i >= 0 {
		return m.entries[i].value, true
	}
	var zero V
	return zero, false
}

func (m *Map[V]) Has(k *Term) bool {
	_, ok := m.Get(k)
	return ok
}

func (m *Map[V]) Put(k *Term, v V) {
	if i := m.find(k); i >= 0 {
		m.entries[i].value = v
		return
	}
	m.buckets[k.hash] = append(m.buckets[k.hash], len(m.entries))
	m.entries = append(m.entries, mapEntry[V]{key: k, value: v})
	m.live++
}

func (m *Map[V]) Delete(k *Term) {
	i := m.find(k)
	if i < 0 {
		return
	}
	b := m.buckets[k.hash]
	for j, idx := range b {
		if idx == i {
			b = append(b[:j:j], b[j+1:]...)
			break
		}
	}
	if len(b) == 0 {
		delete(m.buckets, k.hash)
	} else {
		m.buckets[k.hash] = b
	}
	m.entries[i] = mapEntry[V]{}
	m.live--
}

func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return m.live
}

// Each visits entries in insertion order until fn returns false.
func (m *Map[V]) Each(fn func(k *Term, v V) bool) {
	if m == nil {
		return
	}
	for _, e := range m.entries {
		if e.key == nil {
			continue
		}
		if !fn(e.key, e.value) {
			return
		}
	}
}

// Keys returns the keys in insertion order.
func (m *Map[V]) Keys() []*Term {
	out := make([]*Term, 0, m.Len())
	m.Each(func(k *Term, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}

// Clone returns an independent copy of m.
func (m *Map[V]) Clone() *Map[V] {
	c := NewMap[V]()
	m.Each(func(k *Term, v V) bool {
		c.Put(k, v)
		return true
	})
	return c
}

// HashSet is a set of terms with insertion-ordered iteration.
type HashSet struct {
	m *Map[struct{}]
}

// NewHashSet returns a set holding items.
func NewHashSet(items ...*Term) *HashSet {
	s := &HashSet{m: NewMap[struct{}]()}
	for _, t := range items {
		s.Add(t)
	}
	return s
}

// Add inserts t and reports whether it was new.
func (s *HashSet) Add(t *Term) bool {
	if s.m.Has(t) {
		return false
	}
	s.m.Put(t, struct{}{})
	return true
}

func (s *HashSet) Contains(t *Term) bool { return s != nil && s.m.Has(t) }
func (s *HashSet) Len() int              { return s.m.Len() }
func (s *HashSet) Items() []*Term        { return s.m.Keys() }

func (s *HashSet) Clone() *HashSet { return &HashSet{m: s.m.Clone()} }
