package value

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   any
	Value any
}

// Map is an insertion-ordered association between arbitrary keys and values.
// Keys are compared by identity for reference values and by equality for
// everything else.
type Map struct {
	entries []Entry
	index   map[any]int
}

func NewMap() *Map {
	return &Map{index: make(map[any]int)}
}

func (m *Map) find(key any) int {
	if k, ok := indexKey(key); ok {
		if i, found := m.index[k]; found {
			return i
		}
		return -1
	}
	for i, e := range m.entries {
		if SameValue(e.Key, key) {
			return i
		}
	}
	return -1
}

// Set stores value under key, keeping the position of an existing key.
func (m *Map) Set(key, v any) {
	if i := m.find(key); i >= 0 {
		m.entries[i].Value = v
		return
	}
	if m.index == nil {
		m.index = make(map[any]int)
	}
	if k, ok := indexKey(key); ok {
		m.index[k] = len(m.entries)
	}
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

func (m *Map) Get(key any) (any, bool) {
	if i := m.find(key); i >= 0 {
		return m.entries[i].Value, true
	}
	return nil, false
}

func (m *Map) Has(key any) bool { return m.find(key) >= 0 }

func (m *Map) Delete(key any) bool {
	i := m.find(key)
	if i < 0 {
		return false
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	m.reindex()
	return true
}

func (m *Map) reindex() {
	m.index = make(map[any]int, len(m.entries))
	for i, e := range m.entries {
		if k, ok := indexKey(e.Key); ok {
			m.index[k] = i
		}
	}
}

func (m *Map) Len() int { return len(m.entries) }

// Entries returns a copy of the entries in insertion order.
func (m *Map) Entries() []Entry {
	entries := make([]Entry, len(m.entries))
	copy(entries, m.entries)
	return entries
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map) Range(fn func(key, v any) bool) {
	for _, e := range m.entries {
		if !fn(e.Key, e.Value) {
			return
		}
	}
}

// Set is an insertion-ordered collection of distinct values.
type Set struct {
	m Map
}

func NewSet() *Set {
	return &Set{m: Map{index: make(map[any]int)}}
}

// Add inserts v unless an equal member is already present.
func (s *Set) Add(v any) {
	if s.m.Has(v) {
		return
	}
	s.m.Set(v, nil)
}

func (s *Set) Has(v any) bool    { return s.m.Has(v) }
func (s *Set) Delete(v any) bool { return s.m.Delete(v) }
func (s *Set) Len() int          { return s.m.Len() }

// Values returns a copy of the members in insertion order.
func (s *Set) Values() []any {
	values := make([]any, 0, s.m.Len())
	for _, e := range s.m.entries {
		values = append(values, e.Key)
	}
	return values
}

func (s *Set) Range(fn func(v any) bool) {
	for _, e := range s.m.entries {
		if !fn(e.Key) {
			return
		}
	}
}
