package value

import (
	"fmt"
	"sort"

	"github.com/foglayer/fogpack/errs"
)

// entry is one key/value pair of a Map, kept sorted by Key's raw UTF-8
// bytes.
type entry struct {
	Key string
	Val Value
}

// Map is fog-pack's ordered, unique-keyed map. Keys are always Str and
// are stored sorted by raw byte order so the builder need not present
// them in sorted order: inserting "b" then "a" yields the same encoding
// as inserting "a" then "b" (spec.md §8 law 5).
type Map struct {
	entries []entry
}

// NewMap returns an empty Map.
func NewMap() *Map { return &Map{} }

// NewMapCap returns an empty Map with room for n entries preallocated.
func NewMapCap(n int) *Map { return &Map{entries: make([]entry, 0, n)} }

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// Set inserts key/val, keeping entries sorted by key. It returns
// errs.ErrDuplicateKey if key is already present; fog-pack maps never
// silently overwrite.
func (m *Map) Set(key string, val Value) error {
	i := sort.Search(len(m.entries), func(i int) bool { return m.entries[i].Key >= key })
	if i < len(m.entries) && m.entries[i].Key == key {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateKey, key)
	}

	m.entries = append(m.entries, entry{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = entry{Key: key, Val: val}

	return nil
}

// Get returns the value at key and whether it was present.
func (m *Map) Get(key string) (Value, bool) {
	i := sort.Search(len(m.entries), func(i int) bool { return m.entries[i].Key >= key })
	if i < len(m.entries) && m.entries[i].Key == key {
		return m.entries[i].Val, true
	}

	return Value{}, false
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key if present. It reports whether anything was removed.
func (m *Map) Delete(key string) bool {
	i := sort.Search(len(m.entries), func(i int) bool { return m.entries[i].Key >= key })
	if i < len(m.entries) && m.entries[i].Key == key {
		m.entries = append(m.entries[:i], m.entries[i+1:]...)
		return true
	}

	return false
}

// Range calls fn for every entry in sorted key order, stopping early if
// fn returns false.
func (m *Map) Range(fn func(key string, val Value) bool) {
	for _, e := range m.entries {
		if !fn(e.Key, e.Val) {
			return
		}
	}
}

// Keys returns the sorted keys. The returned slice is a copy.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}

	return keys
}

// Clone returns a shallow copy of m: entries are copied but Value payloads
// (Bin slices, nested Maps) are shared with the original.
func (m *Map) Clone() *Map {
	cloned := &Map{entries: make([]entry, len(m.entries))}
	copy(cloned.entries, m.entries)

	return cloned
}
