// Package inthash provides an open-addressing hash table keyed by uint32.
//
// The table owns pointers to its values. A nil pointer marks an empty slot,
// so nil can never be stored. Slots are probed linearly from the FNV hash of
// the key, and the slot array doubles whenever the load passes MaxLoad
// percent. Capacity is always a power of two.
//
// Insert does not look for an existing entry with the same key; callers that
// need unique keys check with Get first.
//
// A Table is not safe for concurrent use.
package inthash

const (
	// InitialSize is the slot count of a new table.
	InitialSize = 256

	// MaxLoad is the load limit in percent. Exceeding it doubles the table.
	MaxLoad = 70
)

// FNV constants for 32-bit hashes.
const (
	offset32 = 2166136261
	prime32  = 16777619
)

// Hash returns the 32-bit FNV hash of the key's four little-endian bytes.
// Each byte is folded in multiply-then-xor order, which matches
// hash/fnv.New32 and keeps slot layout stable across runs and platforms.
func Hash(key uint32) uint32 {
	h := uint32(offset32)
	h = (h * prime32) ^ (key & 0xff)
	h = (h * prime32) ^ ((key >> 8) & 0xff)
	h = (h * prime32) ^ ((key >> 16) & 0xff)
	h = (h * prime32) ^ (key >> 24)
	return h
}

type entry[V any] struct {
	key   uint32
	value *V
}

// Table maps uint32 keys to owned values.
type Table[V any] struct {
	entries []entry[V]
	used    int
}

// New creates an empty table with InitialSize slots.
func New[V any]() *Table[V] {
	return &Table[V]{
		entries: make([]entry[V], InitialSize),
	}
}

// Insert stores value under key. It returns false, leaving the table
// unchanged, if value is nil.
func (t *Table[V]) Insert(key uint32, value *V) bool {
	if value == nil {
		return false
	}

	t.place(key, value)

	if t.used*100/len(t.entries) > MaxLoad {
		t.resize(2 * len(t.entries))
	}
	return true
}

// place writes key/value into the first empty slot of its probe sequence.
func (t *Table[V]) place(key uint32, value *V) {
	mask := uint32(len(t.entries) - 1)
	idx := Hash(key) & mask
	for t.entries[idx].value != nil {
		idx = (idx + 1) & mask
	}
	t.entries[idx] = entry[V]{key: key, value: value}
	t.used++
}

// resize rehashes every live entry into a zeroed slot array of size n.
func (t *Table[V]) resize(n int) {
	old := t.entries
	t.entries = make([]entry[V], n)
	t.used = 0
	for _, e := range old {
		if e.value != nil {
			t.place(e.key, e.value)
		}
	}
}

// Get returns the value stored under key.
func (t *Table[V]) Get(key uint32) (*V, bool) {
	idx, ok := t.find(key)
	if !ok {
		return nil, false
	}
	return t.entries[idx].value, true
}

// find probes for key and returns its slot.
func (t *Table[V]) find(key uint32) (uint32, bool) {
	mask := uint32(len(t.entries) - 1)
	idx := Hash(key) & mask
	for t.entries[idx].value != nil {
		if t.entries[idx].key == key {
			return idx, true
		}
		idx = (idx + 1) & mask
	}
	return 0, false
}

// Delete removes key and returns the value it held, or nil.
//
// Later entries of the same cluster are shifted back into the hole so that
// every remaining key stays reachable from its home slot.
func (t *Table[V]) Delete(key uint32) *V {
	idx, ok := t.find(key)
	if !ok {
		return nil
	}
	value := t.entries[idx].value

	mask := uint32(len(t.entries) - 1)
	hole := idx
	next := (hole + 1) & mask
	for t.entries[next].value != nil {
		home := Hash(t.entries[next].key) & mask
		// Move the entry unless its home lies cyclically in (hole, next].
		if (next-home)&mask >= (next-hole)&mask {
			t.entries[hole] = t.entries[next]
			hole = next
		}
		next = (next + 1) & mask
	}
	t.entries[hole] = entry[V]{}
	t.used--
	return value
}

// Len returns the number of stored entries.
func (t *Table[V]) Len() int {
	return t.used
}

// Cap returns the number of slots.
func (t *Table[V]) Cap() int {
	return len(t.entries)
}

// Range calls fn for every entry in slot order until fn returns false.
func (t *Table[V]) Range(fn func(key uint32, value *V) bool) {
	for _, e := range t.entries {
		if e.value == nil {
			continue
		}
		if !fn(e.key, e.value) {
			return
		}
	}
}

// Clear drops every entry and shrinks the table back to InitialSize.
func (t *Table[V]) Clear() {
	t.entries = make([]entry[V], InitialSize)
	t.used = 0
}
