package glyphatlas

import (
	"fmt"

	"github.com/gogpu/glyphatlas/internal/inthash"
)

// IndexKind selects the code-to-entry index of an atlas.
type IndexKind int

const (
	// IndexHash maps arbitrary 32-bit codes through an open-addressing
	// hash table.
	IndexHash IndexKind = iota

	// IndexASCII maps codes 0-127 through a fixed direct-indexed array.
	// Larger codes are rejected with ErrCodeOutOfRange.
	IndexASCII
)

// asciiSlots is the size of the direct-indexed table.
const asciiSlots = 128

// String returns the index kind name.
func (k IndexKind) String() string {
	switch k {
	case IndexHash:
		return "hash"
	case IndexASCII:
		return "ascii"
	default:
		return fmt.Sprintf("IndexKind(%d)", int(k))
	}
}

// glyphIndex maps codes to atlas entries.
type glyphIndex interface {
	// check reports whether the index can hold code at all.
	check(code uint32) error
	get(code uint32) (*Entry, bool)
	// put stores e for a code that passed check and is not present yet.
	put(code uint32, e *Entry)
	remove(code uint32) (*Entry, bool)
	size() int
	each(fn func(code uint32, e *Entry) bool)
	reset()
}

func newIndex(kind IndexKind) glyphIndex {
	if kind == IndexASCII {
		return &asciiIndex{}
	}
	return &hashIndex{table: inthash.New[Entry]()}
}

// hashIndex indexes any uint32 code.
type hashIndex struct {
	table *inthash.Table[Entry]
}

func (h *hashIndex) get(code uint32) (*Entry, bool) {
	return h.table.Get(code)
}

func (h *hashIndex) check(uint32) error {
	return nil
}

func (h *hashIndex) put(code uint32, e *Entry) {
	h.table.Insert(code, e)
}

func (h *hashIndex) remove(code uint32) (*Entry, bool) {
	e := h.table.Delete(code)
	return e, e != nil
}

func (h *hashIndex) size() int {
	return h.table.Len()
}

func (h *hashIndex) each(fn func(code uint32, e *Entry) bool) {
	h.table.Range(fn)
}

func (h *hashIndex) reset() {
	h.table.Clear()
}

// asciiIndex is a direct-indexed table for 7-bit codes.
type asciiIndex struct {
	slots [asciiSlots]Entry
	used  [asciiSlots]bool
	count int
}

func (a *asciiIndex) get(code uint32) (*Entry, bool) {
	if code >= asciiSlots || !a.used[code] {
		return nil, false
	}
	return &a.slots[code], true
}

func (a *asciiIndex) check(code uint32) error {
	if code >= asciiSlots {
		return fmt.Errorf("%w: %d > 127", ErrCodeOutOfRange, code)
	}
	return nil
}

func (a *asciiIndex) put(code uint32, e *Entry) {
	a.slots[code] = *e
	a.used[code] = true
	a.count++
}

func (a *asciiIndex) remove(code uint32) (*Entry, bool) {
	if code >= asciiSlots || !a.used[code] {
		return nil, false
	}
	e := a.slots[code]
	a.slots[code] = Entry{}
	a.used[code] = false
	a.count--
	return &e, true
}

func (a *asciiIndex) size() int {
	return a.count
}

func (a *asciiIndex) each(fn func(code uint32, e *Entry) bool) {
	for code := range a.slots {
		if a.used[code] && !fn(uint32(code), &a.slots[code]) {
			return
		}
	}
}

func (a *asciiIndex) reset() {
	*a = asciiIndex{}
}
