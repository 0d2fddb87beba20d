package strs

import (
	"sync"
	"unicode/utf16"
)

// Table is a string interning table. Two strings interned in the same
// Table are equal iff their pointers are equal (spec.md §3.2, §8). The
// process-wide table (Global) is safe for concurrent use from multiple
// interpreters; per-interpreter tables need no locking since an
// interpreter is single-threaded (spec.md §5), but Table itself always
// locks so callers never have to reason about which kind they hold.
type Table struct {
	mu      sync.Mutex
	entries map[string]*String
}

// NewTable creates an empty per-interpreter intern table.
func NewTable() *Table {
	return &Table{entries: make(map[string]*String)}
}

// Global is the process-wide intern table (spec.md §3.7, §5): "a
// write-once-per-string append; an implementation may serialize this
// with a mutex without affecting behavior."
var Global = NewTable()

// key maps code units to a Go string usable as a map key. This is not
// the same as ToUTF8 — it never fails on lone surrogates, since it only
// serves as an internal hash key and is never decoded back.
func key(units []uint16) string {
	return string(utf16.Decode(units))
}

// Intern canonicalizes s: if an equal string has already been interned
// in t, that shared instance is returned; otherwise a new Interned
// String is created, stored, and returned. Intern(Intern(s)) == Intern(s)
// as pointers, and Intern(s1) == Intern(s2) iff s1 and s2 have identical
// code units (spec.md §8, interning law).
func (t *Table) Intern(s *String) *String {
	t.mu.Lock()
	defer t.mu.Unlock()

	k := key(s.units)
	if existing, ok := t.entries[k]; ok {
		return existing
	}

	cp := make([]uint16, len(s.units))
	copy(cp, s.units)
	interned := &String{units: cp, flags: Interned}
	t.entries[k] = interned
	return interned
}

// InternString is a convenience wrapper around Intern for a Go string.
func (t *Table) InternString(s string) *String {
	return t.Intern(New(s))
}

// Len reports how many distinct strings are currently interned.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
