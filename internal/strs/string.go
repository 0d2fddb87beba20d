// Package strs implements the UTF-16 string model of spec.md §3.2: an
// ordered sequence of 16-bit code units behind a single type, in three
// flavors (growable, static, interned), plus the intern tables of
// spec.md §3.7/§8.
package strs

import (
	"errors"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Flag records which of the two special string flavors a String has.
// The zero value is an ordinary growable string.
type Flag uint8

const (
	// Static strings wrap a caller-owned, never-grown code unit slice;
	// Append returns ErrStaticGrow.
	Static Flag = 1 << iota
	// Interned strings are canonicalized: within one Table, two
	// interned strings with identical code units share one *String.
	Interned
)

// initialCapacity is the starting backing-array size for a growable
// string, per spec.md §3.2 ("doubles capacity starting at 256").
const initialCapacity = 256

// ErrStaticGrow is returned by Append when called on a Static string.
var ErrStaticGrow = errors.New("strs: cannot grow a static string")

// ErrLoneSurrogate is returned by ToUTF8 when the code unit sequence
// contains a surrogate that is not part of a valid pair (spec.md §3.2).
var ErrLoneSurrogate = errors.New("strs: lone surrogate in UTF-16 string")

// String is a UTF-16 code-unit sequence shared by pointer: equality of
// two interned Strings is pointer equality (spec.md §3.2, §8).
type String struct {
	units []uint16
	flags Flag
}

// New builds a growable String from a Go (UTF-8) string, encoding it to
// UTF-16.
func New(s string) *String {
	return &String{units: utf16.Encode([]rune(s))}
}

// NewStatic builds a Static String backed by units directly (not
// copied): mutating the caller's slice afterward is undefined.
func NewStatic(units []uint16) *String {
	return &String{units: units, flags: Static}
}

// FromUnits builds a growable String owning a copy of units.
func FromUnits(units []uint16) *String {
	cp := make([]uint16, len(units))
	copy(cp, units)
	return &String{units: cp}
}

// Len returns the number of UTF-16 code units (not runes: a character
// outside the BMP counts as 2, matching ECMA-262's .length semantics).
func (s *String) Len() int { return len(s.units) }

// Units returns the raw code units. Callers must not mutate the
// returned slice when IsStatic or IsInterned.
func (s *String) Units() []uint16 { return s.units }

// At returns the code unit at index i.
func (s *String) At(i int) uint16 { return s.units[i] }

// IsStatic reports whether s is a Static string.
func (s *String) IsStatic() bool { return s.flags&Static != 0 }

// IsInterned reports whether s is a canonicalized, Interned string.
func (s *String) IsInterned() bool { return s.flags&Interned != 0 }

// Append adds units to a growable string in place, doubling capacity
// from initialCapacity as needed, and returns s for chaining. It raises
// ErrStaticGrow on a Static string and must never be called on an
// Interned string (interning is by construction immutable; Table
// enforces this by only returning fresh copies to intern).
func (s *String) Append(units ...uint16) (*String, error) {
	if s.IsStatic() {
		return s, ErrStaticGrow
	}
	if cap(s.units) < len(s.units)+len(units) {
		newCap := cap(s.units)
		if newCap == 0 {
			newCap = initialCapacity
		}
		for newCap < len(s.units)+len(units) {
			newCap *= 2
		}
		grown := make([]uint16, len(s.units), newCap)
		copy(grown, s.units)
		s.units = grown
	}
	s.units = append(s.units, units...)
	return s, nil
}

// Equal compares two Strings by code-unit sequence. If both are
// Interned from the same Table, this degenerates to pointer equality,
// but Equal always does the right thing regardless of provenance.
func (s *String) Equal(other *String) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	if len(s.units) != len(other.units) {
		return false
	}
	for i := range s.units {
		if s.units[i] != other.units[i] {
			return false
		}
	}
	return true
}

// Compare returns -1, 0, or 1 per the lexicographic ordering of code
// units (spec.md §4.4, "Abstract relational" string ordering).
func (s *String) Compare(other *String) int {
	n := len(s.units)
	if len(other.units) < n {
		n = len(other.units)
	}
	for i := 0; i < n; i++ {
		if s.units[i] != other.units[i] {
			if s.units[i] < other.units[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(s.units) < len(other.units):
		return -1
	case len(s.units) > len(other.units):
		return 1
	default:
		return 0
	}
}

// ToUTF8 renders the string as Go UTF-8, honoring surrogate pairs. A
// lone (unpaired) surrogate raises ErrLoneSurrogate, per spec.md §3.2.
func (s *String) ToUTF8() (string, error) {
	var sb strings.Builder
	units := s.units
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u <= 0xDBFF: // high surrogate
			if i+1 < len(units) && units[i+1] >= 0xDC00 && units[i+1] <= 0xDFFF {
				r := utf16.DecodeRune(rune(u), rune(units[i+1]))
				sb.WriteRune(r)
				i++
				continue
			}
			return "", ErrLoneSurrogate
		case u >= 0xDC00 && u <= 0xDFFF: // unpaired low surrogate
			return "", ErrLoneSurrogate
		default:
			sb.WriteRune(rune(u))
		}
	}
	return sb.String(), nil
}

// MustUTF8 is ToUTF8 for callers (tests, debug output) that know the
// string has no lone surrogates.
func (s *String) MustUTF8() string {
	out, err := s.ToUTF8()
	if err != nil {
		return utf8ReplacementFallback(s)
	}
	return out
}

func utf8ReplacementFallback(s *String) string {
	var sb strings.Builder
	for _, u := range s.units {
		if u >= 0xD800 && u <= 0xDFFF {
			sb.WriteRune(utf8.RuneError)
			continue
		}
		sb.WriteRune(rune(u))
	}
	return sb.String()
}

// Concat returns a fresh growable String holding a concatenation of a
// and b; neither input is mutated.
func Concat(a, b *String) *String {
	out := make([]uint16, 0, a.Len()+b.Len())
	out = append(out, a.units...)
	out = append(out, b.units...)
	return &String{units: out}
}
