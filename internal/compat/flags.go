// Package compat implements the host-visible compatibility flag register
// described in spec.md §4.1 and §6.2. Flags toggle deviations from plain
// ECMA-262 3rd edition behavior: SEE-style Annex B extensions, lexer
// leniency, and the Netscape js1.1..js1.5 version tiers.
package compat

import "strings"

// Flag is a single bit in the compatibility register.
type Flag uint32

const (
	// SGMLComments treats a leading "<!--" as a line-comment opener.
	SGMLComments Flag = 1 << iota
	// UTFUnsafe passes invalid UTF-8 input through as a sentinel rune
	// instead of raising a lexer error.
	UTFUnsafe
	// Annex3B exposes ECMA-262 Annex B compatibility features such as
	// Date.prototype.toGMTString/getYear/setYear.
	Annex3B
	// Ext1 enables the "extension 1" compatibility bundle: bare \x/\u
	// escapes in string literals, leading-zero octal integer literals,
	// and eval-with-receiver semantics. ToNumber does not consult it:
	// string-to-number conversion of hex text is the same either way.
	Ext1
	// JS11 selects the Netscape JavaScript 1.1 tier.
	JS11
	// JS12 selects the Netscape JavaScript 1.2 tier.
	JS12
	// JS13 selects the Netscape JavaScript 1.3 tier.
	JS13
	// JS14 selects the Netscape JavaScript 1.4 tier.
	JS14
	// JS15 selects the Netscape JavaScript 1.5 tier.
	JS15
	// UndefDef makes GetValue on a reference with a null base return
	// Undefined instead of raising ReferenceError.
	UndefDef
)

// names maps each flag to its canonical string-form token (§6.2).
var names = []struct {
	flag Flag
	name string
}{
	{SGMLComments, "sgml_comments"},
	{UTFUnsafe, "utf_unsafe"},
	{Annex3B, "262_3b"},
	{Ext1, "ext1"},
	{JS11, "js11"},
	{JS12, "js12"},
	{JS13, "js13"},
	{JS14, "js14"},
	{JS15, "js15"},
	{UndefDef, "undefdef"},
}

// Set is a mutable bundle of compatibility flags. The zero Set has every
// flag off, matching plain ECMA-262 3rd edition behavior.
type Set struct {
	bits Flag
}

// NewSet builds a Set with the given flags already on.
func NewSet(flags ...Flag) *Set {
	s := &Set{}
	for _, f := range flags {
		s.bits |= f
	}
	return s
}

// Has reports whether flag is set.
func (s *Set) Has(flag Flag) bool {
	if s == nil {
		return false
	}
	return s.bits&flag != 0
}

// Set turns flag on or off.
func (s *Set) Set(flag Flag, on bool) {
	if on {
		s.bits |= flag
	} else {
		s.bits &^= flag
	}
}

// String renders the set in the whitespace-separated token form of §6.2.
func (s *Set) String() string {
	if s == nil || s.bits == 0 {
		return ""
	}
	var parts []string
	for _, n := range names {
		if s.bits&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, " ")
}

// Parse decodes a whitespace-separated compatibility flag string into a
// Set, applying it on top of base (base is not mutated; a new Set is
// returned). Each token may be prefixed with "no_" to clear that flag.
// A leading "=" token resets the set to zero before applying the rest.
func Parse(base *Set, text string) (*Set, error) {
	result := &Set{}
	if base != nil {
		result.bits = base.bits
	}

	fields := strings.Fields(text)
	for i, tok := range fields {
		if tok == "=" {
			result.bits = 0
			continue
		}
		if strings.HasPrefix(tok, "=") {
			result.bits = 0
			tok = tok[1:]
			if tok == "" {
				continue
			}
		}

		negate := false
		name := tok
		if strings.HasPrefix(name, "no_") {
			negate = true
			name = name[len("no_"):]
		}

		flag, ok := lookup(name)
		if !ok {
			return nil, &UnknownFlagError{Token: fields[i], Name: name}
		}
		result.Set(flag, !negate)
	}
	return result, nil
}

func lookup(name string) (Flag, bool) {
	for _, n := range names {
		if n.name == name {
			return n.flag, true
		}
	}
	return 0, false
}

// UnknownFlagError is returned by Parse when a token names no known flag.
type UnknownFlagError struct {
	Token string
	Name  string
}

func (e *UnknownFlagError) Error() string {
	return "unknown compatibility flag: " + e.Name
}
