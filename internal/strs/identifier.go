package strs

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// IsIdentifierStart reports whether r can begin an IdentifierName
// (spec.md §4.1). In ASCII mode (unicodeMode false, the default and
// the reference's own behavior) only ASCII letters, '_', and '$'
// qualify; unicodeMode widens this to any Unicode letter, per
// ECMA-262's own IdentifierStart production that the reference
// narrows for simplicity.
func IsIdentifierStart(r rune, unicodeMode bool) bool {
	if r == '_' || r == '$' {
		return true
	}
	if unicodeMode {
		return unicode.IsLetter(r)
	}
	return unicode.IsLetter(r) && r < 128
}

// IsIdentifierPart reports whether r can continue an IdentifierName
// already begun, adding Unicode digits and combining marks to
// IsIdentifierStart's set once unicodeMode is on.
func IsIdentifierPart(r rune, unicodeMode bool) bool {
	if IsIdentifierStart(r, unicodeMode) {
		return true
	}
	if unicodeMode {
		return unicode.IsDigit(r) || unicode.IsMark(r)
	}
	return unicode.IsDigit(r) && r < 128
}

// NormalizeIdentifier canonicalizes an identifier's text so that two
// Unicode identifiers differing only in composition (a precomposed
// accented letter versus the same letter followed by a combining
// mark) compare equal as the same binding name. Only called by the
// lexer when unicodeMode is on (WithUnicodeIdentifiers); plain ASCII
// identifiers are already in NFC and pass through unchanged.
func NormalizeIdentifier(s string) string {
	return norm.NFC.String(s)
}
