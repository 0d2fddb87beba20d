package lexer

import (
	"testing"

	"github.com/es3vm/es3vm/internal/token"
)

func TestASCIIModeRejectsNonASCIILetterAsIdentifierStart(t *testing.T) {
	name := "caf" + string(rune(0xE9)) // "café"
	toks := tokensOf(t, name)
	if toks[0].Type != token.IDENT || toks[0].Literal != "caf" {
		t.Fatalf("got %v, want IDENT 'caf' (non-ASCII letter not an ASCII identifier part)", toks[0])
	}
}

func TestUnicodeIdentifiersOptionAcceptsNonASCIILetters(t *testing.T) {
	name := "caf" + string(rune(0xE9)) // "café"
	toks := tokensOf(t, name, WithUnicodeIdentifiers(true))
	if toks[0].Type != token.IDENT || toks[0].Literal != name {
		t.Fatalf("got %v, want IDENT %q", toks[0], name)
	}
}

func TestUnicodeIdentifiersNormalizeComposedAndDecomposedForms(t *testing.T) {
	// U+00E9 (precomposed LATIN SMALL LETTER E WITH ACUTE) versus "e"
	// followed by U+0301 (COMBINING ACUTE ACCENT) must scan to the
	// same NFC-normalized identifier text once unicode mode is on.
	precomposed := "caf" + string(rune(0xE9))
	decomposed := "caf" + "e" + string(rune(0x0301))

	a := tokensOf(t, precomposed, WithUnicodeIdentifiers(true))
	b := tokensOf(t, decomposed, WithUnicodeIdentifiers(true))

	if a[0].Literal != b[0].Literal {
		t.Fatalf("got %q vs %q, want identical NFC-normalized literals", a[0].Literal, b[0].Literal)
	}
	if a[0].Literal != precomposed {
		t.Fatalf("got %q, want NFC form %q", a[0].Literal, precomposed)
	}
}
