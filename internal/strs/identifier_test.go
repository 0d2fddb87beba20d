package strs

import "testing"

func TestIsIdentifierStartASCIIModeRejectsNonASCIILetters(t *testing.T) {
	if IsIdentifierStart(rune(0xE9), false) {
		t.Error("got true, want false for a non-ASCII letter in ASCII mode")
	}
	if !IsIdentifierStart('_', false) || !IsIdentifierStart('$', false) || !IsIdentifierStart('a', false) {
		t.Error("got false for a valid ASCII identifier-start rune")
	}
}

func TestIsIdentifierStartUnicodeModeAcceptsNonASCIILetters(t *testing.T) {
	if !IsIdentifierStart(rune(0xE9), true) {
		t.Error("got false, want true for a non-ASCII letter in unicode mode")
	}
}

func TestIsIdentifierPartUnicodeModeAcceptsCombiningMarks(t *testing.T) {
	const combiningAcute = rune(0x0301)
	if IsIdentifierPart(combiningAcute, false) {
		t.Error("got true, want false for a combining mark in ASCII mode")
	}
	if !IsIdentifierPart(combiningAcute, true) {
		t.Error("got false, want true for a combining mark in unicode mode")
	}
}

func TestNormalizeIdentifierComposesDecomposedForm(t *testing.T) {
	precomposed := "caf" + string(rune(0xE9))
	decomposed := "caf" + "e" + string(rune(0x0301))
	if got := NormalizeIdentifier(decomposed); got != precomposed {
		t.Errorf("got %q, want %q", got, precomposed)
	}
}
