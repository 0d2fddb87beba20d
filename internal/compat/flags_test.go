package compat

import "testing"

func TestParseTogglesFlags(t *testing.T) {
	s, err := Parse(nil, "ext1 262_3b")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !s.Has(Ext1) || !s.Has(Annex3B) {
		t.Fatalf("expected ext1 and 262_3b set, got %q", s.String())
	}
	if s.Has(JS11) {
		t.Fatalf("js11 should not be set")
	}
}

func TestParseNegation(t *testing.T) {
	base, _ := Parse(nil, "ext1 262_3b")
	s, err := Parse(base, "no_ext1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Has(Ext1) {
		t.Fatalf("ext1 should have been cleared")
	}
	if !s.Has(Annex3B) {
		t.Fatalf("262_3b should still be set")
	}
}

func TestParseResetToken(t *testing.T) {
	base, _ := Parse(nil, "ext1 262_3b js11")
	s, err := Parse(base, "= js12")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Has(Ext1) || s.Has(Annex3B) || s.Has(JS11) {
		t.Fatalf("reset token should have cleared prior flags, got %q", s.String())
	}
	if !s.Has(JS12) {
		t.Fatalf("js12 should be set after reset")
	}
}

func TestParseUnknownFlag(t *testing.T) {
	_, err := Parse(nil, "bogus_flag")
	if err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestStringRoundTrip(t *testing.T) {
	s, err := Parse(nil, "ext1 js15 undefdef")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	again, err := Parse(nil, s.String())
	if err != nil {
		t.Fatalf("Parse round trip: %v", err)
	}
	if again.bits != s.bits {
		t.Fatalf("round trip mismatch: %q vs %q", s.String(), again.String())
	}
}
