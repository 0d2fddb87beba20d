package strs

import "testing"

func TestInternIsIdempotent(t *testing.T) {
	tab := NewTable()
	a := tab.InternString("hello")
	b := tab.Intern(tab.Intern(a))
	if a != b {
		t.Fatalf("Intern(Intern(s)) should equal Intern(s) by pointer")
	}
}

func TestInternEqualContentSharesPointer(t *testing.T) {
	tab := NewTable()
	a := tab.InternString("same")
	b := tab.InternString("same")
	if a != b {
		t.Fatalf("two interned strings with identical code units must share a pointer")
	}
}

func TestInternDifferentContentDiffers(t *testing.T) {
	tab := NewTable()
	a := tab.InternString("x")
	b := tab.InternString("y")
	if a == b {
		t.Fatalf("different content must not share a pointer")
	}
}

func TestInternDoesNotAliasCallerBuffer(t *testing.T) {
	tab := NewTable()
	src := New("mutate-me")
	interned := tab.Intern(src)
	src.flags = 0
	if _, err := src.Append('!'); err != nil {
		t.Fatalf("Append on the un-interned source failed: %v", err)
	}
	if interned.MustUTF8() != "mutate-me" {
		t.Fatalf("interning should have copied, got %q", interned.MustUTF8())
	}
}
