package strs

import "testing"

func TestAppendGrowsFromInitialCapacity(t *testing.T) {
	s := New("")
	for i := 0; i < 300; i++ {
		if _, err := s.Append('a'); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if s.Len() != 300 {
		t.Fatalf("got length %d, want 300", s.Len())
	}
}

func TestStaticCannotGrow(t *testing.T) {
	s := NewStatic([]uint16{'a', 'b'})
	if _, err := s.Append('c'); err != ErrStaticGrow {
		t.Fatalf("expected ErrStaticGrow, got %v", err)
	}
}

func TestSurrogatePairRoundTrip(t *testing.T) {
	s := New("😀") // U+1F600, outside the BMP
	if s.Len() != 2 {
		t.Fatalf("expected a surrogate pair (length 2), got %d", s.Len())
	}
	out, err := s.ToUTF8()
	if err != nil {
		t.Fatalf("ToUTF8: %v", err)
	}
	if out != "😀" {
		t.Fatalf("got %q, want emoji", out)
	}
}

func TestLoneSurrogateErrors(t *testing.T) {
	s := FromUnits([]uint16{0xD800})
	if _, err := s.ToUTF8(); err != ErrLoneSurrogate {
		t.Fatalf("expected ErrLoneSurrogate, got %v", err)
	}
}

func TestCompareLexicographic(t *testing.T) {
	if New("abc").Compare(New("abd")) >= 0 {
		t.Fatalf("expected \"abc\" < \"abd\"")
	}
	if New("ab").Compare(New("abc")) >= 0 {
		t.Fatalf("expected \"ab\" < \"abc\" (prefix ordering)")
	}
	if New("abc").Compare(New("abc")) != 0 {
		t.Fatalf("expected equal strings to compare 0")
	}
}

func TestConcatDoesNotMutateInputs(t *testing.T) {
	a := New("foo")
	b := New("bar")
	c := Concat(a, b)
	if c.MustUTF8() != "foobar" {
		t.Fatalf("got %q", c.MustUTF8())
	}
	if a.MustUTF8() != "foo" || b.MustUTF8() != "bar" {
		t.Fatalf("inputs mutated: a=%q b=%q", a.MustUTF8(), b.MustUTF8())
	}
}
