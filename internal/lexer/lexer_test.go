package lexer

import (
	"testing"

	"github.com/es3vm/es3vm/internal/compat"
	"github.com/es3vm/es3vm/internal/token"
)

func tokensOf(t *testing.T, input string, opts ...Option) []token.Token {
	t.Helper()
	l := New(input, opts...)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestPunctuatorsLongestMatch(t *testing.T) {
	toks := tokensOf(t, ">>>= >>> >> >= = == === ! != !==")
	want := []token.Type{
		token.USHRASSIGN, token.USHR, token.SHR, token.GE,
		token.ASSIGN, token.EQ, token.SEQ, token.NOT, token.NE, token.SNE, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	toks := tokensOf(t, "if IF If")
	if toks[0].Type != token.IF {
		t.Fatalf("expected IF keyword, got %s", toks[0].Type)
	}
	if toks[1].Type != token.IDENT || toks[2].Type != token.IDENT {
		t.Fatalf("expected case-sensitive identifiers, got %s %s", toks[1].Type, toks[2].Type)
	}
}

func TestStringEscapes(t *testing.T) {
	toks := tokensOf(t, `'a\tb\n\101\x41A'`, WithCompat(compat.NewSet(compat.Ext1)))
	if toks[0].Type != token.STRING {
		t.Fatalf("expected STRING, got %s", toks[0].Type)
	}
	want := "a\tb\nAAA"
	if toks[0].Literal != want {
		t.Fatalf("got %q, want %q", toks[0].Literal, want)
	}
}

func TestUnterminatedStringIsError(t *testing.T) {
	l := New("'abc")
	l.Next()
	if len(l.Errors()) == 0 {
		t.Fatalf("expected unterminated-string error")
	}
}

func TestNewlineInStringIsError(t *testing.T) {
	l := New("'abc\ndef'")
	l.Next()
	if len(l.Errors()) == 0 {
		t.Fatalf("expected newline-in-string error")
	}
}

func TestNumericLiterals(t *testing.T) {
	cases := []struct{ in, want string }{
		{"123", "123"},
		{"123.45", "123.45"},
		{"1.5e10", "1.5e10"},
		{"1.5e+10", "1.5e+10"},
		{"0xFF", "0xFF"},
		{".5", ".5"},
	}
	for _, c := range cases {
		toks := tokensOf(t, c.in)
		if toks[0].Type != token.NUMBER || toks[0].Literal != c.want {
			t.Errorf("input %q: got %s %q, want NUMBER %q", c.in, toks[0].Type, toks[0].Literal, c.want)
		}
	}
}

func TestLeadingZeroOctalRequiresExt1(t *testing.T) {
	toks := tokensOf(t, "017")
	// Without ext1, "017" lexes as decimal digits 0 then 1 7 (not
	// octal-folded); the scanner still emits a single NUMBER token
	// spanning the digit run since it falls through to the plain
	// decimal path.
	if toks[0].Type != token.NUMBER {
		t.Fatalf("expected NUMBER, got %s", toks[0].Type)
	}

	toks2 := tokensOf(t, "017", WithCompat(compat.NewSet(compat.Ext1)))
	if toks2[0].Literal != "017" {
		t.Fatalf("expected octal literal 017 preserved, got %q", toks2[0].Literal)
	}
}

func TestTrailingIdentifierAfterNumberIsError(t *testing.T) {
	l := New("123abc")
	l.Next()
	if len(l.Errors()) == 0 {
		t.Fatalf("expected trailing-identifier-after-number error")
	}
}

func TestLineTerminatorTrackedForASI(t *testing.T) {
	l := New("a\nb")
	first := l.Next()
	second := l.Next()
	if first.PrecededByNewline {
		t.Fatalf("first token should not be marked preceded-by-newline")
	}
	if !second.PrecededByNewline {
		t.Fatalf("second token should be marked preceded-by-newline")
	}
}

func TestBlockCommentWithNewlineCountsForASI(t *testing.T) {
	l := New("a /* \n */ b")
	l.Next()
	second := l.Next()
	if !second.PrecededByNewline {
		t.Fatalf("block comment spanning a newline should count for ASI")
	}
}

func TestIdentifierUnicodeEscape(t *testing.T) {
	toks := tokensOf(t, "a\\u0062c")
	if toks[0].Type != token.IDENT || toks[0].Literal != "abc" {
		t.Fatalf("got %s %q, want IDENT \"abc\"", toks[0].Type, toks[0].Literal)
	}
}

func TestRescanAsRegex(t *testing.T) {
	l := New("/ab\\/c[d/]e/gi")
	before := l.Save()
	slashTok := l.Next()
	if slashTok.Type != token.SLASH {
		t.Fatalf("expected SLASH token first, got %s", slashTok.Type)
	}
	regexTok := l.RescanAsRegex(before)
	if regexTok.Type != token.REGEX {
		t.Fatalf("expected REGEX, got %s", regexTok.Type)
	}
	want := `/ab\/c[d/]e/gi`
	if regexTok.Literal != want {
		t.Fatalf("got %q, want %q", regexTok.Literal, want)
	}
}

func TestSGMLCommentCompatFlag(t *testing.T) {
	toks := tokensOf(t, "<!-- comment\n1", WithCompat(compat.NewSet(compat.SGMLComments)))
	if toks[0].Type != token.NUMBER || toks[0].Literal != "1" {
		t.Fatalf("expected sgml comment to be skipped, got %v", toks)
	}
}

func TestBOMIsStripped(t *testing.T) {
	toks := tokensOf(t, "\xEF\xBB\xBF123")
	if toks[0].Type != token.NUMBER || toks[0].Literal != "123" {
		t.Fatalf("BOM should have been stripped, got %v", toks)
	}
}
