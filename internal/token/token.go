// Package token defines the lexical token kinds of the ECMA-262 3rd
// edition grammar (spec.md §4.1) and the source positions carried on
// each token.
package token

import "fmt"

// Type identifies the lexical category of a Token.
type Type int

const (
	// ILLEGAL marks a character the lexer could not classify.
	ILLEGAL Type = iota
	// EOF marks the end of the input stream.
	EOF
	// LineTerminator is an internal marker token: it never reaches the
	// parser as a standalone token, but Token.PrecededByNewline records
	// whether one was skipped before the token that follows it, for
	// automatic semicolon insertion (spec.md §4.3).
	LineTerminator
	// Comment is only produced when the lexer is asked to preserve
	// comments (e.g. for a pretty-printer round trip, spec.md §8).
	Comment

	IDENT
	NUMBER
	STRING
	REGEX

	literalEnd

	keywordBegin
	BREAK
	CASE
	CATCH
	CONTINUE
	DEFAULT
	DELETE
	DO
	ELSE
	FINALLY
	FOR
	FUNCTION
	IF
	IN
	INSTANCEOF
	NEW
	RETURN
	SWITCH
	THIS
	THROW
	TRY
	TYPEOF
	VAR
	VOID
	WHILE
	WITH

	NULL
	TRUE
	FALSE

	// Future-reserved words (§7.5.3 of ECMA-262 3rd edition): reserved
	// so that identifiers using them are rejected, even though the core
	// assigns them no grammar production.
	ABSTRACT
	BOOLEAN
	BYTE
	CHAR
	CLASS
	CONST
	DEBUGGER
	DOUBLE
	ENUM
	EXPORT
	EXTENDS
	FINAL
	FLOAT
	GOTO
	IMPLEMENTS
	IMPORT
	INT
	INTERFACE
	LONG
	NATIVE
	PACKAGE
	PRIVATE
	PROTECTED
	PUBLIC
	SHORT
	STATIC
	SUPER
	SYNCHRONIZED
	THROWS
	TRANSIENT
	VOLATILE
	keywordEnd

	punctuatorBegin
	LBRACE    // {
	RBRACE    // }
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	DOT       // .
	SEMICOLON // ;
	COMMA     // ,
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	EQ        // ==
	NE        // !=
	SEQ       // ===
	SNE       // !==
	PLUS      // +
	MINUS     // -
	STAR      // *
	PERCENT   // %
	PLUSPLUS  // ++
	MINUSMINUS
	SHL    // <<
	SHR    // >>
	USHR   // >>>
	AND    // &
	OR     // |
	XOR    // ^
	NOT    // !
	TILDE  // ~
	LOGAND // &&
	LOGOR  // ||
	QUESTION
	COLON
	ASSIGN
	PLUSASSIGN
	MINUSASSIGN
	STARASSIGN
	SLASHASSIGN
	PERCENTASSIGN
	SHLASSIGN
	SHRASSIGN
	USHRASSIGN
	ANDASSIGN
	ORASSIGN
	XORASSIGN
	SLASH // /
	punctuatorEnd
)

var tokenNames = map[Type]string{
	ILLEGAL:        "ILLEGAL",
	EOF:            "EOF",
	LineTerminator: "\\n",
	Comment:        "COMMENT",
	IDENT:          "IDENT",
	NUMBER:         "NUMBER",
	STRING:         "STRING",
	REGEX:          "REGEX",

	BREAK: "break", CASE: "case", CATCH: "catch", CONTINUE: "continue",
	DEFAULT: "default", DELETE: "delete", DO: "do", ELSE: "else",
	FINALLY: "finally", FOR: "for", FUNCTION: "function", IF: "if",
	IN: "in", INSTANCEOF: "instanceof", NEW: "new", RETURN: "return",
	SWITCH: "switch", THIS: "this", THROW: "throw", TRY: "try",
	TYPEOF: "typeof", VAR: "var", VOID: "void", WHILE: "while", WITH: "with",
	NULL: "null", TRUE: "true", FALSE: "false",

	ABSTRACT: "abstract", BOOLEAN: "boolean", BYTE: "byte", CHAR: "char",
	CLASS: "class", CONST: "const", DEBUGGER: "debugger", DOUBLE: "double",
	ENUM: "enum", EXPORT: "export", EXTENDS: "extends", FINAL: "final",
	FLOAT: "float", GOTO: "goto", IMPLEMENTS: "implements", IMPORT: "import",
	INT: "int", INTERFACE: "interface", LONG: "long", NATIVE: "native",
	PACKAGE: "package", PRIVATE: "private", PROTECTED: "protected",
	PUBLIC: "public", SHORT: "short", STATIC: "static", SUPER: "super",
	SYNCHRONIZED: "synchronized", THROWS: "throws", TRANSIENT: "transient",
	VOLATILE: "volatile",

	LBRACE: "{", RBRACE: "}", LPAREN: "(", RPAREN: ")",
	LBRACKET: "[", RBRACKET: "]", DOT: ".", SEMICOLON: ";", COMMA: ",",
	LT: "<", GT: ">", LE: "<=", GE: ">=", EQ: "==", NE: "!=",
	SEQ: "===", SNE: "!==", PLUS: "+", MINUS: "-", STAR: "*",
	PERCENT: "%", PLUSPLUS: "++", MINUSMINUS: "--", SHL: "<<", SHR: ">>",
	USHR: ">>>", AND: "&", OR: "|", XOR: "^", NOT: "!", TILDE: "~",
	LOGAND: "&&", LOGOR: "||", QUESTION: "?", COLON: ":", ASSIGN: "=",
	PLUSASSIGN: "+=", MINUSASSIGN: "-=", STARASSIGN: "*=", SLASHASSIGN: "/=",
	PERCENTASSIGN: "%=", SHLASSIGN: "<<=", SHRASSIGN: ">>=", USHRASSIGN: ">>>=",
	ANDASSIGN: "&=", ORASSIGN: "|=", XORASSIGN: "^=", SLASH: "/",
}

// keywords maps the lowercase spelling of every reserved word (current
// and future-reserved) to its Type. ECMA-262 identifiers, unlike
// DWScript's, are case-sensitive: "IF" is a plain identifier, not the
// IF keyword.
var keywords map[string]Type

func init() {
	keywords = make(map[string]Type)
	for t := keywordBegin + 1; t < keywordEnd; t++ {
		if name, ok := tokenNames[t]; ok {
			keywords[name] = t
		}
	}
}

// Lookup classifies ident as a keyword Type, or IDENT if it names none.
func Lookup(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}

// IsKeyword reports whether t is a reserved (or future-reserved) word.
func IsKeyword(t Type) bool {
	return t > keywordBegin && t < keywordEnd
}

// String renders the token type's canonical spelling, for error
// messages and disassembly.
func (t Type) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Position is a source location: line and column are 1-based, rune
// counted (not byte offsets), matching the teacher's column convention.
type Position struct {
	Line   int
	Column int
	Offset int // byte offset into the source
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit: its classification, the exact source
// text it was scanned from, its starting position, and whether a line
// terminator (or a line-terminator-carrying comment) appeared between
// the previous token and this one — the bit automatic semicolon
// insertion needs (spec.md §4.1, §4.3).
type Token struct {
	Type               Type
	Literal            string
	Pos                Position
	PrecededByNewline  bool
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Literal, t.Pos)
}
