package parser

import (
	"math"
	"strconv"
	"unicode/utf16"

	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/token"
)

// precedence levels for BinaryExpression/LogicalExpression operators
// (ECMA-262 §11.5-§11.11), tightest binding last.
const (
	precNone = iota
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

func binaryPrecedence(t token.Type) int {
	switch t {
	case token.LOGOR:
		return precLogicalOr
	case token.LOGAND:
		return precLogicalAnd
	case token.OR:
		return precBitOr
	case token.XOR:
		return precBitXor
	case token.AND:
		return precBitAnd
	case token.EQ, token.NE, token.SEQ, token.SNE:
		return precEquality
	case token.LT, token.GT, token.LE, token.GE, token.INSTANCEOF, token.IN:
		return precRelational
	case token.SHL, token.SHR, token.USHR:
		return precShift
	case token.PLUS, token.MINUS:
		return precAdditive
	case token.STAR, token.SLASH, token.PERCENT:
		return precMultiplicative
	default:
		return precNone
	}
}

var assignOps = map[token.Type]bool{
	token.ASSIGN: true, token.PLUSASSIGN: true, token.MINUSASSIGN: true,
	token.STARASSIGN: true, token.SLASHASSIGN: true, token.PERCENTASSIGN: true,
	token.SHLASSIGN: true, token.SHRASSIGN: true, token.USHRASSIGN: true,
	token.ANDASSIGN: true, token.ORASSIGN: true, token.XORASSIGN: true,
}

// parseExpression parses the comma-operator Expression production
// (ECMA-262 §11.14).
func (p *Parser) parseExpression() ast.Expression {
	tok := p.cur
	first := p.parseAssignmentExpression()
	if !p.curIs(token.COMMA) {
		return first
	}
	exprs := []ast.Expression{first}
	for p.curIs(token.COMMA) {
		p.advance()
		exprs = append(exprs, p.parseAssignmentExpression())
	}
	return &ast.SequenceExpression{Token: tok, Expressions: exprs}
}

// parseAssignmentExpression handles `=` and the compound assignment
// operators (ECMA-262 §11.13), right-associative.
func (p *Parser) parseAssignmentExpression() ast.Expression {
	left := p.parseConditionalExpression()
	if assignOps[p.cur.Type] {
		opTok := p.cur
		p.advance()
		right := p.parseAssignmentExpression()
		return &ast.AssignmentExpression{Token: opTok, Target: left, Operator: opTok.Literal, Value: right}
	}
	return left
}

// parseConditionalExpression handles the ternary `test ? cons : alt`
// (ECMA-262 §11.12). The consequent always allows `in` regardless of
// the enclosing NoIn context — only the alternate inherits it, per the
// grammar's ConditionalExpressionNoIn production.
func (p *Parser) parseConditionalExpression() ast.Expression {
	test := p.parseBinaryExpression(precLogicalOr)
	if !p.curIs(token.QUESTION) {
		return test
	}
	tok := p.cur
	p.advance()
	outerNoIn := p.noIn
	p.noIn = false
	cons := p.parseAssignmentExpression()
	p.noIn = outerNoIn
	p.expect(token.COLON)
	alt := p.parseAssignmentExpression()
	return &ast.ConditionalExpression{Token: tok, Test: test, Consequent: cons, Alternate: alt}
}

// parseBinaryExpression is precedence-climbing over every left-
// associative binary/logical operator. `in` is skipped entirely when
// p.noIn is set (a for-statement's own init clause).
func (p *Parser) parseBinaryExpression(minPrec int) ast.Expression {
	left := p.parseUnaryExpression()
	for {
		if p.curIs(token.IN) && p.noIn {
			break
		}
		prec := binaryPrecedence(p.cur.Type)
		if prec == precNone || prec < minPrec {
			break
		}
		opTok := p.cur
		p.advance()
		right := p.parseBinaryExpression(prec + 1)
		if opTok.Type == token.LOGAND || opTok.Type == token.LOGOR {
			left = &ast.LogicalExpression{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
		} else {
			left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
		}
	}
	return left
}

var prefixUnaryOps = map[token.Type]bool{
	token.NOT: true, token.TILDE: true, token.PLUS: true, token.MINUS: true,
	token.TYPEOF: true, token.VOID: true, token.DELETE: true,
}

// parseUnaryExpression handles the prefix operators of ECMA-262 §11.4
// (plus prefix ++/-- from §11.4.4/§11.4.5), then falls through to
// postfix update expressions and the LeftHandSideExpression grammar.
func (p *Parser) parseUnaryExpression() ast.Expression {
	switch {
	case prefixUnaryOps[p.cur.Type]:
		opTok := p.cur
		p.advance()
		operand := p.parseUnaryExpression()
		return &ast.UnaryExpression{Token: opTok, Operator: opTok.Literal, Operand: operand}
	case p.cur.Type == token.PLUSPLUS || p.cur.Type == token.MINUSMINUS:
		opTok := p.cur
		p.advance()
		operand := p.parseUnaryExpression()
		return &ast.UnaryExpression{Token: opTok, Operator: opTok.Literal, Operand: operand}
	default:
		return p.parsePostfixExpression()
	}
}

// parsePostfixExpression handles the postfix `expr++`/`expr--`
// restricted production (ECMA-262 §7.9.1): no line terminator may
// separate the operand from the operator, or it is not postfix at all.
func (p *Parser) parsePostfixExpression() ast.Expression {
	expr := p.parseLeftHandSideExpression()
	if (p.curIs(token.PLUSPLUS) || p.curIs(token.MINUSMINUS)) && !p.curNewline {
		opTok := p.cur
		p.advance()
		return &ast.UpdateExpression{Token: opTok, Operator: opTok.Literal, Operand: expr}
	}
	return expr
}

// parseLeftHandSideExpression handles NewExpression/CallExpression
// (ECMA-262 §11.2): a MemberExpression, an arbitrarily deep `new`
// chain, and any trailing .prop / [expr] / (args) suffixes.
func (p *Parser) parseLeftHandSideExpression() ast.Expression {
	var expr ast.Expression
	if p.curIs(token.NEW) {
		expr = p.parseNewExpression()
	} else {
		expr = p.parsePrimaryExpression()
	}
	return p.parseCallTail(expr)
}

// parseNewExpression consumes `new` and an arbitrarily nested callee
// (another `new ...`, or a MemberExpression), taking at most one
// Arguments list — exactly the one immediately following this `new`.
func (p *Parser) parseNewExpression() ast.Expression {
	newTok := p.cur
	p.advance()
	var callee ast.Expression
	if p.curIs(token.NEW) {
		callee = p.parseNewExpression()
	} else {
		callee = p.parsePrimaryExpression()
	}
	callee = p.parseMemberTailNoCall(callee)
	var args []ast.Expression
	if p.curIs(token.LPAREN) {
		args = p.parseArguments()
	}
	return &ast.NewExpression{Token: newTok, Callee: callee, Arguments: args}
}

// parseMemberTailNoCall consumes .prop/[expr] suffixes only — used
// while scanning a `new` callee, which binds tighter than any call.
func (p *Parser) parseMemberTailNoCall(expr ast.Expression) ast.Expression {
	for {
		switch p.cur.Type {
		case token.DOT:
			dotTok := p.cur
			p.advance()
			propTok := p.cur
			p.advance()
			expr = &ast.MemberExpression{Token: dotTok, Object: expr, Property: &ast.Identifier{Token: propTok, Name: propTok.Literal}, Computed: false}
		case token.LBRACKET:
			expr = p.parseComputedMember(expr)
		default:
			return expr
		}
	}
}

// parseComputedMember parses the `[expr]` suffix of a MemberExpression.
// The bracketed index always allows `in`, regardless of any enclosing
// for-init NoIn context.
func (p *Parser) parseComputedMember(obj ast.Expression) ast.Expression {
	lbTok := p.cur
	p.advance()
	savedNoIn := p.noIn
	p.noIn = false
	idx := p.parseExpression()
	p.noIn = savedNoIn
	p.expect(token.RBRACKET)
	return &ast.MemberExpression{Token: lbTok, Object: obj, Property: idx, Computed: true}
}

// parseCallTail consumes any run of .prop/[expr]/(args) suffixes.
func (p *Parser) parseCallTail(expr ast.Expression) ast.Expression {
	for {
		switch p.cur.Type {
		case token.DOT:
			dotTok := p.cur
			p.advance()
			propTok := p.cur
			p.advance()
			expr = &ast.MemberExpression{Token: dotTok, Object: expr, Property: &ast.Identifier{Token: propTok, Name: propTok.Literal}, Computed: false}
		case token.LBRACKET:
			expr = p.parseComputedMember(expr)
		case token.LPAREN:
			callTok := p.cur
			args := p.parseArguments()
			expr = &ast.CallExpression{Token: callTok, Callee: expr, Arguments: args}
		default:
			return expr
		}
	}
}

// parseArguments parses `(arg, arg, ...)`. Argument expressions always
// allow `in`, regardless of any enclosing for-init NoIn context.
func (p *Parser) parseArguments() []ast.Expression {
	p.expect(token.LPAREN)
	savedNoIn := p.noIn
	p.noIn = false
	var args []ast.Expression
	if !p.curIs(token.RPAREN) {
		args = append(args, p.parseAssignmentExpression())
		for p.curIs(token.COMMA) {
			p.advance()
			args = append(args, p.parseAssignmentExpression())
		}
	}
	p.noIn = savedNoIn
	p.expect(token.RPAREN)
	return args
}

// parsePrimaryExpression handles PrimaryExpression (ECMA-262 §11.1):
// `this`, literals, identifiers, parenthesized expressions, array and
// object literals, function expressions, and regex literals (which
// require a lexer rescan since `/` was first tokenized as SLASH).
func (p *Parser) parsePrimaryExpression() ast.Expression {
	switch p.cur.Type {
	case token.THIS:
		tok := p.cur
		p.advance()
		return &ast.ThisExpression{Token: tok}
	case token.NULL:
		tok := p.cur
		p.advance()
		return &ast.NullLiteral{Token: tok}
	case token.TRUE, token.FALSE:
		tok := p.cur
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}
	case token.NUMBER:
		return p.parseNumberLiteral()
	case token.STRING:
		return p.parseStringLiteral()
	case token.IDENT:
		tok := p.cur
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	case token.FUNCTION:
		return p.parseFunctionLiteral()
	case token.LPAREN:
		p.advance()
		savedNoIn := p.noIn
		p.noIn = false
		expr := p.parseExpression()
		p.noIn = savedNoIn
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.SLASH, token.SLASHASSIGN:
		if regexTok, ok := p.rescanCurAsRegex(); ok {
			pattern, flags := splitRegexLiteral(regexTok.Literal)
			return &ast.RegexLiteral{Token: regexTok, Pattern: pattern, Flags: flags}
		}
		return p.unexpectedToken()
	default:
		return p.unexpectedToken()
	}
}

func (p *Parser) unexpectedToken() ast.Expression {
	p.addError("unexpected token %s (%q)", p.cur.Type, p.cur.Literal)
	tok := p.cur
	p.advance()
	return &ast.NullLiteral{Token: tok}
}

// splitRegexLiteral splits a scanned `/pattern/flags` literal at its
// closing, unescaped, outside-a-character-class slash.
func splitRegexLiteral(lit string) (pattern, flags string) {
	inClass := false
	i := 1
	for i < len(lit) {
		switch lit[i] {
		case '\\':
			i += 2
			continue
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				return lit[1:i], lit[i+1:]
			}
		}
		i++
	}
	return lit[1:], ""
}

func (p *Parser) parseNumberLiteral() *ast.NumberLiteral {
	tok := p.cur
	p.advance()
	return &ast.NumberLiteral{Token: tok, Value: parseNumericLiteral(tok.Literal)}
}

// parseNumericLiteral converts a lexer-scanned numeric literal
// (decimal, hex `0x`, or ext1 octal `0...`) to its float64 value.
func parseNumericLiteral(lit string) float64 {
	if len(lit) > 2 && lit[0] == '0' && (lit[1] == 'x' || lit[1] == 'X') {
		v, err := strconv.ParseUint(lit[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(v)
	}
	if len(lit) > 1 && lit[0] == '0' && isAllOctalDigits(lit[1:]) {
		v, err := strconv.ParseUint(lit[1:], 8, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(v)
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func isAllOctalDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '7' {
			return false
		}
	}
	return true
}

func (p *Parser) parseStringLiteral() *ast.StringLiteral {
	tok := p.cur
	p.advance()
	return &ast.StringLiteral{Token: tok, Units: utf16.Encode([]rune(tok.Literal))}
}

// parseArrayLiteral handles elisions (`[1, , 3]`) as nil elements,
// without letting a single trailing comma add one (ECMA-262 §11.1.4).
func (p *Parser) parseArrayLiteral() *ast.ArrayLiteral {
	tok := p.cur
	p.advance()
	savedNoIn := p.noIn
	p.noIn = false
	var elems []ast.Expression
	for !p.curIs(token.RBRACKET) {
		if p.curIs(token.EOF) {
			p.addError("unterminated array literal")
			break
		}
		if p.curIs(token.COMMA) {
			elems = append(elems, nil)
			p.advance()
			continue
		}
		elems = append(elems, p.parseAssignmentExpression())
		if !p.curIs(token.RBRACKET) {
			p.expect(token.COMMA)
		}
	}
	p.noIn = savedNoIn
	p.expect(token.RBRACKET)
	return &ast.ArrayLiteral{Token: tok, Elements: elems}
}

// parseObjectLiteral handles PropertyAssignment (ECMA-262 §11.1.5),
// including the `get`/`set` accessor shorthand.
func (p *Parser) parseObjectLiteral() *ast.ObjectLiteral {
	tok := p.cur
	p.advance()
	savedNoIn := p.noIn
	p.noIn = false
	var props []ast.Property
	for !p.curIs(token.RBRACE) {
		if p.curIs(token.EOF) {
			p.addError("unterminated object literal")
			break
		}
		props = append(props, p.parsePropertyAssignment())
		if !p.curIs(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	p.noIn = savedNoIn
	p.expect(token.RBRACE)
	return &ast.ObjectLiteral{Token: tok, Properties: props}
}

func (p *Parser) parsePropertyAssignment() ast.Property {
	if p.curIs(token.IDENT) && (p.cur.Literal == "get" || p.cur.Literal == "set") && p.isPropertyNameStart(p.peek) {
		kind := ast.PropertyGet
		if p.cur.Literal == "set" {
			kind = ast.PropertySet
		}
		accessorTok := p.cur
		p.advance()
		key := p.parsePropertyName()
		fn := p.finishFunctionLiteral(accessorTok, nil)
		return ast.Property{Key: key, Value: fn, Kind: kind}
	}
	key := p.parsePropertyName()
	p.expect(token.COLON)
	value := p.parseAssignmentExpression()
	return ast.Property{Key: key, Value: value, Kind: ast.PropertyInit}
}

func (p *Parser) isPropertyNameStart(t token.Token) bool {
	switch t.Type {
	case token.IDENT, token.STRING, token.NUMBER:
		return true
	default:
		return token.IsKeyword(t.Type)
	}
}

func (p *Parser) parsePropertyName() ast.Expression {
	switch p.cur.Type {
	case token.STRING:
		return p.parseStringLiteral()
	case token.NUMBER:
		return p.parseNumberLiteral()
	default:
		tok := p.cur
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	}
}

// parseFunctionLiteral handles a FunctionExpression or the function
// part of a FunctionDeclaration (ECMA-262 §13): `function name? (params) { body }`.
func (p *Parser) parseFunctionLiteral() *ast.FunctionLiteral {
	tok := p.cur
	p.advance()
	var name *ast.Identifier
	if p.curIs(token.IDENT) {
		name = &ast.Identifier{Token: p.cur, Name: p.cur.Literal}
		p.advance()
	}
	return p.finishFunctionLiteral(tok, name)
}

func (p *Parser) finishFunctionLiteral(tok token.Token, name *ast.Identifier) *ast.FunctionLiteral {
	params := p.parseParameterList()
	p.funcDepth++
	savedNoIn := p.noIn
	p.noIn = false
	body := p.parseBlockStatement()
	p.noIn = savedNoIn
	p.funcDepth--
	return &ast.FunctionLiteral{Token: tok, Name: name, Parameters: params, Body: body}
}

func (p *Parser) parseParameterList() []ast.Identifier {
	p.expect(token.LPAREN)
	var params []ast.Identifier
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		if p.curIs(token.IDENT) {
			params = append(params, ast.Identifier{Token: p.cur, Name: p.cur.Literal})
			p.advance()
		} else {
			p.addError("expected parameter name, got %s", p.cur.Type)
			p.advance()
		}
		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	return params
}
