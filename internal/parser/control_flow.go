package parser

import (
	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/token"
)

func (p *Parser) parseIfStatement() *ast.IfStatement {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	cons := p.parseStatement()
	var alt ast.Statement
	if p.curIs(token.ELSE) {
		p.advance()
		alt = p.parseStatement()
	}
	return &ast.IfStatement{Token: tok, Condition: cond, Consequent: cons, Alternate: alt}
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseDoWhileStatement() *ast.DoWhileStatement {
	tok := p.cur
	p.advance()
	body := p.parseStatement()
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	// the trailing `;` after do-while is always optional, not just under
	// ordinary ASI rules (ECMA-262 §12.6 grammar note).
	if p.curIs(token.SEMICOLON) {
		p.advance()
	}
	return &ast.DoWhileStatement{Token: tok, Body: body, Condition: cond}
}

// parseForStatement resolves the for/for-in ambiguity by lookahead:
// a leading `var` or bare expression is parsed first (with `in`
// excluded from its own grammar via p.noIn), and then the next token
// decides which statement shape results.
func (p *Parser) parseForStatement() ast.Statement {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)

	if p.curIs(token.SEMICOLON) {
		p.advance()
		return p.finishForStatement(tok, nil)
	}

	if p.curIs(token.VAR) {
		return p.parseForVarHead(tok)
	}

	savedNoIn := p.noIn
	p.noIn = true
	firstExpr := p.parseExpression()
	p.noIn = savedNoIn

	if p.curIs(token.IN) {
		p.advance()
		right := p.parseExpression()
		p.expect(token.RPAREN)
		body := p.parseStatement()
		return &ast.ForInStatement{Token: tok, Left: firstExpr, Right: right, Body: body}
	}
	p.expect(token.SEMICOLON)
	return p.finishForStatement(tok, firstExpr)
}

func (p *Parser) parseForVarHead(tok token.Token) ast.Statement {
	varTok := p.cur
	p.advance()
	firstName := ast.Identifier{Token: p.cur, Name: p.cur.Literal}
	p.expect(token.IDENT)

	if p.curIs(token.IN) {
		p.advance()
		right := p.parseExpression()
		p.expect(token.RPAREN)
		body := p.parseStatement()
		left := &ast.VariableStatement{Token: varTok, Declarations: []ast.VariableDeclarator{{Name: firstName}}}
		return &ast.ForInStatement{Token: tok, Left: left, Right: right, Body: body}
	}

	savedNoIn := p.noIn
	p.noIn = true
	var firstInit ast.Expression
	if p.curIs(token.ASSIGN) {
		p.advance()
		firstInit = p.parseAssignmentExpression()
	}
	decls := []ast.VariableDeclarator{{Name: firstName, Init: firstInit}}
	for p.curIs(token.COMMA) {
		p.advance()
		decls = append(decls, p.parseVariableDeclarator())
	}
	p.noIn = savedNoIn

	varStmt := &ast.VariableStatement{Token: varTok, Declarations: decls}
	p.expect(token.SEMICOLON)
	return p.finishForStatement(tok, varStmt)
}

// finishForStatement parses `test ; update ) body`, assuming init (and
// its trailing `;`) has already been consumed by the caller.
func (p *Parser) finishForStatement(tok token.Token, init ast.Node) *ast.ForStatement {
	var test ast.Expression
	if !p.curIs(token.SEMICOLON) {
		test = p.parseExpression()
	}
	p.expect(token.SEMICOLON)
	var update ast.Expression
	if !p.curIs(token.RPAREN) {
		update = p.parseExpression()
	}
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.ForStatement{Token: tok, Init: init, Test: test, Update: update, Body: body}
}

func (p *Parser) parseSwitchStatement() *ast.SwitchStatement {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	disc := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)

	var cases []ast.SwitchCase
	seenDefault := false
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		c := p.parseSwitchCase()
		if c.Test == nil {
			if seenDefault {
				p.addError("a switch statement may have at most one default clause")
			}
			seenDefault = true
		}
		cases = append(cases, c)
	}
	p.expect(token.RBRACE)
	return &ast.SwitchStatement{Token: tok, Discriminant: disc, Cases: cases}
}

func (p *Parser) parseSwitchCase() ast.SwitchCase {
	var test ast.Expression
	if p.curIs(token.CASE) {
		p.advance()
		test = p.parseExpression()
	} else {
		p.expect(token.DEFAULT)
	}
	p.expect(token.COLON)

	var stmts []ast.Statement
	for !p.curIs(token.CASE) && !p.curIs(token.DEFAULT) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		} else {
			p.advance()
		}
	}
	return ast.SwitchCase{Test: test, Consequent: stmts}
}
