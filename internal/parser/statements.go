package parser

import (
	"github.com/es3vm/es3vm/internal/ast"
	"github.com/es3vm/es3vm/internal/token"
)

// parseStatement dispatches on the current token to the matching
// Statement production (ECMA-262 §12). A labelled statement is
// recognized by its IDENT-then-COLON lookahead.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.VAR:
		return p.parseVariableStatement()
	case token.SEMICOLON:
		return p.parseEmptyStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.WITH:
		return p.parseWithStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.DEBUGGER:
		return p.parseDebuggerStatement()
	case token.FUNCTION:
		return &ast.FunctionDeclaration{Function: p.parseFunctionLiteral()}
	case token.IDENT:
		if p.peekIs(token.COLON) {
			return p.parseLabelledStatement()
		}
		return p.parseExpressionStatement()
	case token.EOF:
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	tok := p.cur
	p.expect(token.LBRACE)
	var stmts []ast.Statement
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		} else {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return &ast.BlockStatement{Token: tok, Statements: stmts}
}

func (p *Parser) parseEmptyStatement() *ast.EmptyStatement {
	tok := p.cur
	p.advance()
	return &ast.EmptyStatement{Token: tok}
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	tok := p.cur
	expr := p.parseExpression()
	p.consumeSemicolon()
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func (p *Parser) parseVariableStatement() *ast.VariableStatement {
	tok := p.cur
	p.advance()
	decls := p.parseVariableDeclarationList()
	p.consumeSemicolon()
	return &ast.VariableStatement{Token: tok, Declarations: decls}
}

func (p *Parser) parseVariableDeclarationList() []ast.VariableDeclarator {
	decls := []ast.VariableDeclarator{p.parseVariableDeclarator()}
	for p.curIs(token.COMMA) {
		p.advance()
		decls = append(decls, p.parseVariableDeclarator())
	}
	return decls
}

// parseVariableDeclarator respects p.noIn implicitly: its initializer
// is parsed via parseAssignmentExpression, which defers to
// parseBinaryExpression's own NoIn check.
func (p *Parser) parseVariableDeclarator() ast.VariableDeclarator {
	name := ast.Identifier{Token: p.cur, Name: p.cur.Literal}
	p.expect(token.IDENT)
	var init ast.Expression
	if p.curIs(token.ASSIGN) {
		p.advance()
		init = p.parseAssignmentExpression()
	}
	return ast.VariableDeclarator{Name: name, Init: init}
}

func (p *Parser) parseContinueStatement() *ast.ContinueStatement {
	tok := p.cur
	p.advance()
	label := ""
	if p.curIs(token.IDENT) && !p.curNewline {
		label = p.cur.Literal
		p.advance()
	}
	p.consumeSemicolon()
	return &ast.ContinueStatement{Token: tok, Label: label}
}

func (p *Parser) parseBreakStatement() *ast.BreakStatement {
	tok := p.cur
	p.advance()
	label := ""
	if p.curIs(token.IDENT) && !p.curNewline {
		label = p.cur.Literal
		p.advance()
	}
	p.consumeSemicolon()
	return &ast.BreakStatement{Token: tok, Label: label}
}

// parseReturnStatement enforces the restricted production (no line
// terminator before the return value) and rejects a top-level return.
func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	tok := p.cur
	p.advance()
	if p.funcDepth == 0 {
		p.addError("return statement outside a function body")
	}
	var arg ast.Expression
	if !p.curIs(token.SEMICOLON) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) && !p.curNewline {
		arg = p.parseExpression()
	}
	p.consumeSemicolon()
	return &ast.ReturnStatement{Token: tok, Argument: arg}
}

func (p *Parser) parseWithStatement() *ast.WithStatement {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	obj := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.WithStatement{Token: tok, Object: obj, Body: body}
}

// parseThrowStatement enforces the same restricted production as
// return: `throw` and its argument must be on the same line.
func (p *Parser) parseThrowStatement() *ast.ThrowStatement {
	tok := p.cur
	p.advance()
	if p.curNewline {
		p.addError("illegal line break between throw and its argument")
	}
	arg := p.parseExpression()
	p.consumeSemicolon()
	return &ast.ThrowStatement{Token: tok, Argument: arg}
}

func (p *Parser) parseTryStatement() *ast.TryStatement {
	tok := p.cur
	p.advance()
	block := p.parseBlockStatement()

	var catch *ast.CatchClause
	if p.curIs(token.CATCH) {
		p.advance()
		p.expect(token.LPAREN)
		param := ast.Identifier{Token: p.cur, Name: p.cur.Literal}
		p.expect(token.IDENT)
		p.expect(token.RPAREN)
		catch = &ast.CatchClause{Param: param, Body: p.parseBlockStatement()}
	}

	var finally *ast.BlockStatement
	if p.curIs(token.FINALLY) {
		p.advance()
		finally = p.parseBlockStatement()
	}

	if catch == nil && finally == nil {
		p.addError("missing catch or finally after try block")
	}
	return &ast.TryStatement{Token: tok, Block: block, Catch: catch, Finally: finally}
}

func (p *Parser) parseDebuggerStatement() *ast.DebuggerStatement {
	tok := p.cur
	p.advance()
	p.consumeSemicolon()
	return &ast.DebuggerStatement{Token: tok}
}

func (p *Parser) parseLabelledStatement() *ast.LabelledStatement {
	tok := p.cur
	label := p.cur.Literal
	p.advance()
	p.expect(token.COLON)
	body := p.parseStatement()
	return &ast.LabelledStatement{Token: tok, Label: label, Body: body}
}
