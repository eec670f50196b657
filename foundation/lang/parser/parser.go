// File: parser.go
// Title: minilang Recursive Descent Parser
// Description: One method per grammar production, each consuming tokens from
//              a token.Source and returning an AST subtree. The first syntax
//              error is reported once and aborts the parse; there is no
//              recovery.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial parser implementation
//
// Grammar:
//
//	program        -> statement-list
//	statement-list -> statement (';' statement-list?)?
//	statement      -> declaration | assignment | print
//	declaration    -> ('int' | 'string') IDENT
//	assignment     -> 'set' IDENT expression
//	print          -> ('print' | 'println') expression
//	expression     -> term (('+' | '-') term)*
//	term           -> primary (('*' | '/') primary)*
//	primary        -> ICONST | SCONST | IDENT | '(' expression ')'

package parser

import (
	"fmt"
	"strconv"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	mdwlog "github.com/msto63/minilang/foundation/core/log"
	"github.com/msto63/minilang/foundation/lang/ast"
	"github.com/msto63/minilang/foundation/lang/diag"
	"github.com/msto63/minilang/foundation/lang/token"
)

// Parser implements recursive descent parsing for minilang
type Parser struct {
	src      token.Source
	logger   *mdwlog.Logger
	reporter diag.Reporter
	lastLine int
}

// Options configures parser behavior
type Options struct {
	Logger   *mdwlog.Logger
	Reporter diag.Reporter // receives the syntax error, may be nil
}

// New creates a parser reading from src
func New(src token.Source, opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	return &Parser{
		src:      src,
		logger:   opts.Logger.WithField("component", "parser"),
		reporter: opts.Reporter,
		lastLine: 1,
	}
}

// Prog parses a whole program. All input up to DONE must be consumed.
func (p *Parser) Prog() (*ast.Node, error) {
	p.logger.Debug("parsing program")

	root, err := p.StmtList()
	if err != nil {
		p.logger.Debug("parsing failed", mdwlog.Fields{"error": err.Error()})
		return nil, err
	}

	tok, err := p.peek("parser.Prog")
	if err != nil {
		return nil, err
	}
	if tok.Type != token.DONE {
		return nil, p.fail(tok, "parser.Prog", fmt.Sprintf("unexpected %s after end of program", describe(tok)))
	}

	p.logger.Debug("parsing completed", mdwlog.Fields{
		"statements": len(ast.Statements(root)),
		"lines":      p.lastLine,
	})
	return root, nil
}

// StmtList parses statement (';' statement-list?)?. A trailing ';' before
// end of input is allowed.
func (p *Parser) StmtList() (*ast.Node, error) {
	stmt, err := p.Stmt()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek("parser.StmtList")
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case token.DONE:
		return ast.NewStatementList(stmt.Line(), stmt, nil), nil
	case token.SC:
		p.advance()
	default:
		return nil, p.fail(tok, "parser.StmtList", "missing semicolon")
	}

	next, err := p.peek("parser.StmtList")
	if err != nil {
		return nil, err
	}
	if next.Type == token.DONE {
		return ast.NewStatementList(stmt.Line(), stmt, nil), nil
	}

	rest, err := p.StmtList()
	if err != nil {
		return nil, err
	}
	return ast.NewStatementList(stmt.Line(), stmt, rest), nil
}

// Stmt parses a declaration, assignment or print statement
func (p *Parser) Stmt() (*ast.Node, error) {
	tok, err := p.peek("parser.Stmt")
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case token.INT, token.STRING:
		return p.Decl()
	case token.SET:
		return p.Set()
	case token.PRINT, token.PRINTLN:
		return p.Print()
	case token.DONE:
		return nil, p.fail(tok, "parser.Stmt", "expected statement")
	default:
		return nil, p.fail(tok, "parser.Stmt", fmt.Sprintf("expected statement, found %s", describe(tok)))
	}
}

// Decl parses ('int' | 'string') IDENT
func (p *Parser) Decl() (*ast.Node, error) {
	kw, err := p.peek("parser.Decl")
	if err != nil {
		return nil, err
	}

	var typ ast.ValueType
	switch kw.Type {
	case token.INT:
		typ = ast.TypeInteger
	case token.STRING:
		typ = ast.TypeString
	default:
		return nil, p.fail(kw, "parser.Decl", fmt.Sprintf("expected type, found %s", describe(kw)))
	}
	p.advance()

	name, err := p.expectIdent("parser.Decl", "expected identifier after "+kw.Lexeme)
	if err != nil {
		return nil, err
	}

	p.logger.Trace("declaration", mdwlog.Fields{"line": kw.Line, "name": name.Lexeme, "type": typ.String()})
	return ast.NewDeclaration(kw.Line, typ, name.Lexeme), nil
}

// Set parses 'set' IDENT expression
func (p *Parser) Set() (*ast.Node, error) {
	kw, err := p.expect(token.SET, "parser.Set", "expected set")
	if err != nil {
		return nil, err
	}

	name, err := p.expectIdent("parser.Set", "expected identifier after set")
	if err != nil {
		return nil, err
	}

	expr, err := p.Expr()
	if err != nil {
		return nil, err
	}

	p.logger.Trace("assignment", mdwlog.Fields{"line": kw.Line, "name": name.Lexeme})
	return ast.NewAssignment(kw.Line, name.Lexeme, expr), nil
}

// Print parses ('print' | 'println') expression
func (p *Parser) Print() (*ast.Node, error) {
	kw, err := p.peek("parser.Print")
	if err != nil {
		return nil, err
	}
	if kw.Type != token.PRINT && kw.Type != token.PRINTLN {
		return nil, p.fail(kw, "parser.Print", fmt.Sprintf("expected print, found %s", describe(kw)))
	}
	p.advance()

	expr, err := p.Expr()
	if err != nil {
		return nil, err
	}
	return ast.NewPrint(kw.Line, expr, kw.Type == token.PRINTLN), nil
}

// Expr parses term (('+' | '-') term)*, left-associative
func (p *Parser) Expr() (*ast.Node, error) {
	left, err := p.Term()
	if err != nil {
		return nil, err
	}

	for {
		op, err := p.peek("parser.Expr")
		if err != nil {
			return nil, err
		}

		var kind ast.Kind
		switch op.Type {
		case token.PLUS:
			kind = ast.KindAddition
		case token.MINUS:
			kind = ast.KindSubtraction
		default:
			return left, nil
		}
		p.advance()

		right, err := p.Term()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(kind, op.Line, left, right)
	}
}

// Term parses primary (('*' | '/') primary)*, left-associative
func (p *Parser) Term() (*ast.Node, error) {
	left, err := p.Primary()
	if err != nil {
		return nil, err
	}

	for {
		op, err := p.peek("parser.Term")
		if err != nil {
			return nil, err
		}

		var kind ast.Kind
		switch op.Type {
		case token.STAR:
			kind = ast.KindMultiplication
		case token.SLASH:
			kind = ast.KindDivision
		default:
			return left, nil
		}
		p.advance()

		right, err := p.Primary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(kind, op.Line, left, right)
	}
}

// Primary parses a constant, an identifier or a parenthesized expression
func (p *Parser) Primary() (*ast.Node, error) {
	tok, err := p.peek("parser.Primary")
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case token.ICONST:
		v, convErr := strconv.Atoi(tok.Lexeme)
		if convErr != nil {
			return nil, p.fail(tok, "parser.Primary", fmt.Sprintf("integer constant %s out of range", tok.Lexeme))
		}
		p.advance()
		return ast.NewIntegerConstant(tok.Line, v), nil

	case token.SCONST:
		p.advance()
		return ast.NewStringConstant(tok.Line, tok.Lexeme), nil

	case token.IDENT:
		p.advance()
		return ast.NewIdentifier(tok.Line, tok.Lexeme), nil

	case token.LPAREN:
		p.advance()
		expr, err := p.Expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "parser.Primary", "missing right parenthesis"); err != nil {
			return nil, err
		}
		return expr, nil

	case token.DONE:
		return nil, p.fail(tok, "parser.Primary", "expected expression, found end of input")

	default:
		return nil, p.fail(tok, "parser.Primary", fmt.Sprintf("expected expression, found %s", describe(tok)))
	}
}

// peek returns the next token. An exhausted source reads as DONE; an ERR
// token is a syntax error.
func (p *Parser) peek(operation string) (token.Token, error) {
	tok, err := p.src.Peek()
	if err != nil {
		if mdwerror.HasCode(err, mdwerror.CodeEndOfInput) {
			return token.New(token.DONE, "", p.lastLine), nil
		}
		return token.Token{}, mdwerror.Wrap(err, "read token").WithOperation(operation)
	}
	if tok.Line > 0 {
		p.lastLine = tok.Line
	}
	if tok.Type == token.ERR {
		return tok, p.fail(tok, operation, fmt.Sprintf("unrecognized input %q", tok.Lexeme))
	}
	return tok, nil
}

// advance consumes the token returned by the last peek
func (p *Parser) advance() {
	_, _ = p.src.Next()
}

func (p *Parser) expect(typ token.Type, operation, message string) (token.Token, error) {
	tok, err := p.peek(operation)
	if err != nil {
		return tok, err
	}
	if tok.Type != typ {
		return tok, p.fail(tok, operation, message)
	}
	p.advance()
	return tok, nil
}

func (p *Parser) expectIdent(operation, message string) (token.Token, error) {
	return p.expect(token.IDENT, operation, message)
}

// fail builds the syntax error and reports it
func (p *Parser) fail(tok token.Token, operation, message string) error {
	err := newSyntaxError(tok, operation, message)
	if p.reporter != nil {
		p.reporter.Error(err.Line, err.Message)
	}
	p.logger.Debug("syntax error", mdwlog.Fields{
		"line":  err.Line,
		"token": tok.String(),
		"error": message,
	})
	return err
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.DONE:
		return "end of input"
	case token.SCONST:
		return fmt.Sprintf("string %q", tok.Lexeme)
	default:
		return fmt.Sprintf("%q", tok.Lexeme)
	}
}

// Parse runs Prog over src with default options
func Parse(src token.Source, reporter diag.Reporter) (*ast.Node, error) {
	return New(src, Options{Reporter: reporter}).Prog()
}
