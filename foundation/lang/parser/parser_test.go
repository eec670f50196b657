// File: parser_test.go
// Title: Parser Tests
// Description: Tests for every production, precedence and associativity,
//              statement terminators, line numbers and syntax errors.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial tests

package parser

import (
	"testing"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	mdwlog "github.com/msto63/minilang/foundation/core/log"
	"github.com/msto63/minilang/foundation/lang/ast"
	"github.com/msto63/minilang/foundation/lang/diag"
	"github.com/msto63/minilang/foundation/lang/lexer"
	"github.com/msto63/minilang/foundation/lang/token"
)

func newTestParser(input string, reporter diag.Reporter) *Parser {
	return New(lexer.New(input), Options{Logger: mdwlog.Discard(), Reporter: reporter})
}

func parseProgram(t *testing.T, input string) *ast.Node {
	t.Helper()
	root, err := newTestParser(input, nil).Prog()
	if err != nil {
		t.Fatalf("Prog(%q) error = %v", input, err)
	}
	return root
}

func TestProg_Statements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []ast.Kind
	}{
		{"single declaration", "int x", []ast.Kind{ast.KindDeclaration}},
		{"trailing semicolon", "int x;", []ast.Kind{ast.KindDeclaration}},
		{"three statements", "int x; set x 5; print x", []ast.Kind{ast.KindDeclaration, ast.KindAssignment, ast.KindPrint}},
		{"multi line", "string s;\nset s \"hi\";\nprintln s;\n", []ast.Kind{ast.KindDeclaration, ast.KindAssignment, ast.KindPrint}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseProgram(t, tt.input)
			if root.Kind() != ast.KindStatementList {
				t.Fatalf("root kind = %v, want StatementList", root.Kind())
			}
			stmts := ast.Statements(root)
			if len(stmts) != len(tt.kinds) {
				t.Fatalf("got %d statements, want %d", len(stmts), len(tt.kinds))
			}
			for i, k := range tt.kinds {
				if stmts[i].Kind() != k {
					t.Errorf("statement %d kind = %v, want %v", i, stmts[i].Kind(), k)
				}
			}
		})
	}
}

func TestProg_Lines(t *testing.T) {
	root := parseProgram(t, "\nint x;\nset x\n  1 +\n  2;\nprintln x")
	stmts := ast.Statements(root)

	if root.Line() != 2 {
		t.Errorf("statement list line = %d, want 2", root.Line())
	}
	wantLines := []int{2, 3, 6}
	for i, want := range wantLines {
		if stmts[i].Line() != want {
			t.Errorf("statement %d line = %d, want %d", i, stmts[i].Line(), want)
		}
	}
	if add := stmts[1].Left(); add.Kind() != ast.KindAddition || add.Line() != 4 {
		t.Errorf("addition = %v, want line 4", add)
	}
	if !stmts[2].AppendsNewline() {
		t.Error("println should set the newline flag")
	}
}

func TestExpr_PrecedenceAndAssociativity(t *testing.T) {
	tests := []struct {
		input string
		tree  *ast.Node
	}{
		{
			input: "x + y + z",
			tree:  ast.NewAddition(1, ast.NewAddition(1, ident("x"), ident("y")), ident("z")),
		},
		{
			input: "a - b - c",
			tree:  ast.NewSubtraction(1, ast.NewSubtraction(1, ident("a"), ident("b")), ident("c")),
		},
		{
			input: "a + b * c",
			tree:  ast.NewAddition(1, ident("a"), ast.NewMultiplication(1, ident("b"), ident("c"))),
		},
		{
			input: "(a + b) * c",
			tree:  ast.NewMultiplication(1, ast.NewAddition(1, ident("a"), ident("b")), ident("c")),
		},
		{
			input: "a / b * c",
			tree:  ast.NewMultiplication(1, ast.NewDivision(1, ident("a"), ident("b")), ident("c")),
		},
		{
			input: "((7))",
			tree:  ast.NewIntegerConstant(1, 7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := newTestParser(tt.input, nil).Expr()
			if err != nil {
				t.Fatalf("Expr() error = %v", err)
			}
			if ast.Format(got) != ast.Format(tt.tree) {
				t.Errorf("Expr() =\n%s\nwant\n%s", ast.Format(got), ast.Format(tt.tree))
			}
		})
	}
}

func ident(name string) *ast.Node { return ast.NewIdentifier(1, name) }

func TestPlusCount(t *testing.T) {
	root, err := newTestParser("x + y + z", nil).Expr()
	if err != nil {
		t.Fatalf("Expr() error = %v", err)
	}
	if got := ast.TraceAndCount(root, (*ast.Node).CountPlus); got != 2 {
		t.Errorf("plus count = %d, want 2", got)
	}
}

func TestProductions(t *testing.T) {
	tests := []struct {
		name  string
		parse func(*Parser) (*ast.Node, error)
		input string
		want  string
	}{
		{"Decl int", (*Parser).Decl, "int count", "Declaration(int count)@1"},
		{"Decl string", (*Parser).Decl, "string s", "Declaration(string s)@1"},
		{"Set", (*Parser).Set, "set x 1", "Assignment(x)@1"},
		{"Print", (*Parser).Print, "print \"a\"", "Print(print)@1"},
		{"Println", (*Parser).Print, "println 3", "Print(println)@1"},
		{"Stmt", (*Parser).Stmt, "set y y", "Assignment(y)@1"},
		{"Term", (*Parser).Term, "2 * 3", "Multiplication(*)@1"},
		{"Primary string", (*Parser).Primary, "\"hi\"", `StringConstant("hi")@1`},
		{"Primary int", (*Parser).Primary, "42", "IntegerConstant(42)@1"},
		{"Primary ident", (*Parser).Primary, "v", "Identifier(v)@1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parse(newTestParser(tt.input, nil))
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestProg_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantMsg  string
	}{
		{"empty input", "", 1, "expected statement"},
		{"only comment", "# nothing\n", 2, "expected statement"},
		{"missing semicolon", "int x\nset x 1", 2, "missing semicolon"},
		{"missing identifier", "int 5", 1, "expected identifier after int"},
		{"set without identifier", "set 5 5", 1, "expected identifier after set"},
		{"missing expression", "print", 1, "expected expression, found end of input"},
		{"unbalanced parenthesis", "print (1 + 2", 1, "missing right parenthesis"},
		{"dangling operator", "int x; set x 1 +;", 1, `expected expression, found ";"`},
		{"unknown statement", "x = 1", 1, `expected statement, found "x"`},
		{"double semicolon", "int x;;", 1, `expected statement, found ";"`},
		{"unrecognized character", "int x;\nset x 1 % 2", 2, `unrecognized input "%"`},
		{"unterminated string", "print \"abc", 1, `unrecognized input "\"abc"`},
		{"non-ASCII character", "int zähler;", 1, `unrecognized input "ä"`},
		{"integer overflow", "print 99999999999999999999999", 1, "integer constant 99999999999999999999999 out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := diag.NewCollector()
			root, err := newTestParser(tt.input, collector).Prog()

			if root != nil {
				t.Error("a failed parse must not produce a tree")
			}
			se, ok := AsSyntaxError(err)
			if !ok {
				t.Fatalf("error = %v, want *SyntaxError", err)
			}
			if se.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", se.Line, tt.wantLine)
			}
			if se.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", se.Message, tt.wantMsg)
			}
			if !mdwerror.HasCode(err, mdwerror.CodeSyntax) {
				t.Error("syntax error should unwrap to SYNTAX_ERROR")
			}

			diags := collector.Diagnostics()
			if len(diags) != 1 {
				t.Fatalf("reported %d diagnostics, want exactly 1", len(diags))
			}
			if diags[0].Kind != diag.KindSyntax || diags[0].Line != tt.wantLine {
				t.Errorf("reported %+v", diags[0])
			}
		})
	}
}

func TestParse_SliceSource(t *testing.T) {
	// no DONE token: exhaustion counts as end of program
	src := token.NewSliceSource([]token.Token{
		token.New(token.INT, "int", 1),
		token.New(token.IDENT, "x", 1),
		token.New(token.SC, ";", 1),
		token.New(token.PRINT, "print", 2),
		token.New(token.IDENT, "x", 2),
	})

	root, err := Parse(src, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if n := len(ast.Statements(root)); n != 2 {
		t.Errorf("got %d statements, want 2", n)
	}
}

func TestSyntaxError_Error(t *testing.T) {
	err := newSyntaxError(token.New(token.SC, ";", 3), "parser.Stmt", "expected statement")
	if err.Error() != "syntax error at line 3: expected statement" {
		t.Errorf("Error() = %q", err.Error())
	}
	if _, ok := AsSyntaxError(mdwerror.New("other")); ok {
		t.Error("AsSyntaxError() matched a non-syntax error")
	}
}
