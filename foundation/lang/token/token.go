// File: token.go
// Title: minilang Tokens
// Description: Token types, the immutable Token value and the Source
//              contract the parser consumes.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial implementation

package token

import (
	"fmt"
)

// Type represents the type of a lexical token
type Type int

const (
	// Keywords
	PRINT Type = iota
	PRINTLN
	SET
	INT
	STRING

	// Identifiers and literals
	IDENT  // x, total_2
	ICONST // 42
	SCONST // "text", stored without quotes

	// Operators and delimiters
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	LPAREN // (
	RPAREN // )
	SC     // ;

	// Special tokens
	ERR  // malformed lexeme
	DONE // end of input
)

var typeNames = [...]string{
	PRINT:   "PRINT",
	PRINTLN: "PRINTLN",
	SET:     "SET",
	INT:     "INT",
	STRING:  "STRING",
	IDENT:   "IDENT",
	ICONST:  "ICONST",
	SCONST:  "SCONST",
	PLUS:    "PLUS",
	MINUS:   "MINUS",
	STAR:    "STAR",
	SLASH:   "SLASH",
	LPAREN:  "LPAREN",
	RPAREN:  "RPAREN",
	SC:      "SC",
	ERR:     "ERR",
	DONE:    "DONE",
}

// String returns the upper-case name of the token type
func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "UNKNOWN"
}

// IsKeyword reports whether t is one of the statement or type keywords
func (t Type) IsKeyword() bool {
	return t >= PRINT && t <= STRING
}

var keywords = map[string]Type{
	"print":   PRINT,
	"println": PRINTLN,
	"set":     SET,
	"int":     INT,
	"string":  STRING,
}

// Lookup maps an identifier lexeme to its keyword type, or IDENT.
// Keywords are case sensitive.
func Lookup(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}

// Token is an immutable lexeme with its type and 1-based source line
type Token struct {
	Type   Type
	Lexeme string
	Line   int
}

// New creates a token
func New(typ Type, lexeme string, line int) Token {
	return Token{Type: typ, Lexeme: lexeme, Line: line}
}

// String returns a compact representation such as IDENT(x)@3
func (t Token) String() string {
	switch t.Type {
	case DONE:
		return fmt.Sprintf("DONE@%d", t.Line)
	case SCONST:
		return fmt.Sprintf("SCONST(%q)@%d", t.Lexeme, t.Line)
	default:
		return fmt.Sprintf("%s(%s)@%d", t.Type, t.Lexeme, t.Line)
	}
}

// Source produces tokens for the parser. Peek returns the next token without
// consuming it. Both fail with an END_OF_INPUT error once the stream,
// including its DONE token, has been consumed.
type Source interface {
	Next() (Token, error)
	Peek() (Token, error)
}
