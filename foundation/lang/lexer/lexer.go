// File: lexer.go
// Title: minilang Lexical Analyzer
// Description: Converts source text into tokens. The Lexer implements
//              token.Source: it yields DONE exactly once at end of input and
//              fails with END_OF_INPUT afterwards. Malformed lexemes become
//              ERR tokens and are left for the parser to report.
// Author: msto63
// Version: v0.1.1
// Created: 2025-03-02
// Modified: 2025-03-09
//
// Change History:
// - 2025-03-02 v0.1.0: Initial lexer implementation
// - 2025-03-09 v0.1.1: Unrecognized non-ASCII characters yield one ERR token per rune

package lexer

import (
	"unicode/utf8"

	"github.com/msto63/minilang/foundation/lang/token"
)

// Lexer performs lexical analysis of minilang input
type Lexer struct {
	input string
	pos   int // next unread byte
	line  int // line of input[pos], 1-based

	peeked *token.Token
	done   bool // DONE has been produced
}

// New creates a lexer for the given input
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

// Next consumes and returns the next token
func (l *Lexer) Next() (token.Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	if l.done {
		return token.Token{}, token.EndOfInput("lexer.Next")
	}
	return l.scan(), nil
}

// Peek returns the next token without consuming it
func (l *Lexer) Peek() (token.Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	if l.done {
		return token.Token{}, token.EndOfInput("lexer.Peek")
	}
	tok := l.scan()
	l.peeked = &tok
	return tok, nil
}

// Line returns the line the lexer is currently positioned on
func (l *Lexer) Line() int {
	return l.line
}

func (l *Lexer) scan() token.Token {
	l.skipWhitespaceAndComments()

	if l.pos >= len(l.input) {
		l.done = true
		return token.New(token.DONE, "", l.line)
	}

	line := l.line
	ch := l.input[l.pos]

	switch ch {
	case '+':
		return l.single(token.PLUS)
	case '-':
		return l.single(token.MINUS)
	case '*':
		return l.single(token.STAR)
	case '/':
		return l.single(token.SLASH)
	case '(':
		return l.single(token.LPAREN)
	case ')':
		return l.single(token.RPAREN)
	case ';':
		return l.single(token.SC)
	case '"':
		return l.readString()
	}

	switch {
	case isLetter(ch):
		ident := l.readWhile(func(c byte) bool { return isLetter(c) || isDigit(c) || c == '_' })
		return token.New(token.Lookup(ident), ident, line)
	case isDigit(ch):
		digits := l.readWhile(isDigit)
		return token.New(token.ICONST, digits, line)
	default:
		// the whole character, so the lexeme stays valid UTF-8
		_, size := utf8.DecodeRuneInString(l.input[l.pos:])
		tok := token.New(token.ERR, l.input[l.pos:l.pos+size], line)
		l.pos += size
		return tok
	}
}

func (l *Lexer) single(typ token.Type) token.Token {
	tok := token.New(typ, l.input[l.pos:l.pos+1], l.line)
	l.pos++
	return tok
}

// readString reads a double-quoted literal. A newline or end of input before
// the closing quote yields ERR carrying the partial lexeme.
func (l *Lexer) readString() token.Token {
	line := l.line
	start := l.pos
	l.pos++ // opening quote

	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '"':
			value := l.input[start+1 : l.pos]
			l.pos++
			return token.New(token.SCONST, value, line)
		case '\n':
			return token.New(token.ERR, l.input[start:l.pos], line)
		}
		l.pos++
	}
	return token.New(token.ERR, l.input[start:l.pos], line)
}

func (l *Lexer) readWhile(accept func(byte) bool) string {
	start := l.pos
	for l.pos < len(l.input) && accept(l.input[l.pos]) {
		l.pos++
	}
	return l.input[start:l.pos]
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '\n':
			l.line++
			l.pos++
		case ' ', '\t', '\r':
			l.pos++
		case '#':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Tokenize returns all tokens of src including the final DONE
func Tokenize(src string) []token.Token {
	l := New(src)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens
		}
		tokens = append(tokens, tok)
		if tok.Type == token.DONE {
			return tokens
		}
	}
}
