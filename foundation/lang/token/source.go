// File: source.go
// Title: Slice Token Source
// Description: Token source over a fixed slice, used for replays and tests.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial implementation

package token

import (
	mdwerror "github.com/msto63/minilang/foundation/core/error"
)

// SliceSource implements Source over a fixed token slice
type SliceSource struct {
	tokens []Token
	pos    int
}

// NewSliceSource returns a source yielding tokens in order. The slice is
// copied. No DONE token is appended.
func NewSliceSource(tokens []Token) *SliceSource {
	cp := make([]Token, len(tokens))
	copy(cp, tokens)
	return &SliceSource{tokens: cp}
}

// Next consumes and returns the next token
func (s *SliceSource) Next() (Token, error) {
	tok, err := s.Peek()
	if err != nil {
		return Token{}, err
	}
	s.pos++
	return tok, nil
}

// Peek returns the next token without consuming it
func (s *SliceSource) Peek() (Token, error) {
	if s.pos >= len(s.tokens) {
		return Token{}, EndOfInput("token.SliceSource")
	}
	return s.tokens[s.pos], nil
}

// Remaining returns the number of unconsumed tokens
func (s *SliceSource) Remaining() int {
	return len(s.tokens) - s.pos
}

// EndOfInput builds the error returned by exhausted sources
func EndOfInput(operation string) error {
	return mdwerror.New("end of input").
		WithCode(mdwerror.CodeEndOfInput).
		WithOperation(operation)
}
