// File: errors.go
// Title: Syntax Errors
// Description: SyntaxError carries the line, message and offending token of
//              the first syntax error. It unwraps to a SYNTAX_ERROR foundation
//              error so callers can use mdwerror.HasCode.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial implementation

package parser

import (
	"errors"
	"fmt"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	"github.com/msto63/minilang/foundation/lang/token"
)

// SyntaxError represents a parse failure
type SyntaxError struct {
	Line    int
	Message string
	Token   token.Token

	cause *mdwerror.Error
}

func newSyntaxError(tok token.Token, operation, message string) *SyntaxError {
	return &SyntaxError{
		Line:    tok.Line,
		Message: message,
		Token:   tok,
		cause: mdwerror.New(message).
			WithCode(mdwerror.CodeSyntax).
			WithLine(tok.Line).
			WithOperation(operation).
			WithDetail("token", tok.String()),
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Message)
}

// Unwrap exposes the SYNTAX_ERROR foundation error
func (e *SyntaxError) Unwrap() error {
	return e.cause
}

// AsSyntaxError extracts a *SyntaxError from err's chain
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
