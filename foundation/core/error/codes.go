// File: codes.go
// Title: Error Code Definitions
// Description: Defines standardized error codes for consistent error classification
//              across the minilang front end and its services. Language codes
//              mirror the diagnostic taxonomy of the parser and analyzer.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-03-02 v0.2.0: Language diagnostic codes, dropped platform codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Language front end
	CodeSyntax               Code = "SYNTAX_ERROR"
	CodeDuplicateDeclaration Code = "DUPLICATE_DECLARATION"
	CodeUndeclaredVariable   Code = "UNDECLARED_VARIABLE"
	CodeInvalidAccess        Code = "INVALID_ACCESS"
	CodeEndOfInput           Code = "END_OF_INPUT"

	// Storage and transport
	CodeDatabaseError      Code = "DATABASE_ERROR"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeSyntax, CodeDuplicateDeclaration, CodeUndeclaredVariable, CodeInvalidAccess, CodeEndOfInput,
		CodeDatabaseError, CodeServiceUnavailable,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeSyntax, CodeEndOfInput:
		return "syntax"
	case CodeDuplicateDeclaration, CodeUndeclaredVariable:
		return "semantic"
	case CodeInvalidAccess:
		return "contract"
	case CodeDatabaseError, CodeServiceUnavailable:
		return "service"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// IsDiagnostic reports whether the code describes a problem in analyzed source
// rather than in the tooling itself.
func (c Code) IsDiagnostic() bool {
	switch c.Category() {
	case "syntax", "semantic":
		return true
	}
	return false
}
