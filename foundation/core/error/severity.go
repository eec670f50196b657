// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors to enable proper prioritization
//              of diagnostics and tooling failures.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2025-03-02 v0.2.0: Severity mapping for language codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a problem in user input, e.g. a semantic diagnostic
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that aborts one operation
	SeverityMedium

	// SeverityHigh indicates a failing dependency such as the run store
	SeverityHigh

	// SeverityCritical indicates a defect in the tooling itself
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInvalidAccess, CodeInternal:
		return SeverityCritical

	case CodeDatabaseError, CodeServiceUnavailable, CodeInvalidConfig:
		return SeverityHigh

	case CodeSyntax, CodeEndOfInput, CodeDuplicateDeclaration, CodeUndeclaredVariable,
		CodeInvalidInput, CodeNotFound:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
