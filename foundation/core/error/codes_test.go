// File: codes_test.go
// Title: Error Code and Severity Tests
// Description: Tests for code validity, categories and severity helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial code tests
// - 2025-03-02 v0.2.0: Language codes

package error

import "testing"

func TestCode_IsValid(t *testing.T) {
	valid := []Code{
		CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeSyntax, CodeDuplicateDeclaration, CodeUndeclaredVariable, CodeInvalidAccess, CodeEndOfInput,
		CodeDatabaseError, CodeServiceUnavailable,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig,
	}
	for _, c := range valid {
		if !c.IsValid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if Code("TCOL_SYNTAX").IsValid() {
		t.Error("unknown code reported as valid")
	}
}

func TestCode_Category(t *testing.T) {
	tests := []struct {
		code       Code
		category   string
		diagnostic bool
	}{
		{CodeSyntax, "syntax", true},
		{CodeEndOfInput, "syntax", true},
		{CodeDuplicateDeclaration, "semantic", true},
		{CodeUndeclaredVariable, "semantic", true},
		{CodeInvalidAccess, "contract", false},
		{CodeDatabaseError, "service", false},
		{CodeMissingConfig, "configuration", false},
		{CodeNotFound, "generic", false},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := tt.code.Category(); got != tt.category {
				t.Errorf("Category() = %q, want %q", got, tt.category)
			}
			if got := tt.code.IsDiagnostic(); got != tt.diagnostic {
				t.Errorf("IsDiagnostic() = %v, want %v", got, tt.diagnostic)
			}
		})
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityLow, "low"},
		{SeverityMedium, "medium"},
		{SeverityHigh, "high"},
		{SeverityCritical, "critical"},
		{Severity(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
	if SeverityMedium.ShouldAlert() || !SeverityHigh.ShouldAlert() {
		t.Error("ShouldAlert() threshold should be high")
	}
}
