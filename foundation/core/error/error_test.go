// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes, severity, source
//              lines and metadata.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2025-03-02 v0.2.0: Line and errors.As coverage

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}
	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
}

func TestNewf(t *testing.T) {
	err := Newf("variable %s was already declared", "x")
	if err.Error() != "variable x was already declared" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper message",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			message:  "wrapper message",
			wantMsg:  "wrapper message: original error",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap foundation error",
			err:      New("unexpected token").WithCode(CodeSyntax).WithLine(3),
			message:  "parse failed",
			wantMsg:  "parse failed: unexpected token",
			wantCode: CodeSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if wrapped != nil {
					t.Errorf("Wrap() = %v, want nil", wrapped)
				}
				return
			}
			if wrapped.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", wrapped.Error(), tt.wantMsg)
			}
			if wrapped.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", wrapped.Code(), tt.wantCode)
			}
			if !errors.Is(wrapped, tt.err) {
				t.Error("errors.Is should find the wrapped error")
			}
		})
	}
}

func TestWrap_PreservesLineAndDetails(t *testing.T) {
	inner := New("variable y is used before being declared").
		WithCode(CodeUndeclaredVariable).
		WithLine(7).
		WithDetail("name", "y")

	wrapped := Wrap(inner, "analysis")
	if wrapped.Line() != 7 {
		t.Errorf("Line() = %d, want 7", wrapped.Line())
	}
	if wrapped.Details()["name"] != "y" {
		t.Errorf("Details()[name] = %v, want y", wrapped.Details()["name"])
	}
	if wrapped.Severity() != SeverityLow {
		t.Errorf("Severity() = %v, want low", wrapped.Severity())
	}
}

func TestWithCode_SetsSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeInvalidAccess, SeverityCritical},
		{CodeDatabaseError, SeverityHigh},
		{CodeSyntax, SeverityLow},
		{CodeConfigError, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}

	explicit := New("x").WithSeverity(SeverityHigh).WithCode(CodeSyntax)
	if explicit.Severity() != SeverityHigh {
		t.Errorf("explicit severity was overwritten: %v", explicit.Severity())
	}
}

func TestHasCodeAndGetCode(t *testing.T) {
	base := New("no integer value").WithCode(CodeInvalidAccess)
	chained := fmt.Errorf("evaluate: %w", base)

	if !HasCode(chained, CodeInvalidAccess) {
		t.Error("HasCode() should look through fmt wrapping")
	}
	if HasCode(chained, CodeSyntax) {
		t.Error("HasCode() reported wrong code")
	}
	if GetCode(chained) != CodeInvalidAccess {
		t.Errorf("GetCode() = %v", GetCode(chained))
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode() of a plain error should be UNKNOWN")
	}
	if GetSeverity(errors.New("plain")) != SeverityMedium {
		t.Error("GetSeverity() of a plain error should be medium")
	}
}

func TestRootCause(t *testing.T) {
	root := errors.New("disk full")
	err := Wrap(Wrap(root, "save run"), "check")
	if err.RootCause() != root {
		t.Errorf("RootCause() = %v, want %v", err.RootCause(), root)
	}
}

func TestString(t *testing.T) {
	err := New("missing semicolon").
		WithCode(CodeSyntax).
		WithLine(2).
		WithOperation("parser.StmtList").
		WithDetail("token", "set")

	s := err.String()
	for _, want := range []string{"Error: missing semicolon", "Code: SYNTAX_ERROR", "Line: 2", "Operation: parser.StmtList", "token=set"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q in %q", want, s)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := New("no string value").WithCode(CodeInvalidAccess).WithLine(4)

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("json.Marshal() error = %v", jerr)
	}

	var decoded map[string]interface{}
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("json.Unmarshal() error = %v", jerr)
	}
	if decoded["code"] != "INVALID_ACCESS" {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["line"] != float64(4) {
		t.Errorf("line = %v", decoded["line"])
	}
	if decoded["severity"] != "critical" {
		t.Errorf("severity = %v", decoded["severity"])
	}
}
