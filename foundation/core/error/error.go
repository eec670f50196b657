// File: error.go
// Title: Core Error Implementation
// Description: Implements the main Error type with codes, severities, source
//              line information, details and stack traces. Compatible with the
//              standard error interface including errors.Is/As unwrapping.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors
// - 2025-03-02 v0.2.0: Source line support, errors.As based code lookup

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"
)

// MaxStackFrames limits the number of stack frames captured
const MaxStackFrames = 20

// Error represents a structured error with context, codes, and metadata
type Error struct {
	message   string
	cause     error
	code      Code
	severity  Severity
	timestamp time.Time

	details   map[string]interface{}
	operation string
	line      int

	stackTrace []StackFrame
}

// StackFrame represents a single frame in the stack trace
type StackFrame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// New creates a new Error with the given message
func New(message string) *Error {
	return &Error{
		message:    message,
		code:       CodeUnknown,
		severity:   SeverityMedium,
		timestamp:  time.Now(),
		details:    make(map[string]interface{}),
		stackTrace: captureStackTrace(2),
	}
}

// Newf creates a new Error with a formatted message
func Newf(format string, args ...interface{}) *Error {
	err := New(fmt.Sprintf(format, args...))
	err.stackTrace = captureStackTrace(2)
	return err
}

// Wrap wraps an existing error with additional context. Code, severity,
// line and details of a wrapped *Error are preserved.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{
		message:    message,
		cause:      err,
		code:       CodeUnknown,
		severity:   SeverityMedium,
		timestamp:  time.Now(),
		details:    make(map[string]interface{}),
		stackTrace: captureStackTrace(2),
	}

	var inner *Error
	if errors.As(err, &inner) {
		wrapped.code = inner.code
		wrapped.severity = inner.severity
		wrapped.line = inner.line
		for k, v := range inner.details {
			wrapped.details[k] = v
		}
	}
	return wrapped
}

// Error implements the standard error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	}
	return e.message
}

// Unwrap returns the underlying cause for error unwrapping
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCode sets the error code
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	if e.severity == SeverityMedium { // Only auto-set if not explicitly set
		e.severity = GetSeverityFromCode(code)
	}
	return e
}

// WithSeverity sets the error severity
func (e *Error) WithSeverity(severity Severity) *Error {
	e.severity = severity
	return e
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.details[key] = value
	return e
}

// WithOperation sets the operation that caused the error
func (e *Error) WithOperation(operation string) *Error {
	e.operation = operation
	return e
}

// WithLine attaches the 1-based source line the error refers to
func (e *Error) WithLine(line int) *Error {
	e.line = line
	return e
}

// Message returns the error message without the cause chain
func (e *Error) Message() string {
	return e.message
}

// Code returns the error code
func (e *Error) Code() Code {
	return e.code
}

// Severity returns the error severity
func (e *Error) Severity() Severity {
	return e.severity
}

// Timestamp returns when the error occurred
func (e *Error) Timestamp() time.Time {
	return e.timestamp
}

// Operation returns the operation that caused the error
func (e *Error) Operation() string {
	return e.operation
}

// Line returns the source line, or 0 if none was attached
func (e *Error) Line() int {
	return e.line
}

// Details returns a copy of the error details
func (e *Error) Details() map[string]interface{} {
	result := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		result[k] = v
	}
	return result
}

// StackTrace returns the stack trace
func (e *Error) StackTrace() []StackFrame {
	result := make([]StackFrame, len(e.stackTrace))
	copy(result, e.stackTrace)
	return result
}

// RootCause returns the deepest error in the chain
func (e *Error) RootCause() error {
	var current error = e
	for {
		next := errors.Unwrap(current)
		if next == nil {
			return current
		}
		current = next
	}
}

// String returns a detailed string representation of the error
func (e *Error) String() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Error: %s", e.message))
	parts = append(parts, fmt.Sprintf("Code: %s", e.code))
	parts = append(parts, fmt.Sprintf("Severity: %s", e.severity))

	if e.line > 0 {
		parts = append(parts, fmt.Sprintf("Line: %d", e.line))
	}
	if e.operation != "" {
		parts = append(parts, fmt.Sprintf("Operation: %s", e.operation))
	}
	if len(e.details) > 0 {
		keys := make([]string, 0, len(e.details))
		for k := range e.details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		detailStrs := make([]string, 0, len(keys))
		for _, k := range keys {
			detailStrs = append(detailStrs, fmt.Sprintf("%s=%v", k, e.details[k]))
		}
		parts = append(parts, fmt.Sprintf("Details: {%s}", strings.Join(detailStrs, ", ")))
	}
	if e.cause != nil {
		parts = append(parts, fmt.Sprintf("Cause: %s", e.cause.Error()))
	}

	return strings.Join(parts, "\n")
}

// MarshalJSON implements json.Marshaler for structured logging
func (e *Error) MarshalJSON() ([]byte, error) {
	data := map[string]interface{}{
		"message":   e.message,
		"code":      e.code,
		"severity":  e.severity.String(),
		"timestamp": e.timestamp.Format(time.RFC3339),
		"details":   e.details,
	}

	if e.line > 0 {
		data["line"] = e.line
	}
	if e.operation != "" {
		data["operation"] = e.operation
	}
	if e.cause != nil {
		data["cause"] = e.cause.Error()
	}

	return json.Marshal(data)
}

func captureStackTrace(skip int) []StackFrame {
	frames := make([]StackFrame, 0, MaxStackFrames)
	for i := skip; i < MaxStackFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}
	return frames
}

// HasCode checks if an error or any error it wraps has a specific code
func HasCode(err error, code Code) bool {
	for err != nil {
		if mdwErr, ok := err.(*Error); ok && mdwErr.code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode returns the error code from an error, or CodeUnknown if not a foundation error
func GetCode(err error) Code {
	var mdwErr *Error
	if errors.As(err, &mdwErr) {
		return mdwErr.code
	}
	return CodeUnknown
}

// GetSeverity returns the error severity, or SeverityMedium if not a foundation error
func GetSeverity(err error) Severity {
	var mdwErr *Error
	if errors.As(err, &mdwErr) {
		return mdwErr.severity
	}
	return SeverityMedium
}
