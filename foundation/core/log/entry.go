// File: entry.go
// Title: Log Entry Structure
// Description: The record handed to formatters and the Fields map carrying
//              key/value context such as source lines and node counts.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-03-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2025-03-02 v0.2.0: Dropped user and correlation context
// - 2025-03-09 v0.3.0: Caller stored as file:line, duration travels as a field

package log

import (
	"sort"
	"time"
)

// Entry is one formatted log line before encoding
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	RequestID string
	Fields    Fields
	Error     error

	// Caller is "file.go:42" when caller reporting is enabled
	Caller string
}

// Fields holds structured key/value context
type Fields map[string]interface{}

// sortedKeys gives formatters a stable field order
func (f Fields) sortedKeys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}
