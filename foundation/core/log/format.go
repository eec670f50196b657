// File: format.go
// Title: Log Formatters
// Description: JSON, text, console and logfmt formatters. Custom fields are
//              emitted in sorted key order so output is stable.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial formatter implementation
// - 2025-03-02 v0.2.0: Stable field order, caller output

package log

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Format represents the output format for log messages
type Format int

const (
	// FormatJSON outputs structured JSON logs
	FormatJSON Format = iota

	// FormatText outputs human-readable text logs
	FormatText

	// FormatConsole outputs colored console logs
	FormatConsole

	// FormatLogfmt outputs key=value pairs
	FormatLogfmt
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	case FormatConsole:
		return "console"
	case FormatLogfmt:
		return "logfmt"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a log format
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "console":
		return FormatConsole, nil
	case "logfmt":
		return FormatLogfmt, nil
	default:
		return FormatJSON, invalidSetting("format", format)
	}
}

// Formatter defines the interface for log formatters
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// JSONFormatter formats log entries as JSON
type JSONFormatter struct {
	TimestampFormat string
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{TimestampFormat: time.RFC3339}
}

// Format formats a log entry as a single JSON line
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+6)

	data["timestamp"] = entry.Timestamp.Format(f.TimestampFormat)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message

	if entry.Logger != "" {
		data["logger"] = entry.Logger
	}
	if entry.RequestID != "" {
		data["request_id"] = entry.RequestID
	}
	for k, v := range entry.Fields {
		data[k] = v
	}

	if entry.Error != nil {
		data["error"] = entry.Error.Error()
		if m, ok := entry.Error.(json.Marshaler); ok {
			if errData, err := m.MarshalJSON(); err == nil {
				var errorObj map[string]interface{}
				if json.Unmarshal(errData, &errorObj) == nil {
					data["error_details"] = errorObj
				}
			}
		}
	}

	if entry.Caller != "" {
		data["caller"] = entry.Caller
	}

	out, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// TextFormatter formats log entries as human-readable text
type TextFormatter struct {
	TimestampFormat  string
	DisableTimestamp bool
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{TimestampFormat: "15:04:05"}
}

// Format formats a log entry as text
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var parts []string

	if !f.DisableTimestamp {
		parts = append(parts, entry.Timestamp.Format(f.TimestampFormat))
	}
	parts = append(parts, fmt.Sprintf("[%s]", entry.Level.ShortString()))

	if entry.Logger != "" {
		parts = append(parts, fmt.Sprintf("{%s}", entry.Logger))
	}
	if entry.RequestID != "" {
		parts = append(parts, fmt.Sprintf("(req=%s)", entry.RequestID))
	}

	parts = append(parts, entry.Message)

	if len(entry.Fields) > 0 {
		fieldParts := make([]string, 0, len(entry.Fields))
		for _, k := range entry.Fields.sortedKeys() {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%v", k, entry.Fields[k]))
		}
		parts = append(parts, fmt.Sprintf("[%s]", strings.Join(fieldParts, " ")))
	}
	if entry.Error != nil {
		parts = append(parts, fmt.Sprintf("error=%q", entry.Error.Error()))
	}
	if entry.Caller != "" {
		parts = append(parts, "<"+entry.Caller+">")
	}

	return []byte(strings.Join(parts, " ") + "\n"), nil
}

// ConsoleFormatter formats log entries for console output with colors
type ConsoleFormatter struct {
	DisableColors bool
	*TextFormatter
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{TextFormatter: NewTextFormatter()}
}

// Format formats a log entry for console output
func (f *ConsoleFormatter) Format(entry *Entry) ([]byte, error) {
	data, err := f.TextFormatter.Format(entry)
	if err != nil || f.DisableColors {
		return data, err
	}
	colored := entry.Level.Color() + strings.TrimSpace(string(data)) + "\033[0m\n"
	return []byte(colored), nil
}

// LogfmtFormatter formats log entries in logfmt format
type LogfmtFormatter struct {
	TimestampFormat string
}

// NewLogfmtFormatter creates a new logfmt formatter
func NewLogfmtFormatter() *LogfmtFormatter {
	return &LogfmtFormatter{TimestampFormat: time.RFC3339}
}

// Format formats a log entry in logfmt format
func (f *LogfmtFormatter) Format(entry *Entry) ([]byte, error) {
	parts := []string{
		"timestamp=" + entry.Timestamp.Format(f.TimestampFormat),
		"level=" + entry.Level.String(),
		fmt.Sprintf("message=%q", entry.Message),
	}

	if entry.Logger != "" {
		parts = append(parts, "logger="+entry.Logger)
	}
	if entry.RequestID != "" {
		parts = append(parts, "request_id="+entry.RequestID)
	}
	for _, k := range entry.Fields.sortedKeys() {
		v := entry.Fields[k]
		if str, ok := v.(string); ok {
			parts = append(parts, fmt.Sprintf("%s=%q", k, str))
		} else {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	if entry.Error != nil {
		parts = append(parts, fmt.Sprintf("error=%q", entry.Error.Error()))
	}
	if entry.Caller != "" {
		parts = append(parts, "caller="+entry.Caller)
	}

	return []byte(strings.Join(parts, " ") + "\n"), nil
}

// GetFormatter returns a formatter for the specified format
func GetFormatter(format Format) Formatter {
	switch format {
	case FormatText:
		return NewTextFormatter()
	case FormatConsole:
		return NewConsoleFormatter()
	case FormatLogfmt:
		return NewLogfmtFormatter()
	default:
		return NewJSONFormatter()
	}
}
