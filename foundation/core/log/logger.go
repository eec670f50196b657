// File: logger.go
// Title: Core Logger Implementation
// Description: Structured logger with persistent context fields, selectable
//              output formats and integration with the error package. Loggers
//              are immutable; With* methods return configured copies.
// Author: msto63
// Version: v0.2.1
// Created: 2025-01-24
// Modified: 2025-03-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2025-03-02 v0.2.0: Source line fields for diagnostics, synchronous writes only
// - 2025-03-09 v0.2.1: No fatal level, caller reported as file:line

package log

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
)

// Logger represents a structured logger with contextual information
type Logger struct {
	level     Level
	formatter Formatter
	output    io.Writer
	name      string

	contextFields Fields
	requestID     string

	enableCaller     bool
	callerSkipFrames int

	// guards writes to output; shared between clones
	writeMu *sync.Mutex
}

// Config represents logger configuration
type Config struct {
	Level            Level
	Format           Format
	Output           io.Writer
	Name             string
	EnableCaller     bool
	CallerSkipFrames int
}

// New creates a new logger writing JSON to stderr at the default level
func New() *Logger {
	return NewWithConfig(Config{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: os.Stderr,
	})
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	output := config.Output
	if output == nil {
		output = os.Stderr
	}
	return &Logger{
		level:            config.Level,
		formatter:        GetFormatter(config.Format),
		output:           output,
		name:             config.Name,
		contextFields:    make(Fields),
		enableCaller:     config.EnableCaller,
		callerSkipFrames: config.CallerSkipFrames,
		writeMu:          &sync.Mutex{},
	}
}

// Discard returns a logger that drops every entry
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelError + 1, Output: io.Discard})
}

// WithLevel returns a copy with the minimum log level set
func (l *Logger) WithLevel(level Level) *Logger {
	clone := l.clone()
	clone.level = level
	return clone
}

// WithFormat returns a copy using the given format
func (l *Logger) WithFormat(format Format) *Logger {
	clone := l.clone()
	clone.formatter = GetFormatter(format)
	return clone
}

// WithOutput returns a copy writing to output
func (l *Logger) WithOutput(output io.Writer) *Logger {
	clone := l.clone()
	clone.output = output
	clone.writeMu = &sync.Mutex{}
	return clone
}

// WithName returns a copy with the logger name set
func (l *Logger) WithName(name string) *Logger {
	clone := l.clone()
	clone.name = name
	return clone
}

// WithField returns a copy that adds key=value to every entry
func (l *Logger) WithField(key string, value interface{}) *Logger {
	clone := l.clone()
	clone.contextFields[key] = value
	return clone
}

// WithFields returns a copy that adds all fields to every entry
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := l.clone()
	for k, v := range fields {
		clone.contextFields[k] = v
	}
	return clone
}

// WithRequestID returns a copy tagged with a request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	clone := l.clone()
	clone.requestID = requestID
	return clone
}

// Trace logs a trace level message
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, nil, fields...)
}

// Debug logs a debug level message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs an info level message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs a warning level message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs an error level message
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// LogError logs an error choosing the level from its severity. Code, line
// and details of an *mdwerror.Error become fields.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	mdwErr, ok := err.(*mdwerror.Error)
	if !ok {
		l.log(LevelError, err.Error(), err)
		return
	}

	fields := Fields{
		"error_code":     mdwErr.Code(),
		"error_severity": mdwErr.Severity().String(),
	}
	if op := mdwErr.Operation(); op != "" {
		fields["error_operation"] = op
	}
	if line := mdwErr.Line(); line > 0 {
		fields["line"] = line
	}
	for k, v := range mdwErr.Details() {
		fields["error_"+k] = v
	}

	level := LevelError
	switch mdwErr.Severity() {
	case mdwerror.SeverityLow:
		level = LevelInfo
	case mdwerror.SeverityMedium:
		level = LevelWarn
	}
	l.log(level, mdwErr.Message(), err, fields)
}

// StartTimer starts timing phase; see Timer.Stop
func (l *Logger) StartTimer(phase string) *Timer {
	return &Timer{logger: l, phase: phase, start: time.Now(), fields: make(Fields)}
}

// IsLevelEnabled returns true if the given level is enabled
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level >= l.level
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level {
	return l.level
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	if level < l.level {
		return
	}

	entry := newEntry(level, message)
	entry.Logger = l.name
	entry.RequestID = l.requestID
	entry.Error = err

	for k, v := range l.contextFields {
		entry.Fields[k] = v
	}
	for _, fieldSet := range fields {
		for k, v := range fieldSet {
			entry.Fields[k] = v
		}
	}

	if l.enableCaller {
		if file, line, ok := l.getCaller(); ok {
			entry.Caller = fmt.Sprintf("%s:%d", file, line)
		}
	}

	formatted, formatErr := l.formatter.Format(entry)
	if formatErr != nil {
		return
	}
	l.writeMu.Lock()
	_, _ = l.output.Write(formatted)
	l.writeMu.Unlock()
}

// getCaller skips getCaller, log and the public method
func (l *Logger) getCaller() (file string, line int, ok bool) {
	_, file, line, ok = runtime.Caller(3 + l.callerSkipFrames)
	if !ok {
		return "", 0, false
	}
	if idx := strings.LastIndex(file, "/"); idx != -1 {
		file = file[idx+1:]
	}
	return file, line, true
}

func (l *Logger) clone() *Logger {
	clone := *l
	clone.contextFields = make(Fields, len(l.contextFields))
	for k, v := range l.contextFields {
		clone.contextFields[k] = v
	}
	return &clone
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New()
)

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	if logger == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}
