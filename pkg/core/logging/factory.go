// ============================================================================
// minilang - Front end for a small imperative language
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating configured foundation loggers
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	mdwlog "github.com/msto63/minilang/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service or command name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "json", "text", "console" or "logfmt" (default: json)
	Format string

	// Primary output (default: stderr, so command output on stdout stays clean)
	Output io.Writer

	// Additional outputs besides the primary one
	AdditionalOutputs []io.Writer

	// Record caller information
	EnableCaller bool
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// NewLogger creates a new foundation logger
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		format = mdwlog.FormatJSON
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:        parseLevel(cfg.Level),
		Format:       format,
		Output:       output,
		Name:         cfg.ServiceName,
		EnableCaller: cfg.EnableCaller,
	})
}

// NewServiceLogger creates a logger for a long running service and makes it
// the process default
func NewServiceLogger(serviceName, level, format string) *mdwlog.Logger {
	cfg := DefaultLoggerConfig(serviceName)
	if level != "" {
		cfg.Level = level
	}
	if format != "" {
		cfg.Format = format
	}
	cfg.EnableCaller = true

	logger := NewLogger(cfg)
	mdwlog.SetDefault(logger)
	return logger
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *mdwlog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

// parseLevel converts a string level to mdwlog.Level
func parseLevel(level string) mdwlog.Level {
	parsed, err := mdwlog.ParseLevel(level)
	if err != nil {
		return mdwlog.LevelInfo
	}
	return parsed
}

// Logger wraps the foundation logger with key/value logging methods
type Logger struct {
	*mdwlog.Logger
	name string
}

// New creates a new key/value logger
func New(name string) *Logger {
	return Wrap(NewSimpleLogger(name), name)
}

// Wrap adapts an existing foundation logger
func Wrap(logger *mdwlog.Logger, name string) *Logger {
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	return &Logger{Logger: logger, name: name}
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	return &Logger{
		Logger: l.Logger.WithLevel(level.foundation()),
		name:   l.name,
	}
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to mdwlog.Fields
func toFields(keysAndValues ...interface{}) mdwlog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(mdwlog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
