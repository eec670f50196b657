// Package log provides structured logging for the minilang toolchain.
//
// Package: log
// Title: minilang Structured Logging
// Description: Leveled structured logger with JSON, text, console and logfmt
//              output. Components derive child loggers with WithField so each
//              entry carries its origin; diagnostics carry their source line.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2025-03-02 v0.2.0: Adapted for the language front end
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatText})
//	parserLog := logger.WithField("component", "parser")
//	parserLog.Debug("statement parsed", log.Fields{"line": 3})
package log
