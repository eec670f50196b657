// File: level.go
// Title: Log Levels
// Description: The five levels the toolchain emits, their labels and parsing
//              of configured level names.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-03-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial level implementation
// - 2025-03-02 v0.2.0: Reduced to the levels the toolchain emits
// - 2025-03-09 v0.3.0: Dropped fatal, labels kept in one table

package log

import (
	"strings"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
)

// Level orders log entries; an entry is written when its level is at least
// the logger's level
type Level int

const (
	// LevelTrace is per-declaration and per-statement output of parser and analyzer
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

type levelLabel struct {
	name, short, color string
}

var levelLabels = [...]levelLabel{
	LevelTrace: {"trace", "TRC", "\033[37m"},
	LevelDebug: {"debug", "DBG", "\033[36m"},
	LevelInfo:  {"info", "INF", "\033[32m"},
	LevelWarn:  {"warn", "WRN", "\033[33m"},
	LevelError: {"error", "ERR", "\033[31m"},
}

func (l Level) label() levelLabel {
	if l < LevelTrace || l > LevelError {
		return levelLabel{"unknown", "???", "\033[0m"}
	}
	return levelLabels[l]
}

// String returns the name used in JSON and logfmt output
func (l Level) String() string { return l.label().name }

// ShortString returns the three letter tag of the text formatter
func (l Level) ShortString() string { return l.label().short }

// Color returns the ANSI escape the console formatter starts a line with
func (l Level) Color() string { return l.label().color }

// ParseLevel maps a configured level name to a Level. Unknown names yield
// LevelInfo and a CodeInvalidConfig error.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "trc":
		return LevelTrace, nil
	case "debug", "dbg":
		return LevelDebug, nil
	case "info", "inf":
		return LevelInfo, nil
	case "warn", "warning", "wrn":
		return LevelWarn, nil
	case "error", "err":
		return LevelError, nil
	}
	return LevelInfo, invalidSetting("level", level)
}

func invalidSetting(kind, value string) error {
	return mdwerror.Newf("invalid log %s %q", kind, value).
		WithCode(mdwerror.CodeInvalidConfig).
		WithDetail(kind, value)
}
