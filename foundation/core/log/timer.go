// File: timer.go
// Title: Phase Timer
// Description: Measures one compiler phase and writes a debug entry with its
//              duration when stopped.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-03-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial timer implementation
// - 2025-03-02 v0.2.0: Trimmed to Stop and StopWithError
// - 2025-03-09 v0.3.0: Stop only; analysis failures are reported as diagnostics

package log

import (
	"time"
)

// Timer is returned by Logger.StartTimer
type Timer struct {
	logger *Logger
	phase  string
	start  time.Time
	fields Fields
	done   bool
}

// WithField attaches key=value to the entry Stop writes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Stop logs "<phase> completed" with duration_ms and returns the elapsed
// time. Only the first call logs; later calls return 0.
func (t *Timer) Stop() time.Duration {
	if t.done {
		return 0
	}
	t.done = true
	elapsed := time.Since(t.start)

	fields := make(Fields, len(t.fields)+2)
	for k, v := range t.fields {
		fields[k] = v
	}
	fields["operation"] = t.phase
	fields["duration_ms"] = float64(elapsed.Nanoseconds()) / 1e6
	t.logger.Debug(t.phase+" completed", fields)
	return elapsed
}
