// File: diag.go
// Title: Diagnostic Sinks
// Description: Reporter receives syntax and semantic errors with their line.
//              Collector keeps them, LogReporter forwards them to a logger,
//              Multi fans out to several reporters.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial implementation

package diag

import (
	"fmt"
	"sort"
	"sync"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	mdwlog "github.com/msto63/minilang/foundation/core/log"
)

// Kind separates syntax from semantic diagnostics
type Kind string

const (
	KindSyntax   Kind = "syntax"
	KindSemantic Kind = "semantic"
)

// Reporter receives diagnostics
type Reporter interface {
	Error(line int, message string)
	SemanticError(line int, message string)
}

// CodedReporter is an optional extension for reporters that want the error code
type CodedReporter interface {
	Reporter
	Report(d Diagnostic)
}

// Diagnostic is one reported problem
type Diagnostic struct {
	Line    int           `json:"line" yaml:"line"`
	Kind    Kind          `json:"kind" yaml:"kind"`
	Code    mdwerror.Code `json:"code" yaml:"code"`
	Message string        `json:"message" yaml:"message"`
}

// String renders "line N: message"
func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// Err converts the diagnostic into a foundation error
func (d Diagnostic) Err() error {
	return mdwerror.New(d.Message).
		WithCode(d.Code).
		WithLine(d.Line).
		WithDetail("kind", string(d.Kind))
}

// Send delivers d to r, using Report when r supports codes
func Send(r Reporter, d Diagnostic) {
	if r == nil {
		return
	}
	if cr, ok := r.(CodedReporter); ok {
		cr.Report(d)
		return
	}
	if d.Kind == KindSyntax {
		r.Error(d.Line, d.Message)
	} else {
		r.SemanticError(d.Line, d.Message)
	}
}

// Collector stores diagnostics in report order. It is safe for concurrent use.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// NewCollector returns an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Error records a syntax error
func (c *Collector) Error(line int, message string) {
	c.Report(Diagnostic{Line: line, Kind: KindSyntax, Code: mdwerror.CodeSyntax, Message: message})
}

// SemanticError records a semantic error without a specific code
func (c *Collector) SemanticError(line int, message string) {
	c.Report(Diagnostic{Line: line, Kind: KindSemantic, Code: mdwerror.CodeUnknown, Message: message})
}

// Report records d
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	c.items = append(c.items, d)
	c.mu.Unlock()
}

// Diagnostics returns a copy of everything recorded
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of diagnostics
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Count returns the number of diagnostics of the given kind
func (c *Collector) Count(kind Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.items {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Sorted returns the diagnostics ordered by line, keeping report order within a line
func (c *Collector) Sorted() []Diagnostic {
	out := c.Diagnostics()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

// Reset drops all diagnostics
func (c *Collector) Reset() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// LogReporter writes diagnostics to a logger at warn level
type LogReporter struct {
	logger *mdwlog.Logger
}

// NewLogReporter returns a reporter logging through logger (the default logger if nil)
func NewLogReporter(logger *mdwlog.Logger) *LogReporter {
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	return &LogReporter{logger: logger.WithField("component", "diag")}
}

// Error logs a syntax error
func (r *LogReporter) Error(line int, message string) {
	r.Report(Diagnostic{Line: line, Kind: KindSyntax, Code: mdwerror.CodeSyntax, Message: message})
}

// SemanticError logs a semantic error
func (r *LogReporter) SemanticError(line int, message string) {
	r.Report(Diagnostic{Line: line, Kind: KindSemantic, Code: mdwerror.CodeUnknown, Message: message})
}

// Report logs d with its line, kind and code as fields
func (r *LogReporter) Report(d Diagnostic) {
	r.logger.Warn(d.Message, mdwlog.Fields{
		"line": d.Line,
		"kind": string(d.Kind),
		"code": string(d.Code),
	})
}

// Multi fans diagnostics out to every reporter
type Multi []Reporter

// Error forwards a syntax error
func (m Multi) Error(line int, message string) {
	for _, r := range m {
		if r != nil {
			r.Error(line, message)
		}
	}
}

// SemanticError forwards a semantic error
func (m Multi) SemanticError(line int, message string) {
	for _, r := range m {
		if r != nil {
			r.SemanticError(line, message)
		}
	}
}

// Report forwards d keeping its code where the target supports it
func (m Multi) Report(d Diagnostic) {
	for _, r := range m {
		Send(r, d)
	}
}
