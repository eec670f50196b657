// File: engine.go
// Title: minilang High-Level Engine
// Description: Runs the front end end to end: lex, parse, analyze against a
//              fresh symbol table, then trace and tally the tree. Syntax and
//              semantic problems are part of the Result; only invalid input
//              and broken token sources are returned as errors.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial engine implementation

package lang

import (
	"time"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	mdwlog "github.com/msto63/minilang/foundation/core/log"
	"github.com/msto63/minilang/foundation/lang/ast"
	"github.com/msto63/minilang/foundation/lang/diag"
	"github.com/msto63/minilang/foundation/lang/lexer"
	"github.com/msto63/minilang/foundation/lang/parser"
	"github.com/msto63/minilang/foundation/lang/sema"
	"github.com/msto63/minilang/foundation/lang/symtab"
	"github.com/msto63/minilang/foundation/lang/token"
)

// DefaultMaxInputLength bounds the source size accepted by Check
const DefaultMaxInputLength = 1 << 20

// Options configures the engine
type Options struct {
	Logger         *mdwlog.Logger
	MaxInputLength int
	Reporter       diag.Reporter // additional sink for every diagnostic
}

// Engine is safe for concurrent use; every Check gets its own parser,
// analyzer and symbol table.
type Engine struct {
	logger   *mdwlog.Logger
	options  Options
	reporter diag.Reporter
}

// Result is the outcome of one Check
type Result struct {
	Name           string
	Tree           *ast.Node
	Symbols        *symtab.Table
	SyntaxError    *parser.SyntaxError
	Diagnostics    []diag.Diagnostic
	SemanticErrors int
	Trace          string
	Tally          ast.Tally
	Duration       time.Duration
}

// OK reports whether the program parsed and has no semantic errors
func (r *Result) OK() bool {
	return r.SyntaxError == nil && r.SemanticErrors == 0
}

// ErrorCount returns the number of diagnostics, syntax and semantic
func (r *Result) ErrorCount() int {
	return len(r.Diagnostics)
}

// New creates an engine
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	return &Engine{
		logger:   opts.Logger.WithField("component", "engine"),
		options:  opts,
		reporter: opts.Reporter,
	}
}

// Check analyzes source. name identifies the input in logs and results.
func (e *Engine) Check(name, source string) (*Result, error) {
	if err := e.validate(name, source); err != nil {
		return nil, err
	}
	return e.CheckSource(name, lexer.New(source))
}

// CheckSource analyzes the tokens produced by src
func (e *Engine) CheckSource(name string, src token.Source) (*Result, error) {
	start := time.Now()
	logger := e.logger.WithField("name", name)
	result := &Result{Name: name, Symbols: symtab.New()}

	collector := diag.NewCollector()
	reporter := diag.Reporter(collector)
	if e.reporter != nil {
		reporter = diag.Multi{collector, e.reporter}
	}

	root, err := parser.New(src, parser.Options{Logger: logger, Reporter: reporter}).Prog()
	if err != nil {
		se, ok := parser.AsSyntaxError(err)
		if !ok {
			return nil, mdwerror.Wrap(err, "parse "+name).WithOperation("lang.Check")
		}
		result.SyntaxError = se
		result.Diagnostics = collector.Diagnostics()
		result.Duration = time.Since(start)
		logger.Info("check finished with syntax error", mdwlog.Fields{"line": se.Line, "error": se.Message})
		return result, nil
	}

	analyzer := sema.New(result.Symbols, sema.Options{Logger: logger, Reporter: reporter})
	result.Tree = root
	result.SemanticErrors = analyzer.Analyze(root)
	result.Diagnostics = collector.Diagnostics()
	result.Trace = ast.TraceString(root)
	result.Tally = ast.Count(root)
	result.Duration = time.Since(start)

	logger.Info("check finished", mdwlog.Fields{
		"statements":      result.Tally.Statements,
		"semantic_errors": result.SemanticErrors,
		"duration_ms":     float64(result.Duration.Nanoseconds()) / 1e6,
	})
	return result, nil
}

// Parse only parses source; the syntax error, if any, is returned as error
func (e *Engine) Parse(name, source string) (*ast.Node, error) {
	if err := e.validate(name, source); err != nil {
		return nil, err
	}
	return parser.New(lexer.New(source), parser.Options{
		Logger:   e.logger.WithField("name", name),
		Reporter: e.reporter,
	}).Prog()
}

// Tokens returns the token stream of source including DONE
func (e *Engine) Tokens(name, source string) ([]token.Token, error) {
	if err := e.validate(name, source); err != nil {
		return nil, err
	}
	return lexer.Tokenize(source), nil
}

func (e *Engine) validate(name, source string) error {
	if len(source) > e.options.MaxInputLength {
		return mdwerror.Newf("input %s exceeds maximum length: %d > %d", name, len(source), e.options.MaxInputLength).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("lang.Check").
			WithDetail("name", name)
	}
	return nil
}
