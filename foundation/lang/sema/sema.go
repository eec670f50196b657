// File: sema.go
// Title: Semantic Analyzer
// Description: Post-order walk checking declarations and uses against a
//              symbol table. Declarations insert or report a duplicate;
//              assignments and identifier references report use before
//              declaration. Errors accumulate and the pass returns the count.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial implementation

package sema

import (
	"fmt"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	mdwlog "github.com/msto63/minilang/foundation/core/log"
	"github.com/msto63/minilang/foundation/lang/ast"
	"github.com/msto63/minilang/foundation/lang/diag"
	"github.com/msto63/minilang/foundation/lang/symtab"
)

// Options configures the analyzer
type Options struct {
	Logger   *mdwlog.Logger
	Reporter diag.Reporter // receives each semantic error, may be nil
}

// Analyzer runs semantic checks over one tree
type Analyzer struct {
	ast.BaseVisitor

	table    *symtab.Table
	reporter diag.Reporter
	logger   *mdwlog.Logger
	errors   []diag.Diagnostic
}

// New creates an analyzer populating table
func New(table *symtab.Table, opts Options) *Analyzer {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	return &Analyzer{
		table:    table,
		reporter: opts.Reporter,
		logger:   opts.Logger.WithField("component", "sema"),
	}
}

// Analyze walks root and returns the number of semantic errors found in it
func (a *Analyzer) Analyze(root *ast.Node) int {
	before := len(a.errors)
	timer := a.logger.StartTimer("semantic analysis")

	ast.Walk(a, root)

	found := len(a.errors) - before
	timer.WithField("errors", found).Stop()
	return found
}

// Diagnostics returns every semantic error reported so far
func (a *Analyzer) Diagnostics() []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(a.errors))
	copy(out, a.errors)
	return out
}

// VisitDeclaration inserts the declared name or reports a duplicate
func (a *Analyzer) VisitDeclaration(n *ast.Node) {
	err := a.table.Declare(n.Name(), n.DeclaredType(), n.Line())
	if err != nil {
		a.report(n.Line(), mdwerror.GetCode(err), err.Error())
		return
	}
	a.logger.Trace("declared", mdwlog.Fields{"name": n.Name(), "type": n.DeclaredType().String(), "line": n.Line()})
}

// VisitAssignment reports assignment to an undeclared name
func (a *Analyzer) VisitAssignment(n *ast.Node) {
	a.checkDeclared(n)
}

// VisitIdentifier reports a reference to an undeclared name
func (a *Analyzer) VisitIdentifier(n *ast.Node) {
	a.checkDeclared(n)
}

func (a *Analyzer) checkDeclared(n *ast.Node) {
	if a.table.Contains(n.Name()) {
		return
	}
	a.report(n.Line(), mdwerror.CodeUndeclaredVariable,
		fmt.Sprintf("variable %s is used before being declared", n.Name()))
}

func (a *Analyzer) report(line int, code mdwerror.Code, message string) {
	d := diag.Diagnostic{Line: line, Kind: diag.KindSemantic, Code: code, Message: message}
	a.errors = append(a.errors, d)
	diag.Send(a.reporter, d)
	a.logger.Debug("semantic error", mdwlog.Fields{"line": line, "code": string(code), "error": message})
}

// FindSemanticErrors analyzes root against table, reporting to reporter,
// and returns the error count
func FindSemanticErrors(root *ast.Node, table *symtab.Table, reporter diag.Reporter) int {
	return New(table, Options{Reporter: reporter}).Analyze(root)
}
