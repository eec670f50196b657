// File: node.go
// Title: minilang AST Nodes
// Description: The closed set of node kinds as a single tagged Node type.
//              Every node has a line, at most a left and a right child and a
//              kind-specific payload. Nodes are immutable after construction.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial node definitions

package ast

import (
	"fmt"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
)

// Kind identifies the variant of a Node
type Kind int

const (
	KindStatementList Kind = iota
	KindDeclaration
	KindAssignment
	KindPrint
	KindAddition
	KindSubtraction
	KindMultiplication
	KindDivision
	KindIntegerConstant
	KindStringConstant
	KindIdentifier
)

var kindNames = [...]string{
	KindStatementList:   "StatementList",
	KindDeclaration:     "Declaration",
	KindAssignment:      "Assignment",
	KindPrint:           "Print",
	KindAddition:        "Addition",
	KindSubtraction:     "Subtraction",
	KindMultiplication:  "Multiplication",
	KindDivision:        "Division",
	KindIntegerConstant: "IntegerConstant",
	KindStringConstant:  "StringConstant",
	KindIdentifier:      "Identifier",
}

// String returns the kind name
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsStatement reports whether k is a declaration, assignment or print
func (k Kind) IsStatement() bool {
	return k == KindDeclaration || k == KindAssignment || k == KindPrint
}

// IsBinary reports whether k is one of the four arithmetic operators
func (k Kind) IsBinary() bool {
	return k >= KindAddition && k <= KindDivision
}

// Operator returns the source symbol of a binary kind, or ""
func (k Kind) Operator() string {
	switch k {
	case KindAddition:
		return "+"
	case KindSubtraction:
		return "-"
	case KindMultiplication:
		return "*"
	case KindDivision:
		return "/"
	}
	return ""
}

// Scope resolves identifiers during type and value access.
// *symtab.Table satisfies it.
type Scope interface {
	Lookup(name string) (Value, bool)
}

// Node is one AST node
type Node struct {
	kind  Kind
	line  int
	left  *Node
	right *Node

	name     string    // Declaration, Assignment, Identifier
	declType ValueType // Declaration
	newline  bool      // Print
	literal  Value     // IntegerConstant, StringConstant
}

// NewStatementList joins a statement with the rest of the list (which may be nil)
func NewStatementList(line int, first, rest *Node) *Node {
	return &Node{kind: KindStatementList, line: line, left: first, right: rest}
}

// NewDeclaration declares name with the given type
func NewDeclaration(line int, typ ValueType, name string) *Node {
	return &Node{kind: KindDeclaration, line: line, declType: typ, name: name}
}

// NewAssignment assigns expr to name
func NewAssignment(line int, name string, expr *Node) *Node {
	return &Node{kind: KindAssignment, line: line, name: name, left: expr}
}

// NewPrint prints expr; appendNewline is set for println
func NewPrint(line int, expr *Node, appendNewline bool) *Node {
	return &Node{kind: KindPrint, line: line, left: expr, newline: appendNewline}
}

// NewBinary builds an arithmetic node. It panics if kind is not binary.
func NewBinary(kind Kind, line int, left, right *Node) *Node {
	if !kind.IsBinary() {
		panic(fmt.Sprintf("ast: %s is not a binary kind", kind))
	}
	return &Node{kind: kind, line: line, left: left, right: right}
}

// NewAddition builds left + right
func NewAddition(line int, left, right *Node) *Node {
	return NewBinary(KindAddition, line, left, right)
}

// NewSubtraction builds left - right
func NewSubtraction(line int, left, right *Node) *Node {
	return NewBinary(KindSubtraction, line, left, right)
}

// NewMultiplication builds left * right
func NewMultiplication(line int, left, right *Node) *Node {
	return NewBinary(KindMultiplication, line, left, right)
}

// NewDivision builds left / right
func NewDivision(line int, left, right *Node) *Node {
	return NewBinary(KindDivision, line, left, right)
}

// NewIntegerConstant builds an integer literal
func NewIntegerConstant(line int, v int) *Node {
	return &Node{kind: KindIntegerConstant, line: line, literal: IntValue(v)}
}

// NewStringConstant builds a string literal
func NewStringConstant(line int, s string) *Node {
	return &Node{kind: KindStringConstant, line: line, literal: StringValue(s)}
}

// NewIdentifier builds a reference to name
func NewIdentifier(line int, name string) *Node {
	return &Node{kind: KindIdentifier, line: line, name: name}
}

func (n *Node) Kind() Kind   { return n.kind }
func (n *Node) Line() int    { return n.line }
func (n *Node) Left() *Node  { return n.left }
func (n *Node) Right() *Node { return n.right }

// Name returns the identifier of a Declaration, Assignment or Identifier
func (n *Node) Name() string { return n.name }

// DeclaredType returns the type of a Declaration, TypeError otherwise
func (n *Node) DeclaredType() ValueType {
	if n.kind != KindDeclaration {
		return TypeError
	}
	return n.declType
}

// AppendsNewline reports whether a Print node came from println
func (n *Node) AppendsNewline() bool { return n.newline }

// Type returns the value type of the node. Constants have their literal's
// type, identifiers the type declared in scope. Everything else, and an
// identifier missing from scope, is TypeError.
func (n *Node) Type(scope Scope) ValueType {
	switch n.kind {
	case KindIntegerConstant, KindStringConstant:
		return n.literal.Type()
	case KindIdentifier:
		if scope == nil {
			return TypeError
		}
		if v, ok := scope.Lookup(n.name); ok {
			return v.Type()
		}
	}
	return TypeError
}

// IntValue returns the integer value of an IntegerConstant or of an
// Integer identifier in scope. Any other node fails with INVALID_ACCESS.
func (n *Node) IntValue(scope Scope) (int, error) {
	switch n.kind {
	case KindIntegerConstant:
		return n.literal.Int()
	case KindIdentifier:
		v, err := n.resolve(scope)
		if err != nil {
			return 0, err
		}
		return v.Int()
	}
	return 0, noIntegerValue(n.kind.String() + ".IntValue")
}

// StringValue returns the string value of a StringConstant or of a String
// identifier in scope. Any other node fails with INVALID_ACCESS.
func (n *Node) StringValue(scope Scope) (string, error) {
	switch n.kind {
	case KindStringConstant:
		return n.literal.Str()
	case KindIdentifier:
		v, err := n.resolve(scope)
		if err != nil {
			return "", err
		}
		return v.Str()
	}
	return "", noStringValue(n.kind.String() + ".StringValue")
}

// Literal returns the constant value of a literal node, or an error-typed value
func (n *Node) Literal() Value {
	return n.literal
}

func (n *Node) resolve(scope Scope) (Value, error) {
	if scope != nil {
		if v, ok := scope.Lookup(n.name); ok {
			return v, nil
		}
	}
	return Value{}, mdwerror.Newf("variable %s is used before being declared", n.name).
		WithCode(mdwerror.CodeUndeclaredVariable).
		WithLine(n.line).
		WithDetail("name", n.name)
}

// String renders the node header, e.g. Declaration(int x)@1
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var payload string
	switch n.kind {
	case KindDeclaration:
		payload = n.declType.String() + " " + n.name
	case KindAssignment, KindIdentifier:
		payload = n.name
	case KindPrint:
		if n.newline {
			payload = "println"
		} else {
			payload = "print"
		}
	case KindIntegerConstant, KindStringConstant:
		payload = n.literal.String()
	default:
		if op := n.kind.Operator(); op != "" {
			payload = op
		}
	}
	if payload == "" {
		return fmt.Sprintf("%s@%d", n.kind, n.line)
	}
	return fmt.Sprintf("%s(%s)@%d", n.kind, payload, n.line)
}
