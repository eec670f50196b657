// File: format.go
// Title: AST Rendering and Export
// Description: Indented text rendering and a serializable tree form with
//              JSON and YAML encoders.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial implementation

package ast

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format renders the tree as one node per line, children indented
func Format(n *Node) string {
	var sb strings.Builder
	format(&sb, n, "", "")
	return sb.String()
}

func format(sb *strings.Builder, n *Node, indent, label string) {
	if n == nil {
		return
	}
	sb.WriteString(indent)
	sb.WriteString(label)
	sb.WriteString(n.String())
	sb.WriteByte('\n')

	child := indent + "  "
	switch {
	case n.kind == KindStatementList:
		format(sb, n.left, child, "")
		format(sb, n.right, child, "")
	case n.left != nil && n.right != nil:
		format(sb, n.left, child, "L: ")
		format(sb, n.right, child, "R: ")
	default:
		format(sb, n.left, child, "")
	}
}

// Exported is the serializable form of a node
type Exported struct {
	Kind    string    `json:"kind" yaml:"kind"`
	Line    int       `json:"line" yaml:"line"`
	Name    string    `json:"name,omitempty" yaml:"name,omitempty"`
	Type    string    `json:"type,omitempty" yaml:"type,omitempty"`
	Int     *int      `json:"int,omitempty" yaml:"int,omitempty"`
	Str     *string   `json:"string,omitempty" yaml:"string,omitempty"`
	Newline bool      `json:"newline,omitempty" yaml:"newline,omitempty"`
	Left    *Exported `json:"left,omitempty" yaml:"left,omitempty"`
	Right   *Exported `json:"right,omitempty" yaml:"right,omitempty"`
}

// Export converts the tree rooted at n; nil yields nil
func Export(n *Node) *Exported {
	if n == nil {
		return nil
	}
	e := &Exported{
		Kind:    n.kind.String(),
		Line:    n.line,
		Name:    n.name,
		Newline: n.newline,
		Left:    Export(n.left),
		Right:   Export(n.right),
	}
	switch n.kind {
	case KindDeclaration:
		e.Type = n.declType.String()
	case KindIntegerConstant:
		v, _ := n.literal.Int()
		e.Int = &v
	case KindStringConstant:
		s, _ := n.literal.Str()
		e.Str = &s
	}
	return e
}

// ExportJSON encodes the tree as indented JSON
func ExportJSON(n *Node) ([]byte, error) {
	return json.MarshalIndent(Export(n), "", "  ")
}

// ExportYAML encodes the tree as YAML
func ExportYAML(n *Node) ([]byte, error) {
	return yaml.Marshal(Export(n))
}
