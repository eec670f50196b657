// File: visitor.go
// Title: AST Visitor
// Description: Visitor interface with one method per node kind and a
//              post-order Walk driving it.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial visitor implementation

package ast

import "fmt"

// Visitor receives one call per node
type Visitor interface {
	VisitStatementList(n *Node)
	VisitDeclaration(n *Node)
	VisitAssignment(n *Node)
	VisitPrint(n *Node)
	VisitAddition(n *Node)
	VisitSubtraction(n *Node)
	VisitMultiplication(n *Node)
	VisitDivision(n *Node)
	VisitIntegerConstant(n *Node)
	VisitStringConstant(n *Node)
	VisitIdentifier(n *Node)
}

// BaseVisitor implements Visitor with no-ops; embed it to override a subset
type BaseVisitor struct{}

func (BaseVisitor) VisitStatementList(*Node)   {}
func (BaseVisitor) VisitDeclaration(*Node)     {}
func (BaseVisitor) VisitAssignment(*Node)      {}
func (BaseVisitor) VisitPrint(*Node)           {}
func (BaseVisitor) VisitAddition(*Node)        {}
func (BaseVisitor) VisitSubtraction(*Node)     {}
func (BaseVisitor) VisitMultiplication(*Node)  {}
func (BaseVisitor) VisitDivision(*Node)        {}
func (BaseVisitor) VisitIntegerConstant(*Node) {}
func (BaseVisitor) VisitStringConstant(*Node)  {}
func (BaseVisitor) VisitIdentifier(*Node)      {}

// Walk visits the tree rooted at n in post-order: left subtree, right
// subtree, then the node.
func Walk(v Visitor, n *Node) {
	if n == nil {
		return
	}
	Walk(v, n.left)
	Walk(v, n.right)
	Dispatch(v, n)
}

// Dispatch calls the Visitor method matching the kind of n
func Dispatch(v Visitor, n *Node) {
	switch n.kind {
	case KindStatementList:
		v.VisitStatementList(n)
	case KindDeclaration:
		v.VisitDeclaration(n)
	case KindAssignment:
		v.VisitAssignment(n)
	case KindPrint:
		v.VisitPrint(n)
	case KindAddition:
		v.VisitAddition(n)
	case KindSubtraction:
		v.VisitSubtraction(n)
	case KindMultiplication:
		v.VisitMultiplication(n)
	case KindDivision:
		v.VisitDivision(n)
	case KindIntegerConstant:
		v.VisitIntegerConstant(n)
	case KindStringConstant:
		v.VisitStringConstant(n)
	case KindIdentifier:
		v.VisitIdentifier(n)
	default:
		panic(fmt.Sprintf("ast: unhandled node kind %s", n.kind))
	}
}

// Inspect calls f for every node in post-order
func Inspect(n *Node, f func(*Node)) {
	if n == nil {
		return
	}
	Inspect(n.left, f)
	Inspect(n.right, f)
	f(n)
}

// Statements returns the statements of a StatementList chain in source order.
// A single statement node yields itself.
func Statements(n *Node) []*Node {
	var out []*Node
	for n != nil {
		if n.kind != KindStatementList {
			return append(out, n)
		}
		if n.left != nil {
			out = append(out, n.left)
		}
		n = n.right
	}
	return out
}
