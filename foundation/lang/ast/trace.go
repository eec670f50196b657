// File: trace.go
// Title: Trace and Count Utilities
// Description: Shape serialization and per-node counting over a tree.
//              A trace writes the left subtree as L...u, the right subtree
//              as R...U and then N for the node itself, so two trees have
//              the same trace exactly when they have the same shape.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial implementation

package ast

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// TraceSymbol is one step of a trace
type TraceSymbol byte

const (
	DescendLeft  TraceSymbol = 'L'
	AscendLeft   TraceSymbol = 'u'
	DescendRight TraceSymbol = 'R'
	AscendRight  TraceSymbol = 'U'
	VisitNode    TraceSymbol = 'N'
)

// Trace lazily yields the trace symbols of the tree rooted at n
func (n *Node) Trace() iter.Seq[TraceSymbol] {
	return func(yield func(TraceSymbol) bool) {
		n.trace(yield)
	}
}

func (n *Node) trace(yield func(TraceSymbol) bool) bool {
	if n == nil {
		return true
	}
	if n.left != nil {
		if !yield(DescendLeft) || !n.left.trace(yield) || !yield(AscendLeft) {
			return false
		}
	}
	if n.right != nil {
		if !yield(DescendRight) || !n.right.trace(yield) || !yield(AscendRight) {
			return false
		}
	}
	return yield(VisitNode)
}

// GenerateTrace writes the trace of n to w
func GenerateTrace(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	for sym := range n.Trace() {
		if err := bw.WriteByte(byte(sym)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// TraceString returns the trace of n as a string
func TraceString(n *Node) string {
	var sb strings.Builder
	for sym := range n.Trace() {
		sb.WriteByte(byte(sym))
	}
	return sb.String()
}

// Counter is a per-node predicate for TraceAndCount
type Counter func(*Node) int

// TraceAndCount sums count over every node, children before parent and
// left before right.
func TraceAndCount(n *Node, count Counter) int {
	if n == nil {
		return 0
	}
	total := TraceAndCount(n.left, count)
	total += TraceAndCount(n.right, count)
	return total + count(n)
}

func (n *Node) countKind(k Kind) int {
	if n.kind == k {
		return 1
	}
	return 0
}

// CountSet is 1 for an Assignment
func (n *Node) CountSet() int { return n.countKind(KindAssignment) }

// CountPlus is 1 for an Addition
func (n *Node) CountPlus() int { return n.countKind(KindAddition) }

// CountMinus is 1 for a Subtraction
func (n *Node) CountMinus() int { return n.countKind(KindSubtraction) }

// CountStar is 1 for a Multiplication
func (n *Node) CountStar() int { return n.countKind(KindMultiplication) }

// CountSlash is 1 for a Division
func (n *Node) CountSlash() int { return n.countKind(KindDivision) }

// CountDeclaration is 1 for a Declaration
func (n *Node) CountDeclaration() int { return n.countKind(KindDeclaration) }

// CountPrint is 1 for a Print
func (n *Node) CountPrint() int { return n.countKind(KindPrint) }

// CountNode is 1 for every node
func (n *Node) CountNode() int { return 1 }

// Tally holds the operator and statement counts of a tree
type Tally struct {
	Statements   int `json:"statements" yaml:"statements"`
	Declarations int `json:"declarations" yaml:"declarations"`
	Sets         int `json:"sets" yaml:"sets"`
	Prints       int `json:"prints" yaml:"prints"`
	Plus         int `json:"plus" yaml:"plus"`
	Minus        int `json:"minus" yaml:"minus"`
	Star         int `json:"star" yaml:"star"`
	Slash        int `json:"slash" yaml:"slash"`
	Nodes        int `json:"nodes" yaml:"nodes"`
}

// Count tallies the tree rooted at n
func Count(n *Node) Tally {
	t := Tally{
		Declarations: TraceAndCount(n, (*Node).CountDeclaration),
		Sets:         TraceAndCount(n, (*Node).CountSet),
		Prints:       TraceAndCount(n, (*Node).CountPrint),
		Plus:         TraceAndCount(n, (*Node).CountPlus),
		Minus:        TraceAndCount(n, (*Node).CountMinus),
		Star:         TraceAndCount(n, (*Node).CountStar),
		Slash:        TraceAndCount(n, (*Node).CountSlash),
		Nodes:        TraceAndCount(n, (*Node).CountNode),
	}
	t.Statements = t.Declarations + t.Sets + t.Prints
	return t
}
