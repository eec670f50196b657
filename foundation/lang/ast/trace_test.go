// File: trace_test.go
// Title: Trace and Count Tests
// Description: Tests for trace generation, shape equality and counting.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial tests

package ast

import (
	"bytes"
	"testing"
)

func id(name string) *Node { return NewIdentifier(1, name) }

func TestTraceString(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{"nil", nil, ""},
		{"leaf", id("x"), "N"},
		{"binary", NewAddition(1, id("x"), id("y")), "LNuRNUN"},
		{"left nested", NewAddition(1, NewAddition(1, id("x"), id("y")), id("z")), "LLNuRNUNuRNUN"},
		{"right nested", NewAddition(1, id("x"), NewAddition(1, id("y"), id("z"))), "LNuRLNuRNUNUN"},
		{"left child only", NewAssignment(1, "x", NewIntegerConstant(1, 5)), "LNuN"},
		{"right child only", NewStatementList(1, nil, id("x")), "RNUN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TraceString(tt.node); got != tt.want {
				t.Errorf("TraceString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrace_ShapeOnly(t *testing.T) {
	a := NewAddition(1, id("x"), NewIntegerConstant(1, 5))
	b := NewDivision(9, NewStringConstant(9, "s"), id("q"))
	if TraceString(a) != TraceString(b) {
		t.Error("trees with the same shape should have equal traces")
	}

	c := NewAddition(1, NewAddition(1, id("x"), id("y")), id("z"))
	d := NewAddition(1, id("x"), NewAddition(1, id("y"), id("z")))
	if TraceString(c) == TraceString(d) {
		t.Error("trees with different shapes should have different traces")
	}
}

func TestTrace_EarlyStop(t *testing.T) {
	tree := NewAddition(1, NewAddition(1, id("x"), id("y")), id("z"))
	var got []TraceSymbol
	for sym := range tree.Trace() {
		got = append(got, sym)
		if len(got) == 3 {
			break
		}
	}
	if string([]byte{byte(got[0]), byte(got[1]), byte(got[2])}) != "LLN" {
		t.Errorf("first symbols = %v", got)
	}
}

func TestGenerateTrace(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateTrace(&buf, NewMultiplication(1, id("a"), id("b"))); err != nil {
		t.Fatalf("GenerateTrace() error = %v", err)
	}
	if buf.String() != "LNuRNUN" {
		t.Errorf("GenerateTrace() wrote %q", buf.String())
	}
}

func TestTraceAndCount(t *testing.T) {
	// x + y + z parses as (x + y) + z
	sum := NewAddition(1, NewAddition(1, id("x"), id("y")), id("z"))
	if got := TraceAndCount(sum, (*Node).CountPlus); got != 2 {
		t.Errorf("plus count = %d, want 2", got)
	}

	var order []string
	TraceAndCount(sum, func(n *Node) int {
		order = append(order, n.String())
		return 0
	})
	want := []string{"Identifier(x)@1", "Identifier(y)@1", "Addition(+)@1", "Identifier(z)@1", "Addition(+)@1"}
	if len(order) != len(want) {
		t.Fatalf("visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("visit %d = %s, want %s", i, order[i], want[i])
		}
	}

	if TraceAndCount(nil, (*Node).CountNode) != 0 {
		t.Error("count over nil tree should be 0")
	}
}

func TestCount(t *testing.T) {
	// int x; set x 1 + 2 * 3 - 4 / 2; println x
	expr := NewSubtraction(2,
		NewAddition(2, NewIntegerConstant(2, 1), NewMultiplication(2, NewIntegerConstant(2, 2), NewIntegerConstant(2, 3))),
		NewDivision(2, NewIntegerConstant(2, 4), NewIntegerConstant(2, 2)))
	prog := NewStatementList(1, NewDeclaration(1, TypeInteger, "x"),
		NewStatementList(2, NewAssignment(2, "x", expr),
			NewStatementList(3, NewPrint(3, id("x"), true), nil)))

	got := Count(prog)
	want := Tally{
		Statements: 3, Declarations: 1, Sets: 1, Prints: 1,
		Plus: 1, Minus: 1, Star: 1, Slash: 1,
		Nodes: 16,
	}
	if got != want {
		t.Errorf("Count() = %+v, want %+v", got, want)
	}

	if (Tally{}) != Count(nil) {
		t.Error("Count(nil) should be zero")
	}
	if NewDeclaration(1, TypeInteger, "x").CountSet() != 0 {
		t.Error("declaration must not count as set")
	}
}
