// File: node_test.go
// Title: AST Node Tests
// Description: Tests for node construction, accessors and values.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial tests

package ast

import (
	"testing"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
)

type mapScope map[string]Value

func (m mapScope) Lookup(name string) (Value, bool) {
	v, ok := m[name]
	return v, ok
}

func TestNode_Type(t *testing.T) {
	scope := mapScope{"x": NewValue(TypeInteger), "s": NewValue(TypeString)}

	tests := []struct {
		name  string
		node  *Node
		scope Scope
		want  ValueType
	}{
		{"integer constant", NewIntegerConstant(1, 5), nil, TypeInteger},
		{"string constant", NewStringConstant(1, "a"), nil, TypeString},
		{"declared integer identifier", NewIdentifier(1, "x"), scope, TypeInteger},
		{"declared string identifier", NewIdentifier(1, "s"), scope, TypeString},
		{"undeclared identifier", NewIdentifier(1, "y"), scope, TypeError},
		{"identifier without scope", NewIdentifier(1, "x"), nil, TypeError},
		{"addition", NewAddition(1, NewIntegerConstant(1, 1), NewIntegerConstant(1, 2)), scope, TypeError},
		{"declaration", NewDeclaration(1, TypeInteger, "x"), scope, TypeError},
		{"statement list", NewStatementList(1, NewDeclaration(1, TypeInteger, "x"), nil), scope, TypeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Type(tt.scope); got != tt.want {
				t.Errorf("Type() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNode_IntValue(t *testing.T) {
	scope := mapScope{"x": IntValue(9), "s": StringValue("hi")}

	tests := []struct {
		name     string
		node     *Node
		want     int
		wantCode mdwerror.Code
	}{
		{"integer constant", NewIntegerConstant(1, 42), 42, ""},
		{"integer identifier", NewIdentifier(1, "x"), 9, ""},
		{"string constant", NewStringConstant(1, "a"), 0, mdwerror.CodeInvalidAccess},
		{"string identifier", NewIdentifier(1, "s"), 0, mdwerror.CodeInvalidAccess},
		{"undeclared identifier", NewIdentifier(2, "y"), 0, mdwerror.CodeUndeclaredVariable},
		{"print", NewPrint(1, NewIntegerConstant(1, 1), false), 0, mdwerror.CodeInvalidAccess},
		{"division", NewDivision(1, NewIntegerConstant(1, 4), NewIntegerConstant(1, 2)), 0, mdwerror.CodeInvalidAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.node.IntValue(scope)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("IntValue() error = %v", err)
				}
				if got != tt.want {
					t.Errorf("IntValue() = %d, want %d", got, tt.want)
				}
				return
			}
			if !mdwerror.HasCode(err, tt.wantCode) {
				t.Errorf("IntValue() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}

	_, err := NewStringConstant(1, "a").IntValue(nil)
	if err == nil || err.Error() != "no integer value" {
		t.Errorf("IntValue() on string constant error = %v, want \"no integer value\"", err)
	}
}

func TestNode_StringValue(t *testing.T) {
	scope := mapScope{"s": StringValue("hi")}

	got, err := NewStringConstant(1, "text").StringValue(nil)
	if err != nil || got != "text" {
		t.Errorf("StringValue() = %q, %v", got, err)
	}
	got, err = NewIdentifier(1, "s").StringValue(scope)
	if err != nil || got != "hi" {
		t.Errorf("identifier StringValue() = %q, %v", got, err)
	}

	_, err = NewIntegerConstant(1, 3).StringValue(nil)
	if err == nil || err.Error() != "no string value" {
		t.Errorf("StringValue() on integer error = %v, want \"no string value\"", err)
	}
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidAccess) {
		t.Errorf("StringValue() error code = %v", mdwerror.GetCode(err))
	}
}

func TestNode_Payload(t *testing.T) {
	decl := NewDeclaration(3, TypeString, "name")
	if decl.Kind() != KindDeclaration || decl.Line() != 3 || decl.Name() != "name" || decl.DeclaredType() != TypeString {
		t.Errorf("unexpected declaration %v", decl)
	}
	if NewIdentifier(1, "x").DeclaredType() != TypeError {
		t.Error("DeclaredType() of identifier should be TypeError")
	}

	expr := NewIntegerConstant(4, 1)
	set := NewAssignment(4, "x", expr)
	if set.Left() != expr || set.Right() != nil {
		t.Error("assignment should own its expression as left child only")
	}

	if !NewPrint(1, expr, true).AppendsNewline() || NewPrint(1, expr, false).AppendsNewline() {
		t.Error("AppendsNewline() mismatch")
	}
}

func TestNewBinary_PanicsOnNonBinaryKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewBinary(KindPrint) should panic")
		}
	}()
	NewBinary(KindPrint, 1, nil, nil)
}

func TestNode_String(t *testing.T) {
	tests := []struct {
		node *Node
		want string
	}{
		{NewDeclaration(1, TypeInteger, "x"), "Declaration(int x)@1"},
		{NewAssignment(2, "x", NewIntegerConstant(2, 5)), "Assignment(x)@2"},
		{NewPrint(3, NewIdentifier(3, "x"), true), "Print(println)@3"},
		{NewMultiplication(4, NewIntegerConstant(4, 1), NewIntegerConstant(4, 2)), "Multiplication(*)@4"},
		{NewStringConstant(5, "a b"), `StringConstant("a b")@5`},
		{NewStatementList(6, nil, nil), "StatementList@6"},
	}
	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestValue(t *testing.T) {
	v := NewValue(TypeInteger)
	if err := v.SetInt(7); err != nil {
		t.Fatalf("SetInt() error = %v", err)
	}
	if i, err := v.Int(); err != nil || i != 7 {
		t.Errorf("Int() = %d, %v", i, err)
	}
	if err := v.SetStr("x"); !mdwerror.HasCode(err, mdwerror.CodeInvalidAccess) {
		t.Errorf("SetStr() on integer error = %v", err)
	}
	if _, err := v.Str(); !mdwerror.HasCode(err, mdwerror.CodeInvalidAccess) {
		t.Errorf("Str() on integer error = %v", err)
	}

	s := NewValue(TypeString)
	if err := s.SetStr("hello"); err != nil {
		t.Fatalf("SetStr() error = %v", err)
	}
	if s.String() != `"hello"` {
		t.Errorf("String() = %s", s.String())
	}

	var zero Value
	if !zero.IsError() || zero.String() != "<error>" {
		t.Error("zero Value should be error-typed")
	}
	if err := zero.SetInt(1); err == nil {
		t.Error("SetInt() on error value should fail")
	}
}

func TestParseValueType(t *testing.T) {
	if ParseValueType("int") != TypeInteger || ParseValueType("string") != TypeString || ParseValueType("float") != TypeError {
		t.Error("ParseValueType() mismatch")
	}
}
