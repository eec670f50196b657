// File: value.go
// Title: Typed Values
// Description: Type tags and the Value carried by symbol table entries and
//              literal nodes. Getters and setters check the tag and fail with
//              INVALID_ACCESS on a mismatch.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial implementation

package ast

import (
	"strconv"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
)

// ValueType tags a value. The zero value is TypeError, meaning no valid type.
type ValueType int

const (
	TypeError ValueType = iota
	TypeInteger
	TypeString
)

// String returns the source-level spelling of the type
func (t ValueType) String() string {
	switch t {
	case TypeInteger:
		return "int"
	case TypeString:
		return "string"
	default:
		return "error"
	}
}

// ParseValueType maps "int" and "string" to their tags; anything else is TypeError
func ParseValueType(s string) ValueType {
	switch s {
	case "int":
		return TypeInteger
	case "string":
		return TypeString
	default:
		return TypeError
	}
}

// Value is a type tag with storage for an integer or a string
type Value struct {
	typ  ValueType
	ival int
	sval string
}

// NewValue returns a zero value of the given type
func NewValue(typ ValueType) Value {
	return Value{typ: typ}
}

// IntValue returns an Integer value holding v
func IntValue(v int) Value {
	return Value{typ: TypeInteger, ival: v}
}

// StringValue returns a String value holding s
func StringValue(s string) Value {
	return Value{typ: TypeString, sval: s}
}

// Type returns the value's tag
func (v Value) Type() ValueType {
	return v.typ
}

// IsError reports whether the value has no valid type
func (v Value) IsError() bool {
	return v.typ == TypeError
}

// Int returns the integer payload
func (v Value) Int() (int, error) {
	if v.typ != TypeInteger {
		return 0, noIntegerValue("Value.Int")
	}
	return v.ival, nil
}

// Str returns the string payload
func (v Value) Str() (string, error) {
	if v.typ != TypeString {
		return "", noStringValue("Value.Str")
	}
	return v.sval, nil
}

// SetInt stores i if the value is an Integer
func (v *Value) SetInt(i int) error {
	if v.typ != TypeInteger {
		return noIntegerValue("Value.SetInt")
	}
	v.ival = i
	return nil
}

// SetStr stores s if the value is a String
func (v *Value) SetStr(s string) error {
	if v.typ != TypeString {
		return noStringValue("Value.SetStr")
	}
	v.sval = s
	return nil
}

// String renders the payload, or "<error>" for TypeError
func (v Value) String() string {
	switch v.typ {
	case TypeInteger:
		return strconv.Itoa(v.ival)
	case TypeString:
		return strconv.Quote(v.sval)
	default:
		return "<error>"
	}
}

func noIntegerValue(op string) error {
	return mdwerror.New("no integer value").
		WithCode(mdwerror.CodeInvalidAccess).
		WithOperation(op)
}

func noStringValue(op string) error {
	return mdwerror.New("no string value").
		WithCode(mdwerror.CodeInvalidAccess).
		WithOperation(op)
}
