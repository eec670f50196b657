// File: symtab.go
// Title: Symbol Table
// Description: Maps identifier names to their declared type. One table per
//              analysis run; a name may be declared once and a second
//              declaration never overwrites the first.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial implementation

package symtab

import (
	"sort"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	"github.com/msto63/minilang/foundation/lang/ast"
)

// Entry is one declared symbol
type Entry struct {
	Name string        `json:"name" yaml:"name"`
	Type ast.ValueType `json:"-" yaml:"-"`
	Line int           `json:"line" yaml:"line"`
}

// TypeName returns the source spelling of the entry's type
func (e Entry) TypeName() string {
	return e.Type.String()
}

// Table holds the symbols of one analysis run. It is not safe for
// concurrent use; independent analyses use independent tables.
type Table struct {
	values map[string]ast.Value
	lines  map[string]int
	order  []string
}

// New returns an empty table
func New() *Table {
	return &Table{
		values: make(map[string]ast.Value),
		lines:  make(map[string]int),
	}
}

// Declare adds name with a zero value of typ. A second declaration fails
// with DUPLICATE_DECLARATION and leaves the first entry untouched.
func (t *Table) Declare(name string, typ ast.ValueType, line int) error {
	if _, exists := t.values[name]; exists {
		return mdwerror.Newf("variable %s was already declared", name).
			WithCode(mdwerror.CodeDuplicateDeclaration).
			WithOperation("symtab.Declare").
			WithLine(line).
			WithDetail("name", name).
			WithDetail("first_line", t.lines[name])
	}
	t.values[name] = ast.NewValue(typ)
	t.lines[name] = line
	t.order = append(t.order, name)
	return nil
}

// Lookup returns the value stored for name. It satisfies ast.Scope.
func (t *Table) Lookup(name string) (ast.Value, bool) {
	v, ok := t.values[name]
	return v, ok
}

// Contains reports whether name is declared
func (t *Table) Contains(name string) bool {
	_, ok := t.values[name]
	return ok
}

// Store replaces the value of a declared name. The value must carry the
// declared type.
func (t *Table) Store(name string, v ast.Value) error {
	cur, ok := t.values[name]
	if !ok {
		return mdwerror.Newf("variable %s is used before being declared", name).
			WithCode(mdwerror.CodeUndeclaredVariable).
			WithOperation("symtab.Store").
			WithDetail("name", name)
	}
	if cur.Type() != v.Type() {
		return mdwerror.Newf("variable %s is %s, not %s", name, cur.Type(), v.Type()).
			WithCode(mdwerror.CodeInvalidAccess).
			WithOperation("symtab.Store").
			WithDetail("name", name)
	}
	t.values[name] = v
	return nil
}

// Len returns the number of declared names
func (t *Table) Len() int {
	return len(t.order)
}

// Names returns the declared names sorted alphabetically
func (t *Table) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	sort.Strings(names)
	return names
}

// Entries returns the declared symbols in declaration order
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, Entry{Name: name, Type: t.values[name].Type(), Line: t.lines[name]})
	}
	return out
}

// Types returns name -> type spelling, e.g. {"x": "int"}
func (t *Table) Types() map[string]string {
	out := make(map[string]string, len(t.values))
	for name, v := range t.values {
		out[name] = v.Type().String()
	}
	return out
}

// Reset removes all symbols
func (t *Table) Reset() {
	t.values = make(map[string]ast.Value)
	t.lines = make(map[string]int)
	t.order = nil
}
