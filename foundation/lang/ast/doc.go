// Package ast defines the minilang abstract syntax tree.
//
// Package: ast
// Title: minilang AST
// Description: A single tagged Node type covers the closed set of kinds:
//              StatementList, Declaration, Assignment, Print, the four
//              arithmetic operators, IntegerConstant, StringConstant and
//              Identifier. Each node owns at most a left and a right child.
//              Identifier types and values resolve through a Scope (the
//              symbol table); value accessors on the wrong kind fail with
//              an INVALID_ACCESS error.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial implementation
//
// Traversal helpers:
//
//	ast.TraceString(root)                          // "LNuRNUN" for a+b
//	ast.TraceAndCount(root, (*ast.Node).CountPlus)  // additions in the tree
//	ast.Walk(visitor, root)                        // post-order visitor
package ast
