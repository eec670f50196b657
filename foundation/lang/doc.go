// Package lang is the entry point to the minilang front end.
//
// Package: lang
// Title: minilang Language Front End
// Description: Ties together the lexer, parser, semantic analyzer and
//              traversal utilities found in the sub-packages token, lexer,
//              ast, diag, parser, symtab and sema.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial implementation
//
// Usage:
//
//	engine := lang.New(lang.Options{Logger: logger})
//	result, err := engine.Check("prog.ml", "int x; set x 5; print x")
//	if err != nil {
//		return err
//	}
//	if !result.OK() {
//		for _, d := range result.Diagnostics {
//			fmt.Println(d)
//		}
//	}
package lang
