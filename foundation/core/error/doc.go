// Package error provides structured error handling for the minilang toolchain.
//
// Package: error
// Title: minilang Error Handling
// Description: Structured errors with codes, severities, source lines and
//              stack traces. Syntax and semantic diagnostics, contract
//              violations on AST value access and service failures all
//              travel as *Error so callers can branch on Code.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2025-03-02 v0.2.0: Language front end codes, source lines
//
// Usage:
//
//	import mdwerror "github.com/msto63/minilang/foundation/core/error"
//
//	err := mdwerror.Newf("variable %s was already declared", name).
//		WithCode(mdwerror.CodeDuplicateDeclaration).
//		WithLine(line)
//
//	if mdwerror.HasCode(err, mdwerror.CodeInvalidAccess) {
//		// a value accessor was called on the wrong kind of node
//	}
package error
