// Package parser implements the minilang recursive-descent parser.
//
// Each grammar production is an exported method on Parser (Prog, StmtList,
// Stmt, Decl, Set, Print, Expr, Term, Primary) so a caller can parse any
// fragment directly from a token.Source. Binary operators are
// left-associative; '*' and '/' bind tighter than '+' and '-'.
package parser
