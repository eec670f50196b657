// Package lexer turns minilang source text into a stream of tokens.
//
// Recognized lexemes are the keywords print, println, set, int and string,
// identifiers, decimal integer constants, double-quoted string constants,
// the operators + - * / and the delimiters ( ) ;. A '#' starts a comment
// running to end of line. Anything else becomes an ERR token.
package lexer
