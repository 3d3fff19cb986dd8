// Package token models commands and resolves them into OS argument vectors.
//
// Tokenization is deliberately not a shell grammar: it splits on whitespace
// with paired-quote handling and nothing more. No globbing, redirection,
// variable expansion, or subshells. Callers that need those features opt
// into shell wrapping, which hands the command to `sh -c` verbatim.
package token
