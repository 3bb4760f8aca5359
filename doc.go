// Package symcalc implements an embeddable infix calculator driven by a table
// of operators and constants.
//
// An expression is scanned into tokens, reordered into Reverse Polish Notation
// by the shunting-yard algorithm, and evaluated on a value stack. Every
// operator, including the arithmetic ones, comes from a Registry, so hosts can
// add their own symbols, functions, and constants or start from an empty
// table. NewStandardRegistry gives the usual arithmetic: "+ - * / % ^", unary
// "-", "+", and "~", functions like sin, sqrt, and max, and the constants pi
// and e.
//
// Numbers are *big.Float values at a precision chosen per Evaluator. Parse an
// expression once with StringToRPN and evaluate it as many times as needed
// with an Evaluator or CalculateRPN; operators are looked up at evaluation
// time, so updates to the registry apply to cached expressions.
//
// A Registry is not safe for concurrent modification. Any number of
// goroutines may parse and evaluate against a registry that nobody is
// modifying; use Clone to take a snapshot when definitions change while
// evaluation continues elsewhere.
package symcalc
