// Package rpnsolve finds every way to combine a list of numbers with binary
// operators to reach a target value.
//
// A search tries each choice of operators, each ordering of the numbers, and
// each shape of binary expression tree. Shapes are written in postfix order,
// so "2 4 + 8 *" is the shape "n n o n o" filled with numbers and operators.
// Expressions that reach the target are rendered in infix with only the
// brackets that precedence and associativity require, e.g. "(2 + 4) * 8".
//
// Operators come from a Table. Basic gives the usual four; Select can add
// remainder, power, and logarithm from the Catalogue. An operator that is
// applied outside its domain, like division by zero, just excludes that
// expression from the results.
//
// ParseInfix reads rendered expressions back into postfix sequences, so
// results can be checked or evaluated again.
package rpnsolve
