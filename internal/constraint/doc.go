// Package constraint implements the boolean filter algebra used to scope
// sets of queued jobs.
//
// A Constraint is an immutable expression tree over comparison atoms,
// combinable with And, Or, Xor, and Not. The String form of a constraint
// is a wire-format contract: it must be accepted verbatim by the queueing
// service's expression parser, so the operator tokens and parenthesization
// are fixed.
//
// Constraints compare equal when their canonical renderings are equal,
// not when their tree shapes match. Reduce performs algebraic
// simplification (literal absorption, identity elimination, and
// deduplication) and is idempotent.
package constraint
