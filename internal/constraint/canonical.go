package constraint

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonical returns the canonical rendering of a constraint: the wire
// rendering, except that And/Or children are sorted, so constraints that
// differ only in child order canonicalize identically. The result is
// NFC-normalized so that attribute names written in different Unicode
// forms compare equal.
//
// Display rendering (String) preserves construction order; only
// equality, hashing, and deduplication go through Canonical.
func Canonical(c Constraint) string {
	return norm.NFC.String(canonical(c))
}

func canonical(c Constraint) string {
	switch v := c.(type) {
	case Boolean, Comparison:
		return c.String()
	case And:
		return joinSorted(v.children, " && ")
	case Or:
		return joinSorted(v.children, " || ")
	case Xor:
		return canonical(v.expand())
	case Not:
		return "!(" + canonical(v.child) + ")"
	default:
		// The node set is closed; a new kind here is a bug.
		panic("constraint: unknown node kind")
	}
}

func joinSorted(cs []Constraint, sep string) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = "(" + canonical(c) + ")"
	}
	sort.Strings(parts)
	return strings.Join(parts, sep)
}

// Equal reports whether two constraints are semantically identified,
// which is defined as canonical-rendering equality rather than
// tree-shape equality. NewAnd(a, b) equals NewAnd(b, a).
func Equal(a, b Constraint) bool {
	return Canonical(a) == Canonical(b)
}
