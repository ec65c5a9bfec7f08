package constraint

import (
	"fmt"
	"strconv"
	"strings"
)

// Constraint is a sealed interface over the closed set of expression
// node kinds: Boolean, Comparison, And, Or, Xor, and Not.
//
// Every node is immutable after construction. Rendering, reduction, and
// equality are implemented with exhaustive type switches over this set.
type Constraint interface {
	fmt.Stringer
	node() // sealed
}

// Boolean is a literal truth value. True and False are the algebraic
// identities of And and Or respectively.
type Boolean bool

const (
	True  Boolean = true
	False Boolean = false
)

func (Boolean) node() {}

func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Value is the right-hand side of a comparison. It is stored in its
// rendered form: the queueing service parses the expression string, so
// the engine never needs the typed value back.
type Value struct {
	raw string
}

// Str builds a Value from a string. Strings pass through unquoted, the
// same way the queueing service's own tooling writes them.
func Str(s string) Value { return Value{raw: s} }

// Int builds a Value from an integer.
func Int(n int64) Value { return Value{raw: strconv.FormatInt(n, 10)} }

// Float builds a Value from a float.
func Float(f float64) Value { return Value{raw: strconv.FormatFloat(f, 'g', -1, 64)} }

// Expr builds a Value from an opaque sub-expression. It is passed
// through to the wire format unparsed.
func Expr(expr string) Value { return Value{raw: expr} }

func (v Value) String() string { return v.raw }

// Comparison is an atomic predicate over a single job attribute.
type Comparison struct {
	Attr  string
	Op    Operator
	Value Value
}

// NewComparison builds an atomic predicate. The operator must be one of
// the closed set; anything else fails with ErrInvalidOperator.
func NewComparison(attr string, op Operator, value Value) (Comparison, error) {
	if !op.Valid() {
		return Comparison{}, fmt.Errorf("comparison %s: operator %q: %w", attr, string(op), ErrInvalidOperator)
	}
	return Comparison{Attr: attr, Op: op, Value: value}, nil
}

// MustComparison is NewComparison for statically known operators.
// It panics on an invalid operator.
func MustComparison(attr string, op Operator, value Value) Comparison {
	c, err := NewComparison(attr, op, value)
	if err != nil {
		panic(err)
	}
	return c
}

// InCluster is the constraint scoping a single submitted cluster:
// ClusterId == id.
func InCluster(id int64) Comparison {
	return Comparison{Attr: "ClusterId", Op: Equals, Value: Int(id)}
}

func (Comparison) node() {}

func (c Comparison) String() string {
	return c.Attr + " " + string(c.Op) + " " + c.Value.String()
}

// And is an n-ary conjunction. Construction flattens nested And nodes,
// so the children of an And are never themselves And.
type And struct {
	children []Constraint
}

// NewAnd builds a conjunction, absorbing the grandchildren of any And
// child directly.
func NewAnd(cs ...Constraint) And {
	return And{children: flattenAnd(cs)}
}

func (And) node() {}

func (a And) Children() []Constraint { return a.children }
func (a And) Len() int               { return len(a.children) }

func (a And) String() string { return joinChildren(a.children, " && ") }

// Or is an n-ary disjunction. Construction flattens nested Or nodes.
type Or struct {
	children []Constraint
}

// NewOr builds a disjunction, absorbing the grandchildren of any Or
// child directly.
func NewOr(cs ...Constraint) Or {
	return Or{children: flattenOr(cs)}
}

func (Or) node() {}

func (o Or) Children() []Constraint { return o.children }
func (o Or) Len() int               { return len(o.children) }

func (o Or) String() string { return joinChildren(o.children, " || ") }

// Xor is an exclusive-or: exactly one of its children holds. The wire
// grammar has no XOR token, so it renders by expansion into
// sum-of-products form.
type Xor struct {
	children []Constraint
}

// NewXor builds an exclusive-or. Unlike And and Or, Xor never flattens:
// exactly-one-of is not associative, so a chained combination keeps its
// nesting and reads as parity.
func NewXor(cs ...Constraint) Xor {
	return Xor{children: append([]Constraint(nil), cs...)}
}

func (Xor) node() {}

func (x Xor) Children() []Constraint { return x.children }
func (x Xor) Len() int               { return len(x.children) }

func (x Xor) String() string { return x.expand().String() }

// expand rewrites the Xor as an Or over one And per child, where that
// child appears positive and every other child negated.
func (x Xor) expand() Constraint {
	terms := make([]Constraint, 0, len(x.children))
	for i := range x.children {
		factors := make([]Constraint, 0, len(x.children))
		for j, d := range x.children {
			if i == j {
				factors = append(factors, d)
			} else {
				factors = append(factors, NewNot(d))
			}
		}
		terms = append(terms, NewAnd(factors...))
	}
	return NewOr(terms...)
}

// Not is a unary negation.
type Not struct {
	child Constraint
}

// NewNot negates a constraint.
func NewNot(c Constraint) Not {
	return Not{child: c}
}

func (Not) node() {}

func (n Not) Child() Constraint { return n.child }

func (n Not) String() string { return "!(" + n.child.String() + ")" }

// flattenAnd splices the children of nested And nodes into a single
// level, recursively.
func flattenAnd(cs []Constraint) []Constraint {
	out := make([]Constraint, 0, len(cs))
	for _, c := range cs {
		if a, ok := c.(And); ok {
			out = append(out, flattenAnd(a.children)...)
		} else {
			out = append(out, c)
		}
	}
	return out
}

func flattenOr(cs []Constraint) []Constraint {
	out := make([]Constraint, 0, len(cs))
	for _, c := range cs {
		if o, ok := c.(Or); ok {
			out = append(out, flattenOr(o.children)...)
		} else {
			out = append(out, c)
		}
	}
	return out
}

func joinChildren(cs []Constraint, sep string) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = "(" + c.String() + ")"
	}
	return strings.Join(parts, sep)
}
