package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduce_ComparisonIsFixedPoint(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))
	assert.Equal(t, Constraint(a), Reduce(a))
}

func TestReduce_AndTrueDropsIdentity(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))

	m := Reduce(NewAnd(a, True))

	assert.True(t, Equal(m, a))
	assert.Equal(t, Constraint(a), m, "single survivor is returned unwrapped")
}

func TestReduce_AndFalseAbsorbs(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))

	assert.Equal(t, Constraint(False), Reduce(NewAnd(a, False)))
}

func TestReduce_OrTrueAbsorbs(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))

	assert.Equal(t, Constraint(True), Reduce(NewOr(a, True)))
}

func TestReduce_OrFalseDropsIdentity(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))

	m := Reduce(NewOr(a, False))
	assert.Equal(t, Constraint(a), m)
}

func TestReduce_Deduplicates(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))

	assert.Equal(t, Constraint(a), Reduce(NewAnd(a, a)))
	assert.Equal(t, Constraint(a), Reduce(NewOr(a, a)))
}

func TestReduce_DeduplicatesByCanonicalForm(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))
	b := cmp(t, "bar", Equals, Int(0))

	// And(a,b) and And(b,a) are canonically equal, so only one survives.
	m := Reduce(NewOr(NewAnd(a, b), NewAnd(b, a)))
	assert.True(t, Equal(m, NewAnd(a, b)))
}

func TestReduce_NotLiterals(t *testing.T) {
	assert.Equal(t, Constraint(False), Reduce(NewNot(True)))
	assert.Equal(t, Constraint(True), Reduce(NewNot(False)))
}

func TestReduce_NotRecursesIntoChild(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))

	m := Reduce(NewNot(NewAnd(a, True)))
	assert.True(t, Equal(m, NewNot(a)))
}

func TestReduce_EmptyAndIsTrue(t *testing.T) {
	assert.Equal(t, Constraint(True), Reduce(NewAnd()))
	assert.Equal(t, Constraint(True), Reduce(NewAnd(True, True)))
}

func TestReduce_EmptyOrIsFalse(t *testing.T) {
	assert.Equal(t, Constraint(False), Reduce(NewOr()))
	assert.Equal(t, Constraint(False), Reduce(NewOr(False, False)))
}

func TestReduce_Idempotent(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))
	b := cmp(t, "bar", LessEquals, Int(10))

	cases := []Constraint{
		a,
		True,
		NewAnd(a, b, a, True),
		NewOr(a, b, False),
		NewNot(NewAnd(a, True)),
		NewXor(a, b),
		NewAnd(NewOr(a, b), NewOr(b, a)),
	}
	for _, c := range cases {
		once := Reduce(c)
		twice := Reduce(once)
		assert.True(t, Equal(once, twice), "Reduce not idempotent for %s", c)
		assert.Equal(t, Canonical(once), Canonical(twice))
	}
}

func TestReduce_SemanticsPreserved(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))
	b := cmp(t, "bar", LessEquals, Int(10))

	m := Reduce(NewAnd(a, True, b, a))
	assert.True(t, Equal(m, NewAnd(a, b)))
}

func TestReduce_NeverMutatesReceiver(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))
	m := NewAnd(a, True, a)
	before := m.String()

	_ = Reduce(m)

	assert.Equal(t, before, m.String())
	assert.Equal(t, 3, m.Len())
}
