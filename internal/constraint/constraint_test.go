package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cmp(t *testing.T, attr string, op Operator, v Value) Comparison {
	t.Helper()
	c, err := NewComparison(attr, op, v)
	require.NoError(t, err)
	return c
}

func TestNewComparison_RejectsUnknownOperator(t *testing.T) {
	_, err := NewComparison("Owner", Operator("=="+"="), Str("probe"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOperator)
}

func TestComparison_RendersWithSpaces(t *testing.T) {
	a := cmp(t, "Foo", Equals, Int(500))
	assert.Equal(t, "Foo == 500", a.String())
}

func TestAnd_RenderComposition(t *testing.T) {
	a := cmp(t, "Foo", Equals, Int(500))
	b := cmp(t, "Bar", LessEquals, Int(10))

	m := NewAnd(a, b)

	assert.Equal(t, "("+a.String()+") && ("+b.String()+")", m.String())
	assert.Equal(t, "(Foo == 500) && (Bar <= 10)", m.String())
}

func TestOr_RenderComposition(t *testing.T) {
	a := cmp(t, "Foo", Equals, Int(500))
	b := cmp(t, "Bar", LessEquals, Int(10))

	assert.Equal(t, "(Foo == 500) || (Bar <= 10)", NewOr(a, b).String())
}

func TestNot_Render(t *testing.T) {
	a := cmp(t, "Foo", Equals, Int(500))
	assert.Equal(t, "!(Foo == 500)", NewNot(a).String())
}

func TestNestedSameCombinatorStaysFlat(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))
	b := cmp(t, "bar", Equals, Int(0))
	c := cmp(t, "baz", Equals, Int(0))

	assert.Equal(t, 3, NewAnd(NewAnd(a, b), c).Len())
	assert.Equal(t, 3, NewOr(NewOr(a, b), c).Len())

	// Flattening matches the directly variadic construction.
	assert.Equal(t, NewAnd(a, b, c).Len(), NewAnd(NewAnd(a, b), c).Len())
	assert.True(t, Equal(NewAnd(a, b, c), NewAnd(NewAnd(a, b), c)))
}

func TestXor_ChainedNestsForParity(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))
	b := cmp(t, "bar", Equals, Int(0))
	c := cmp(t, "baz", Equals, Int(0))

	chained := NewXor(NewXor(a, b), c)
	require.Equal(t, 2, chained.Len())
	_, ok := chained.Children()[0].(Xor)
	assert.True(t, ok, "inner xor survives as a child")

	// The chain means (a xor b) xor c: true when all three hold.
	inner := NewXor(a, b)
	want := NewOr(
		NewAnd(inner, NewNot(c)),
		NewAnd(NewNot(inner), c),
	)
	assert.True(t, Equal(chained, want))

	// Exactly-one-of-three is a different predicate.
	assert.False(t, Equal(chained, NewXor(a, b, c)))
}

func TestFlatteningIsRecursive(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))
	b := cmp(t, "bar", Equals, Int(0))
	c := cmp(t, "baz", Equals, Int(0))
	d := cmp(t, "qux", Equals, Int(0))

	m := NewAnd(NewAnd(NewAnd(a, b), c), d)
	assert.Equal(t, 4, m.Len())
}

func TestFlatteningDoesNotCrossKinds(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))
	b := cmp(t, "bar", Equals, Int(0))
	c := cmp(t, "baz", Equals, Int(0))

	m := NewAnd(NewOr(a, b), c)
	assert.Equal(t, 2, m.Len())
}

func TestCanonicalEquality_IgnoresChildOrder(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))
	b := cmp(t, "bar", Equals, Int(0))

	assert.True(t, Equal(NewAnd(a, b), NewAnd(b, a)))
	assert.True(t, Equal(NewOr(a, b), NewOr(b, a)))
	assert.NotEqual(t, NewAnd(a, b).String(), NewAnd(b, a).String(),
		"display rendering preserves construction order")
}

func TestCanonicalEquality_DistinguishesKinds(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))
	b := cmp(t, "bar", Equals, Int(0))

	assert.False(t, Equal(NewAnd(a, b), NewOr(a, b)))
	assert.False(t, Equal(a, NewNot(a)))
}

func TestXor_ExpandsToSumOfProducts(t *testing.T) {
	a := cmp(t, "foo", Equals, Int(0))
	b := cmp(t, "bar", Equals, Int(0))

	want := "((foo == 0) && (!(bar == 0))) || ((!(foo == 0)) && (bar == 0))"
	assert.Equal(t, want, NewXor(a, b).String())
}

func TestInCluster(t *testing.T) {
	assert.Equal(t, "ClusterId == 42", InCluster(42).String())
}

func TestValueConstructors(t *testing.T) {
	assert.Equal(t, "5", Int(5).String())
	assert.Equal(t, "1.5", Float(1.5).String())
	assert.Equal(t, "probe", Str("probe").String())
	assert.Equal(t, "Memory * 2", Expr("Memory * 2").String())
}
