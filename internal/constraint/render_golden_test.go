package constraint

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TestRender_WireFormatGolden pins the wire rendering bit-exact. The
// queueing service parses these strings verbatim, so any diff here is a
// compatibility break, not a cosmetic change.
func TestRender_WireFormatGolden(t *testing.T) {
	a := MustComparison("Owner", Equals, Str("probe"))
	b := MustComparison("JobStatus", Less, Int(4))
	c := MustComparison("ClusterId", Equals, Int(42))

	cases := []struct {
		name string
		c    Constraint
	}{
		{"boolean_true", True},
		{"boolean_false", False},
		{"comparison", a},
		{"meta_is", MustComparison("Owner", Is, Expr("UNDEFINED"))},
		{"meta_isnt", MustComparison("Owner", IsNot, Expr("UNDEFINED"))},
		{"and", NewAnd(a, b)},
		{"or", NewOr(a, c)},
		{"not", NewNot(a)},
		{"nested", NewAnd(a, NewOr(b, NewNot(c)))},
		{"xor", NewXor(a, b)},
		{"xor_chained", NewXor(NewXor(a, b), c)},
		{"in_cluster", InCluster(17)},
	}

	var out strings.Builder
	for _, tc := range cases {
		out.WriteString(tc.name)
		out.WriteString(": ")
		out.WriteString(tc.c.String())
		out.WriteByte('\n')
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "render", []byte(out.String()))
}
