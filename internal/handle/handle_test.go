package handle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridwork/jobflow/internal/constraint"
	"github.com/gridwork/jobflow/internal/schedd"
)

func ownerHandle(t *testing.T, owner string, scope Scope) *ConstraintHandle {
	t.Helper()
	c, err := constraint.NewComparison("Owner", constraint.Equals, constraint.Str(owner))
	require.NoError(t, err)
	return NewConstraintHandle(c, scope)
}

func TestConstraintHandle_CombinationRendering(t *testing.T) {
	a := ownerHandle(t, "alice", Scope{})
	b := ownerHandle(t, "bob", Scope{})

	m, err := a.And(b)
	require.NoError(t, err)
	assert.Equal(t, "(Owner == alice) && (Owner == bob)", m.ConstraintString())

	m, err = a.Or(b)
	require.NoError(t, err)
	assert.Equal(t, "(Owner == alice) || (Owner == bob)", m.ConstraintString())

	assert.Equal(t, "!(Owner == alice)", a.Not().ConstraintString())
}

func TestConstraintHandle_ScopeMismatch(t *testing.T) {
	a := ownerHandle(t, "alice", Scope{Scheduler: "submit-1.example.org"})
	b := ownerHandle(t, "bob", Scope{Scheduler: "submit-2.example.org"})

	_, err := a.And(b)
	assert.ErrorIs(t, err, ErrInvalidCombination)
	_, err = a.Or(b)
	assert.ErrorIs(t, err, ErrInvalidCombination)
	_, err = a.Xor(b)
	assert.ErrorIs(t, err, ErrInvalidCombination)
}

func TestConstraintHandle_ZeroScopeCombinesAndInherits(t *testing.T) {
	a := ownerHandle(t, "alice", Scope{})
	b := ownerHandle(t, "bob", Scope{Scheduler: "submit-1.example.org"})

	m, err := a.And(b)
	require.NoError(t, err)
	assert.Equal(t, Scope{Scheduler: "submit-1.example.org"}, m.Scope())
}

func TestConstraintHandle_AndRaw(t *testing.T) {
	a := ownerHandle(t, "alice", Scope{})

	m, err := a.AndRaw("JobStatus < 4")
	require.NoError(t, err)
	assert.Equal(t, "(Owner == alice) && (JobStatus < 4)", m.ConstraintString())

	_, err = a.AndRaw("JobStatus <")
	assert.ErrorIs(t, err, constraint.ErrExpressionParse)

	_, err = a.OrRaw("((")
	assert.ErrorIs(t, err, constraint.ErrExpressionParse)
}

func TestConstraintHandle_EqualByCanonicalConstraint(t *testing.T) {
	a := ownerHandle(t, "alice", Scope{})
	b := ownerHandle(t, "bob", Scope{})

	ab, err := a.And(b)
	require.NoError(t, err)
	ba, err := b.And(a)
	require.NoError(t, err)

	assert.True(t, ab.Equal(ba), "combination order must not matter")
	assert.False(t, a.Equal(b))
}

func TestConstraintHandle_Reduce(t *testing.T) {
	a := ownerHandle(t, "alice", Scope{})
	m, err := a.And(a)
	require.NoError(t, err)

	assert.True(t, m.Reduce().Equal(a))
}

// recordingSchedd captures the constraint strings passed to queue
// operations.
type recordingSchedd struct {
	lastConstraint string
	lastAction     schedd.Action
	lastAttr       string
	lastValue      string
}

func (r *recordingSchedd) Query(_ context.Context, c string, _ []string, _ int) ([]schedd.Ad, error) {
	r.lastConstraint = c
	return []schedd.Ad{{"ClusterId": "1"}}, nil
}

func (r *recordingSchedd) Act(_ context.Context, a schedd.Action, c string) (schedd.Ad, error) {
	r.lastAction = a
	r.lastConstraint = c
	return schedd.Ad{"TotalSuccess": "1"}, nil
}

func (r *recordingSchedd) Edit(_ context.Context, c, attr, value string) (schedd.Ad, error) {
	r.lastConstraint = c
	r.lastAttr = attr
	r.lastValue = value
	return schedd.Ad{}, nil
}

func TestActions_PassConstraintVerbatim(t *testing.T) {
	a := ownerHandle(t, "alice", Scope{})
	rec := &recordingSchedd{}
	ctx := context.Background()

	_, err := a.Remove(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, schedd.ActionRemove, rec.lastAction)
	assert.Equal(t, "Owner == alice", rec.lastConstraint)

	_, err = a.Hold(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, schedd.ActionHold, rec.lastAction)

	_, err = a.Release(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, schedd.ActionRelease, rec.lastAction)

	_, err = a.Pause(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, schedd.ActionSuspend, rec.lastAction)

	_, err = a.Resume(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, schedd.ActionContinue, rec.lastAction)

	_, err = a.Vacate(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, schedd.ActionVacate, rec.lastAction)

	_, err = a.Edit(ctx, rec, "RequestMemory", "2048")
	require.NoError(t, err)
	assert.Equal(t, "RequestMemory", rec.lastAttr)
	assert.Equal(t, "2048", rec.lastValue)

	_, err = a.Query(ctx, rec, []string{"ClusterId"}, -1)
	require.NoError(t, err)
	assert.Equal(t, "Owner == alice", rec.lastConstraint)
}
