// Package handle provides references to sets of queued jobs. A handle
// carries a constraint scoping its job set plus the locators of the
// queueing endpoint it is bound to; everything a handle can do (query,
// act, track state) goes through that constraint string.
package handle

import (
	"context"
	"fmt"

	"github.com/gridwork/jobflow/internal/constraint"
	"github.com/gridwork/jobflow/internal/schedd"
)

// Scope identifies the queueing endpoint a handle is bound to: a
// collector locator and a scheduler locator. The zero Scope means "the
// default local endpoint" and combines with anything.
type Scope struct {
	Collector string `json:"collector,omitempty"`
	Scheduler string `json:"scheduler,omitempty"`
}

// IsZero reports whether this is the default scope.
func (s Scope) IsZero() bool { return s == Scope{} }

// merge returns the combined scope of two handles, or fails with
// ErrInvalidCombination when both are concrete and differ.
func (s Scope) merge(other Scope) (Scope, error) {
	switch {
	case s.IsZero():
		return other, nil
	case other.IsZero() || s == other:
		return s, nil
	default:
		return Scope{}, fmt.Errorf("%v vs %v: %w", s, other, ErrInvalidCombination)
	}
}

// Handle is a reference to a set of jobs in a queue, identified by a
// filter constraint.
type Handle interface {
	// ConstraintString renders the handle's constraint in the queueing
	// service's wire grammar.
	ConstraintString() string
}

// ConstraintHandle is the basic Handle: a constraint plus the scope it
// applies to.
type ConstraintHandle struct {
	constraint constraint.Constraint
	scope      Scope
}

// NewConstraintHandle builds a handle over an arbitrary constraint.
func NewConstraintHandle(c constraint.Constraint, scope Scope) *ConstraintHandle {
	return &ConstraintHandle{constraint: c, scope: scope}
}

// Constraint returns the handle's constraint.
func (h *ConstraintHandle) Constraint() constraint.Constraint { return h.constraint }

// Scope returns the endpoint the handle is bound to.
func (h *ConstraintHandle) Scope() Scope { return h.scope }

// ConstraintString implements Handle.
func (h *ConstraintHandle) ConstraintString() string { return h.constraint.String() }

// Equal reports whether two handles scope the same job set: same
// endpoint and canonically equal constraints.
func (h *ConstraintHandle) Equal(other *ConstraintHandle) bool {
	return h.scope == other.scope && constraint.Equal(h.constraint, other.constraint)
}

func (h *ConstraintHandle) String() string {
	return fmt.Sprintf("ConstraintHandle(%s)", h.ConstraintString())
}

// And intersects two handles' job sets. Fails with
// ErrInvalidCombination when the handles are bound to different
// endpoints.
func (h *ConstraintHandle) And(other *ConstraintHandle) (*ConstraintHandle, error) {
	scope, err := h.scope.merge(other.scope)
	if err != nil {
		return nil, err
	}
	return NewConstraintHandle(constraint.NewAnd(h.constraint, other.constraint), scope), nil
}

// Or unions two handles' job sets.
func (h *ConstraintHandle) Or(other *ConstraintHandle) (*ConstraintHandle, error) {
	scope, err := h.scope.merge(other.scope)
	if err != nil {
		return nil, err
	}
	return NewConstraintHandle(constraint.NewOr(h.constraint, other.constraint), scope), nil
}

// Xor takes the symmetric difference of two handles' job sets.
func (h *ConstraintHandle) Xor(other *ConstraintHandle) (*ConstraintHandle, error) {
	scope, err := h.scope.merge(other.scope)
	if err != nil {
		return nil, err
	}
	return NewConstraintHandle(constraint.NewXor(h.constraint, other.constraint), scope), nil
}

// Not inverts the handle's job set within its scope.
func (h *ConstraintHandle) Not() *ConstraintHandle {
	return NewConstraintHandle(constraint.NewNot(h.constraint), h.scope)
}

// AndRaw intersects with a raw filter-expression string. A string that
// does not parse fails with an error matching
// constraint.ErrExpressionParse.
func (h *ConstraintHandle) AndRaw(raw string) (*ConstraintHandle, error) {
	c, err := constraint.Parse(raw)
	if err != nil {
		return nil, err
	}
	return h.And(NewConstraintHandle(c, h.scope))
}

// OrRaw unions with a raw filter-expression string.
func (h *ConstraintHandle) OrRaw(raw string) (*ConstraintHandle, error) {
	c, err := constraint.Parse(raw)
	if err != nil {
		return nil, err
	}
	return h.Or(NewConstraintHandle(c, h.scope))
}

// Reduce returns a handle over the algebraically simplified constraint.
func (h *ConstraintHandle) Reduce() *ConstraintHandle {
	return NewConstraintHandle(constraint.Reduce(h.constraint), h.scope)
}

// Query runs the handle's constraint against the queue.
func (h *ConstraintHandle) Query(ctx context.Context, q schedd.Querier, projection []string, limit int) ([]schedd.Ad, error) {
	return q.Query(ctx, h.ConstraintString(), projection, limit)
}
