// Package schedd defines the narrow interfaces through which the core
// talks to the external queueing service: submitting clusters, querying
// the queue with a rendered filter expression, and acting on matched
// jobs. Live transports are out of scope; tests use in-memory fakes.
package schedd

import "context"

// Ad is a flat attribute map describing a job or cluster, keyed by
// attribute name.
type Ad map[string]string

// SubmitResult identifies the cluster created by one submission.
type SubmitResult struct {
	ClusterID int64
	FirstProc int
	Count     int
}

// Submitter accepts a submit description plus a repetition count and
// optional per-repetition item data (already normalized to the mapping
// form) and creates a cluster of jobs.
type Submitter interface {
	Submit(ctx context.Context, desc map[string]string, count int, itemdata []map[string]string) (SubmitResult, error)
}

// Querier runs a filter expression against the queue. The constraint
// string is consumed verbatim; it must be in the wire grammar produced
// by the constraint package.
type Querier interface {
	Query(ctx context.Context, constraint string, projection []string, limit int) ([]Ad, error)
}

// Action is the closed set of queue mutations that can be applied to
// the jobs matching a constraint.
type Action int

const (
	ActionRemove Action = iota + 1
	ActionHold
	ActionRelease
	ActionSuspend
	ActionContinue
	ActionVacate
)

func (a Action) String() string {
	switch a {
	case ActionRemove:
		return "Remove"
	case ActionHold:
		return "Hold"
	case ActionRelease:
		return "Release"
	case ActionSuspend:
		return "Suspend"
	case ActionContinue:
		return "Continue"
	case ActionVacate:
		return "Vacate"
	default:
		return "Unknown"
	}
}

// Actor applies actions and attribute edits to the jobs matching a
// constraint. The returned Ad summarizes the result, in whatever
// attributes the service provides.
type Actor interface {
	Act(ctx context.Context, action Action, constraint string) (Ad, error)
	Edit(ctx context.Context, constraint string, attr string, value string) (Ad, error)
}

// Scheduler is the full surface of one resolved queueing service
// endpoint.
type Scheduler interface {
	Submitter
	Querier
	Actor
}
