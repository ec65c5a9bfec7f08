package handle

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gridwork/jobflow/internal/constraint"
	"github.com/gridwork/jobflow/internal/schedd"
	"github.com/gridwork/jobflow/internal/status"
)

// ClusterHandle references one submitted cluster of jobs. Its
// constraint is always ClusterId == N, and it can track the live state
// of its jobs through a bound event source.
type ClusterHandle struct {
	ConstraintHandle

	clusterID int64
	firstProc int
	count     int
	token     string

	source status.EventSource
	state  *status.ClusterState
}

// NewClusterHandle wraps a submission result. The source may be nil for
// handles that will never be asked for live state; reads then fail with
// ErrNoStatusSource.
func NewClusterHandle(res schedd.SubmitResult, scope Scope, source status.EventSource) *ClusterHandle {
	return &ClusterHandle{
		ConstraintHandle: ConstraintHandle{
			constraint: constraint.InCluster(res.ClusterID),
			scope:      scope,
		},
		clusterID: res.ClusterID,
		firstProc: res.FirstProc,
		count:     res.Count,
		token:     uuid.Must(uuid.NewV7()).String(),
		source:    source,
	}
}

// ClusterID returns the cluster's identifier in the queue.
func (h *ClusterHandle) ClusterID() int64 { return h.clusterID }

// FirstProc returns the proc ID of the cluster's first job.
func (h *ClusterHandle) FirstProc() int { return h.firstProc }

// Count returns the number of jobs in the cluster.
func (h *ClusterHandle) Count() int { return h.count }

// Token returns the submission token, a unique time-sortable ID
// assigned when the handle was created.
func (h *ClusterHandle) Token() string { return h.token }

func (h *ClusterHandle) String() string {
	return fmt.Sprintf("ClusterHandle(%s)", h.ConstraintString())
}

// Bind attaches an event source, replacing any previous one. Any cached
// state is discarded and rebuilt from the new source on the next read.
func (h *ClusterHandle) Bind(source status.EventSource) {
	h.source = source
	h.state = nil
}

// State returns the live per-job state tracker, building it on first
// use. The tracker holds the cluster ID, not the handle, so it never
// extends the handle's lifetime.
func (h *ClusterHandle) State(ctx context.Context) (*status.ClusterState, error) {
	if h.source == nil {
		return nil, fmt.Errorf("cluster %d: %w", h.clusterID, ErrNoStatusSource)
	}
	if h.state == nil {
		h.state = status.NewClusterState(h.clusterID, h.firstProc, h.count, h.source)
	}
	return h.state, nil
}

// Done reports whether every job in the cluster has completed. This is
// the default readiness predicate used by the flow executor.
func (h *ClusterHandle) Done(ctx context.Context) (bool, error) {
	st, err := h.State(ctx)
	if err != nil {
		return false, err
	}
	return st.AllCompleted(ctx)
}
