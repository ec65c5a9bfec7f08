package status

import (
	"context"
	"fmt"
)

// ClusterState is the replayed per-job status vector for one cluster.
//
// It holds the owning cluster's identifier rather than a handle
// reference: ownership of the handle stays with the caller, and the
// state never extends its lifetime. Every read pulls any new events
// from the source first, so observed statuses are monotonic per job.
//
// ClusterState is not safe for concurrent use; each reader builds its
// own from the shared EventSource.
type ClusterState struct {
	clusterID int64
	firstProc int
	statuses  []JobStatus
	counts    map[JobStatus]int
	lastSeq   int64
	source    EventSource
}

// NewClusterState builds the state tracker for a cluster of count jobs
// whose proc IDs start at firstProc. All jobs begin Unmaterialized.
func NewClusterState(clusterID int64, firstProc, count int, source EventSource) *ClusterState {
	statuses := make([]JobStatus, count)
	for i := range statuses {
		statuses[i] = Unmaterialized
	}
	return &ClusterState{
		clusterID: clusterID,
		firstProc: firstProc,
		statuses:  statuses,
		counts:    map[JobStatus]int{Unmaterialized: count},
		source:    source,
	}
}

// ClusterID returns the owning cluster's identifier.
func (cs *ClusterState) ClusterID() int64 { return cs.clusterID }

// Len returns the number of jobs tracked.
func (cs *ClusterState) Len() int { return len(cs.statuses) }

// update drains new events from the source and applies the transition
// table. Events for other clusters or unknown procs are skipped.
func (cs *ClusterState) update(ctx context.Context) error {
	events, err := cs.source.Events(ctx, cs.clusterID, cs.lastSeq)
	if err != nil {
		return fmt.Errorf("poll events for cluster %d: %w", cs.clusterID, err)
	}
	for _, ev := range events {
		if ev.Seq > cs.lastSeq {
			cs.lastSeq = ev.Seq
		}
		if ev.ClusterID != cs.clusterID {
			continue
		}
		next, ok := ev.Kind.Status()
		if !ok {
			continue
		}
		i := ev.Proc - cs.firstProc
		if i < 0 || i >= len(cs.statuses) {
			continue
		}
		cs.counts[cs.statuses[i]]--
		cs.counts[next]++
		cs.statuses[i] = next
	}
	return nil
}

// Status returns the current status of one job, identified by its proc
// ID within the cluster.
func (cs *ClusterState) Status(ctx context.Context, proc int) (JobStatus, error) {
	if err := cs.update(ctx); err != nil {
		return 0, err
	}
	i := proc - cs.firstProc
	if i < 0 || i >= len(cs.statuses) {
		return 0, fmt.Errorf("cluster %d has no proc %d", cs.clusterID, proc)
	}
	return cs.statuses[i], nil
}

// Counts returns how many jobs are in each status. Statuses with zero
// jobs are omitted.
func (cs *ClusterState) Counts(ctx context.Context) (map[JobStatus]int, error) {
	if err := cs.update(ctx); err != nil {
		return nil, err
	}
	out := make(map[JobStatus]int, len(cs.counts))
	for s, n := range cs.counts {
		if n > 0 {
			out[s] = n
		}
	}
	return out, nil
}

// All reports whether every job satisfies pred.
func (cs *ClusterState) All(ctx context.Context, pred func(JobStatus) bool) (bool, error) {
	if err := cs.update(ctx); err != nil {
		return false, err
	}
	for _, s := range cs.statuses {
		if !pred(s) {
			return false, nil
		}
	}
	return true, nil
}

// AllCompleted reports whether every job in the cluster has completed.
func (cs *ClusterState) AllCompleted(ctx context.Context) (bool, error) {
	return cs.All(ctx, func(s JobStatus) bool { return s == Completed })
}

// Statuses returns a copy of the current status vector, indexed from
// zero (proc firstProc is element zero).
func (cs *ClusterState) Statuses(ctx context.Context) ([]JobStatus, error) {
	if err := cs.update(ctx); err != nil {
		return nil, err
	}
	out := make([]JobStatus, len(cs.statuses))
	copy(out, cs.statuses)
	return out, nil
}
