package store

import (
	"context"
	"fmt"

	"github.com/gridwork/jobflow/internal/status"
)

// AppendEvent writes one observed job event. Idempotent: re-appending
// an event with the same (cluster, seq) is a no-op, so an event log can
// be re-ingested after a crash without duplicating transitions.
func (s *Store) AppendEvent(ctx context.Context, ev status.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO job_events (cluster_id, seq, proc, kind)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (cluster_id, seq) DO NOTHING`,
		ev.ClusterID, ev.Seq, ev.Proc, int(ev.Kind),
	)
	if err != nil {
		return fmt.Errorf("append event cluster=%d seq=%d: %w", ev.ClusterID, ev.Seq, err)
	}
	return nil
}

// RecordEvent stamps a newly observed event from the journal clock and
// appends it. Returns the assigned sequence number.
func (s *Store) RecordEvent(ctx context.Context, clusterID int64, proc int, kind status.EventKind) (int64, error) {
	ev := status.Event{
		ClusterID: clusterID,
		Proc:      proc,
		Kind:      kind,
		Seq:       s.clock.Next(),
	}
	if err := s.AppendEvent(ctx, ev); err != nil {
		return 0, err
	}
	return ev.Seq, nil
}

// Events returns the events for a cluster with seq greater than
// afterSeq, in seq order. Implements status.EventSource.
func (s *Store) Events(ctx context.Context, clusterID int64, afterSeq int64) ([]status.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cluster_id, seq, proc, kind
		 FROM job_events
		 WHERE cluster_id = ? AND seq > ?
		 ORDER BY seq ASC`,
		clusterID, afterSeq,
	)
	if err != nil {
		return nil, fmt.Errorf("query events for cluster %d: %w", clusterID, err)
	}
	defer rows.Close()

	var events []status.Event
	for rows.Next() {
		var ev status.Event
		var kind int
		if err := rows.Scan(&ev.ClusterID, &ev.Seq, &ev.Proc, &kind); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		ev.Kind = status.EventKind(kind)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}
	return events, nil
}
