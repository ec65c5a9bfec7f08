// Package store provides the durable job event journal and handle
// snapshots, backed by SQLite.
//
// The journal is the status source for everything else: observed job
// events are appended once (idempotently) and replayed by readers to
// reconstruct per-job state. Handle snapshots let a work-unit handle be
// round-tripped through persistence and rebound to the same journal.
package store
