package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrHandleNotFound reports a LoadHandle for a cluster with no saved
// snapshot.
var ErrHandleNotFound = errors.New("handle snapshot not found")

// SaveHandle persists a handle snapshot (its JSON form) keyed by
// cluster ID, replacing any previous snapshot for that cluster.
func (s *Store) SaveHandle(ctx context.Context, clusterID int64, snapshot []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO handles (cluster_id, snapshot)
		 VALUES (?, ?)
		 ON CONFLICT (cluster_id) DO UPDATE SET snapshot = excluded.snapshot`,
		clusterID, string(snapshot),
	)
	if err != nil {
		return fmt.Errorf("save handle for cluster %d: %w", clusterID, err)
	}
	return nil
}

// LoadHandle returns the stored snapshot for a cluster.
func (s *Store) LoadHandle(ctx context.Context, clusterID int64) ([]byte, error) {
	var snapshot string
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM handles WHERE cluster_id = ?`,
		clusterID,
	).Scan(&snapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cluster %d: %w", clusterID, ErrHandleNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load handle for cluster %d: %w", clusterID, err)
	}
	return []byte(snapshot), nil
}

// Clusters returns the cluster IDs with saved handle snapshots, in
// ascending order.
func (s *Store) Clusters(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cluster_id FROM handles ORDER BY cluster_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list clusters: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan cluster id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cluster ids: %w", err)
	}
	return ids, nil
}
