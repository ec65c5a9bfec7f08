package handle

import (
	"encoding/json"
	"fmt"

	"github.com/gridwork/jobflow/internal/constraint"
)

// clusterSnapshot is the persisted form of a ClusterHandle. The
// constraint is stored canonically so a round-tripped handle compares
// equal to the original; the event source is deliberately absent and
// must be rebound with Bind after unmarshalling.
type clusterSnapshot struct {
	ClusterID  int64  `json:"cluster_id"`
	FirstProc  int    `json:"first_proc"`
	Count      int    `json:"count"`
	Token      string `json:"token"`
	Collector  string `json:"collector,omitempty"`
	Scheduler  string `json:"scheduler,omitempty"`
	Constraint string `json:"constraint"`
}

// MarshalJSON implements json.Marshaler.
func (h *ClusterHandle) MarshalJSON() ([]byte, error) {
	return json.Marshal(clusterSnapshot{
		ClusterID:  h.clusterID,
		FirstProc:  h.firstProc,
		Count:      h.count,
		Token:      h.token,
		Collector:  h.scope.Collector,
		Scheduler:  h.scope.Scheduler,
		Constraint: constraint.Canonical(h.constraint),
	})
}

// UnmarshalJSON implements json.Unmarshaler. The restored handle has no
// event source; bind one before reading state.
func (h *ClusterHandle) UnmarshalJSON(data []byte) error {
	var snap clusterSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("unmarshal cluster handle: %w", err)
	}

	c, err := constraint.Parse(snap.Constraint)
	if err != nil {
		return fmt.Errorf("unmarshal cluster handle constraint: %w", err)
	}

	*h = ClusterHandle{
		ConstraintHandle: ConstraintHandle{
			constraint: c,
			scope:      Scope{Collector: snap.Collector, Scheduler: snap.Scheduler},
		},
		clusterID: snap.ClusterID,
		firstProc: snap.FirstProc,
		count:     snap.Count,
		token:     snap.Token,
	}
	return nil
}

// Restore rebuilds a handle from its persisted snapshot. Bind an event
// source before reading state.
func Restore(data []byte) (*ClusterHandle, error) {
	h := &ClusterHandle{}
	if err := json.Unmarshal(data, h); err != nil {
		return nil, err
	}
	return h, nil
}
