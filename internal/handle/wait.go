package handle

import (
	"context"
	"fmt"
	"time"
)

// DefaultWaitInterval is how often Wait re-reads cluster state.
const DefaultWaitInterval = 250 * time.Millisecond

// Wait blocks until every job in the cluster has completed, polling the
// status source. A zero timeout waits forever (bounded only by ctx).
// Hitting the timeout fails with ErrWaitedTooLong; ctx cancellation
// returns ctx.Err().
func (h *ClusterHandle) Wait(ctx context.Context, timeout time.Duration) error {
	return h.WaitFor(ctx, timeout, DefaultWaitInterval, h.Done)
}

// WaitFor blocks until cond holds, checking every interval.
func (h *ClusterHandle) WaitFor(ctx context.Context, timeout, interval time.Duration, cond func(context.Context) (bool, error)) error {
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := cond(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return fmt.Errorf("cluster %d after %s: %w", h.clusterID, timeout, ErrWaitedTooLong)
		case <-ticker.C:
		}
	}
}
