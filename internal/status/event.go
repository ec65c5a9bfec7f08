package status

import (
	"context"
	"fmt"
)

// EventKind is the closed set of job event types observed from the
// queueing service's event log. Not every kind maps to a status change;
// kinds without a mapping are informational and skipped during replay.
type EventKind int

const (
	KindSubmit EventKind = iota + 1
	KindExecute
	KindEvicted
	KindUnsuspended
	KindReleased
	KindShadowException
	KindReconnectFailed
	KindTerminated
	KindHeld
	KindSuspended
	KindAborted
)

func (k EventKind) String() string {
	switch k {
	case KindSubmit:
		return "SUBMIT"
	case KindExecute:
		return "EXECUTE"
	case KindEvicted:
		return "EVICTED"
	case KindUnsuspended:
		return "UNSUSPENDED"
	case KindReleased:
		return "RELEASED"
	case KindShadowException:
		return "SHADOW_EXCEPTION"
	case KindReconnectFailed:
		return "RECONNECT_FAILED"
	case KindTerminated:
		return "TERMINATED"
	case KindHeld:
		return "HELD"
	case KindSuspended:
		return "SUSPENDED"
	case KindAborted:
		return "ABORTED"
	default:
		return "UNKNOWN"
	}
}

// ParseKind maps an event kind name (as produced by String) back to
// its kind. Used when loading scripted scenarios.
func ParseKind(name string) (EventKind, error) {
	for k := KindSubmit; k <= KindAborted; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", name)
}

// statusForEvent is the event-to-status transition table. Several
// distinct events (eviction, release, reconnect failure) all return a
// job to the idle state.
var statusForEvent = map[EventKind]JobStatus{
	KindSubmit:          Idle,
	KindEvicted:         Idle,
	KindUnsuspended:     Idle,
	KindReleased:        Idle,
	KindShadowException: Idle,
	KindReconnectFailed: Idle,
	KindTerminated:      Completed,
	KindExecute:         Running,
	KindHeld:            Held,
	KindSuspended:       Suspended,
	KindAborted:         Removed,
}

// Status returns the job status this event transitions a job into, or
// false for purely informational events.
func (k EventKind) Status() (JobStatus, bool) {
	s, ok := statusForEvent[k]
	return s, ok
}

// Event is one observed job event. Seq is the journal's monotonic
// sequence number; Proc identifies the job within its cluster.
type Event struct {
	ClusterID int64
	Proc      int
	Kind      EventKind
	Seq       int64
}

// EventSource is the unit-status collaborator: it returns the events
// observed for a cluster after a given sequence number, in sequence
// order. Implementations must tolerate concurrent polling from
// unrelated readers.
type EventSource interface {
	Events(ctx context.Context, clusterID int64, afterSeq int64) ([]Event, error)
}
