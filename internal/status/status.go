// Package status tracks the externally observed lifecycle of submitted
// jobs. Job state is never pushed by the queueing service; it is
// reconstructed by replaying the per-job event stream through a fixed
// event-to-status transition table.
package status

// JobStatus is the closed set of externally observed job states.
//
// The numeric values are a persistence contract (they appear in the
// event journal) and match the queueing service's own encoding, which
// is why they are not iota-dense.
type JobStatus int

const (
	Idle               JobStatus = 1
	Running            JobStatus = 2
	Removed            JobStatus = 3
	Completed          JobStatus = 4
	Held               JobStatus = 5
	TransferringOutput JobStatus = 6
	Suspended          JobStatus = 7

	// Unmaterialized is the state of a job that has been accepted into
	// a cluster but has not yet produced any event.
	Unmaterialized JobStatus = 100
)

func (s JobStatus) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Running:
		return "RUNNING"
	case Removed:
		return "REMOVED"
	case Completed:
		return "COMPLETED"
	case Held:
		return "HELD"
	case TransferringOutput:
		return "TRANSFERRING_OUTPUT"
	case Suspended:
		return "SUSPENDED"
	case Unmaterialized:
		return "UNMATERIALIZED"
	default:
		return "UNKNOWN"
	}
}

// IsTerminal reports whether a job in this state will never produce
// another event.
func (s JobStatus) IsTerminal() bool {
	return s == Completed || s == Removed
}
