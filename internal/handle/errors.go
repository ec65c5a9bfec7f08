package handle

import "errors"

// ErrInvalidCombination reports an attempt to combine two handles bound
// to different queueing endpoints. Such handles scope disjoint queues,
// so merging their constraints would silently produce a filter that
// matches nothing meaningful.
var ErrInvalidCombination = errors.New("cannot combine handles bound to different schedulers")

// ErrNoStatusSource reports a live-status read on a handle that has no
// event source bound, e.g. one deserialized without rebinding.
var ErrNoStatusSource = errors.New("handle has no status source")

// ErrWaitedTooLong reports a bounded wait that hit its deadline before
// the awaited condition held. Distinct from other failures so callers
// can treat timeout specially.
var ErrWaitedTooLong = errors.New("waited too long for jobs to finish")
