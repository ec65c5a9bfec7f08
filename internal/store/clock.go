package store

import "sync/atomic"

// Clock is the journal's monotonic sequence counter. Every appended
// event gets a strictly increasing seq, so replay order is total and
// independent of wall-clock time.
//
// Safe for concurrent use.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0; the first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock resuming from a known sequence number,
// e.g. the highest seq already persisted in the journal.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the latest issued sequence number without advancing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
