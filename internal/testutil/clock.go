// Package testutil provides the shared fakes used across package
// tests: a scriptable in-memory scheduler and a manual time source.
// Nothing here talks to a real queueing service.
package testutil

import (
	"sync"
	"time"
)

// ManualClock is a time source advanced explicitly by the test. The
// zero value starts at the Unix epoch.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock starts a clock at the given instant.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current instant. Pass the method value as a clock
// function to code under test.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
