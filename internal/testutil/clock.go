package testutil

import (
	"sync"
	"time"
)

// FixedClock is a wall clock that only moves when told to.
//
// Pass its Now method wherever a func() time.Time clock is expected so
// relative date phrases resolve the same way on every run.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock stopped at start.
func NewFixedClock(start time.Time) *FixedClock {
	return &FixedClock{now: start}
}

// Now returns the current reading without moving the clock.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new reading.
func (c *FixedClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set stops the clock at t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
