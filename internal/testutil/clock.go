// Package testutil provides deterministic doubles for the logger's
// collaborators: a frozen clock for reproducible file timestamps and a
// recorder for room join/leave calls.
package testutil

import (
	"sync"
	"time"
)

// FrozenClock is a manually advanced time source.
//
// Injecting it as the logger's Now function makes file-sink timestamps
// and state-duration annotations byte-reproducible across runs.
//
// Thread-safety: all methods are safe for concurrent use.
type FrozenClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFrozenClock creates a clock frozen at the given instant.
func NewFrozenClock(at time.Time) *FrozenClock {
	return &FrozenClock{now: at}
}

// Now returns the frozen instant. Matches the logger's Now option.
func (c *FrozenClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FrozenClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
