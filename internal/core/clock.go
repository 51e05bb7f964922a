package core

import "sync/atomic"

// Clock is a monotonic logical clock for ordering audit entries and
// offline sync entries.
//
// All ordered records are stamped with a strictly increasing seq from
// this clock. This ensures:
// - Deterministic ordering (no wall-clock race conditions)
// - Replay drains the sync queue in exact enqueue order
// - Causal relationships are explicit
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// though the Core's coarse lock means only one goroutine typically
// calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific sequence
// number. Used when resuming over an existing store so new entries
// sort after persisted ones.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
// Calls are linearizable - each call returns a unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
