// Package ticks holds the two interrupt-driven tick counters that the PWM and
// envelope code use as their only clock.
package ticks

import "sync/atomic"

// Counter is a tick count shared between the interrupt side, which only ever
// increments it, and foreground code, which reads and resets it. Every access
// is a single atomic operation so a reset can never tear an increment.
//
// The count wraps at 2^32. On a 1us timer that is a little over 71 minutes
// without a reset; wrap is expected and is not an error. Use Elapsed to
// measure spans that may cross it.
type Counter struct {
	v atomic.Uint32
}

// Inc is the interrupt handler for a timer that counts by one.
func (c *Counter) Inc() uint32 {
	return c.v.Add(1)
}

// Add is the interrupt handler for a timer that counts by a fixed step.
func (c *Counter) Add(n uint32) uint32 {
	return c.v.Add(n)
}

func (c *Counter) Load() uint32 {
	return c.v.Load()
}

// Store overwrites the count.
func (c *Counter) Store(n uint32) {
	c.v.Store(n)
}

// Swap stores n and returns the count it replaced. Increments that land
// before the swap are in the returned value, the rest count from n.
func (c *Counter) Swap(n uint32) uint32 {
	return c.v.Swap(n)
}

// Reset zeroes the counter and returns the count it cleared.
func (c *Counter) Reset() uint32 {
	return c.v.Swap(0)
}

// Elapsed returns the number of ticks from one reading to a later one,
// including across a wrap of the counter.
func Elapsed(from, to uint32) uint32 {
	return to - from
}
