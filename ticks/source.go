package ticks

// DefaultSlowStep is how far the slow counter moves per slow-timer interrupt.
const DefaultSlowStep = 5

// Source is the foreground view of the two timers.
type Source interface {
	// Fast is incremented by one every fast-timer interrupt (~1us).
	Fast() uint32
	// Slow is incremented by a fixed step every slow-timer interrupt (~10ms).
	Slow() uint32
	ResetFast()
	ResetSlow()
	// SetSlow restarts the slow counter at n.
	SetSlow(n uint32)
}

// Counters is the counter pair behind the fast and slow timers. The zero
// value is ready to use with DefaultSlowStep.
type Counters struct {
	fast     Counter
	slow     Counter
	slowStep uint32
}

// NewCounters returns counters whose slow side moves by step per interrupt.
func NewCounters(step uint32) *Counters {
	return &Counters{slowStep: step}
}

// FastInterrupt is the fast-timer handler.
func (c *Counters) FastInterrupt() {
	c.fast.Inc()
}

// SlowInterrupt is the slow-timer handler.
func (c *Counters) SlowInterrupt() {
	step := c.slowStep
	if step == 0 {
		step = DefaultSlowStep
	}
	c.slow.Add(step)
}

func (c *Counters) Fast() uint32 { return c.fast.Load() }
func (c *Counters) Slow() uint32 { return c.slow.Load() }

func (c *Counters) ResetFast() { c.fast.Reset() }
func (c *Counters) ResetSlow() { c.slow.Reset() }

func (c *Counters) SetFast(n uint32) { c.fast.Store(n) }
func (c *Counters) SetSlow(n uint32) { c.slow.Store(n) }

// FastCounter exposes the fast counter for callers that need Swap.
func (c *Counters) FastCounter() *Counter { return &c.fast }

// SlowCounter exposes the slow counter for callers that need Swap.
func (c *Counters) SlowCounter() *Counter { return &c.slow }
