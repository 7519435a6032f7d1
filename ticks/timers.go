package ticks

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	DefaultFastPeriod = time.Microsecond
	DefaultSlowPeriod = 10 * time.Millisecond

	// MinResolution is the shortest ticker the timers will ask the clock
	// for. A faster timer catches up by raising several interrupts per wake.
	MinResolution = 100 * time.Microsecond
)

// Timers stands in for the two hardware timers on a host. Each timer is a
// goroutine that raises its interrupt once per elapsed period, so the
// counters follow the clock even when the OS ticker runs coarser.
type Timers struct {
	clock    clockwork.Clock
	counters *Counters
	fast     time.Duration
	slow     time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTimers binds counters to a clock. Zero periods take the defaults.
func NewTimers(clock clockwork.Clock, counters *Counters, fast, slow time.Duration) *Timers {
	if fast <= 0 {
		fast = DefaultFastPeriod
	}
	if slow <= 0 {
		slow = DefaultSlowPeriod
	}
	return &Timers{clock: clock, counters: counters, fast: fast, slow: slow}
}

// Start launches both timers. They run until Stop or until ctx is done.
// Calling Start on running timers does nothing.
func (t *Timers) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return
	}
	ctx, t.cancel = context.WithCancel(ctx)
	t.wg.Add(2)
	go t.run(ctx, t.fast, t.counters.FastInterrupt)
	go t.run(ctx, t.slow, t.counters.SlowInterrupt)
}

// Stop halts both timers and waits for them to exit.
func (t *Timers) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	t.wg.Wait()
}

func (t *Timers) run(ctx context.Context, period time.Duration, isr func()) {
	defer t.wg.Done()

	res := period
	if res < MinResolution {
		res = MinResolution
	}
	last := t.clock.Now()
	ticker := t.clock.NewTicker(res)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			n := t.clock.Now().Sub(last) / period
			for i := time.Duration(0); i < n; i++ {
				isr()
			}
			last = last.Add(n * period)
		}
	}
}
