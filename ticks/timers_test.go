package ticks

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
	"gotest.tools/poll"
)

func waitForCounts(t *testing.T, c *Counters, fast, slow uint32) {
	poll.WaitOn(t, func(poll.LogT) poll.Result {
		if c.Fast() == fast && c.Slow() == slow {
			return poll.Success()
		}
		return poll.Continue("fast=%d slow=%d, want %d/%d", c.Fast(), c.Slow(), fast, slow)
	}, poll.WithTimeout(2*time.Second), poll.WithDelay(time.Millisecond))
}

func TestTimersRaiseInterrupts(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewCounters(DefaultSlowStep)
	tm := NewTimers(clock, c, time.Millisecond, 10*time.Millisecond)

	tm.Start(context.Background())
	defer tm.Stop()

	// both tickers armed
	clock.BlockUntil(2)
	clock.Advance(10 * time.Millisecond)

	// ten fast interrupts, one slow interrupt of 5
	waitForCounts(t, c, 10, 5)
}

func TestTimersCatchUpBelowResolution(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewCounters(DefaultSlowStep)
	// 1us fast timer, woken every MinResolution
	tm := NewTimers(clock, c, 0, time.Second)

	tm.Start(context.Background())
	defer tm.Stop()

	clock.BlockUntil(2)
	clock.Advance(MinResolution)

	waitForCounts(t, c, uint32(MinResolution/DefaultFastPeriod), 0)
}

func TestTimersStop(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewCounters(DefaultSlowStep)
	tm := NewTimers(clock, c, time.Millisecond, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tm.Start(ctx)
	// second start is ignored
	tm.Start(ctx)
	clock.BlockUntil(2)
	tm.Stop()
	tm.Stop()

	fast := c.Fast()
	clock.Advance(time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, c.Fast(), fast)
}
