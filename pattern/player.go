// Package pattern replays fixed on/off choreography across the six channels.
package pattern

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// ErrCancelled is returned when the context ends mid-sequence.
var ErrCancelled = errors.New("pattern cancelled")

// Step lights the channels in Mask and holds them for Duration. Mask bit 5
// is channel 0, bit 0 is channel 5.
type Step struct {
	Mask     uint8
	Duration time.Duration
}

// Sequence is played in order.
type Sequence []Step

// Total is the time the sequence takes to play once.
func (s Sequence) Total() time.Duration {
	var d time.Duration
	for _, st := range s {
		d += st.Duration
	}
	return d
}

// Masker sets all channels at once; *channel.Driver is one.
type Masker interface {
	ApplyMask(mask uint8)
}

// Logger is satisfied by *log.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

type Player struct {
	clock  clockwork.Clock
	out    Masker
	logger Logger
}

func NewPlayer(clock clockwork.Clock, out Masker) *Player {
	return &Player{clock: clock, out: out}
}

func (p *Player) SetLogger(l Logger) {
	p.logger = l
}

// Play applies each step and waits out its duration on the player's clock.
// A cancelled context stops it between steps or in the middle of a wait.
func (p *Player) Play(ctx context.Context, seq Sequence) error {
	for i, st := range seq {
		select {
		case <-ctx.Done():
			return errors.Wrapf(ErrCancelled, "step %d", i)
		default:
		}
		p.out.ApplyMask(st.Mask)
		if p.logger != nil {
			p.logger.Printf("Pattern step %d: mask %#02x for %v", i, st.Mask, st.Duration)
		}
		select {
		case <-ctx.Done():
			return errors.Wrapf(ErrCancelled, "step %d", i)
		case <-p.clock.After(st.Duration):
		}
	}
	return nil
}

// Repeat plays seq n times, or until cancelled when n is zero.
func (p *Player) Repeat(ctx context.Context, seq Sequence, n int) error {
	for i := 0; n == 0 || i < n; i++ {
		if err := p.Play(ctx, seq); err != nil {
			return err
		}
	}
	return nil
}
