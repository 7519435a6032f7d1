package pwm

import (
	"context"

	"github.com/pkg/errors"
)

// Glow holds the engine's channel at a fixed brightness until ctx is done,
// then returns ErrCancelled. The context is checked before every poll.
func Glow(ctx context.Context, e *Engine, brightness float64) error {
	th, err := Threshold(brightness, e.period)
	if err != nil {
		return err
	}
	threshold := float64(th)
	for {
		select {
		case <-ctx.Done():
			return errors.Wrap(ErrCancelled, "glow")
		default:
		}
		if err := e.Poll(threshold); err != nil {
			return err
		}
	}
}
