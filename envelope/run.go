package envelope

import (
	"context"

	"github.com/pkg/errors"
)

// Run is a pulse-glow session. It resets the counters, then loops until ctx
// is done: every pass polls the duty cycle, and every pass that sees the
// slow counter move takes one envelope step with the slow count as the step
// size. Out-of-range thresholds are clamped on the pass after they appear.
//
// Run returns ErrCancelled on shutdown, or the first output error.
func (c *Controller) Run(ctx context.Context) error {
	s := c.Start()
	last := c.src.Slow()
	if c.logger != nil {
		c.logger.Printf("Pulse glow on channel %d from %v", c.engine.Channel(), s.Threshold)
	}

	var err error
	for {
		select {
		case <-ctx.Done():
			return errors.Wrap(ErrCancelled, "pulse glow")
		default:
		}

		slow := c.src.Slow()
		if slow != last {
			s.Step = slow
			before := c.Reflections()
			if s, err = c.Step(s); err != nil {
				return err
			}
			last = slow
			if c.Reflections() != before {
				last = 1
			}
			continue
		}

		var reflected bool
		if s, reflected = c.Clamp(s); reflected {
			last = 1
		}
		if err = c.engine.Poll(s.Threshold); err != nil {
			return err
		}
	}
}
