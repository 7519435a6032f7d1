// Package envelope animates a PWM threshold up and down between zero and the
// period, producing the "breathing" pulse-glow effect.
//
// The update rule rescales the whole threshold on every step:
//
//	threshold = (threshold + step*direction) * speed
//
// With speed below one this pulls the threshold toward a fixed point near
// step*speed/(1-speed) instead of ramping it linearly. The step is the slow
// tick count, which keeps growing, so the fixed point climbs until the
// threshold hits the period and reflects. That curve is the look of the
// effect; a linear ramp is a different effect.
package envelope

import (
	"math"
	"sync/atomic"

	"dscheirer.com/ledsequencer/pwm"
	"dscheirer.com/ledsequencer/ticks"
)

const (
	DefaultInitial = 20
	DefaultSpeed   = 0.05
)

// ErrCancelled is returned by Run when its context ends.
var ErrCancelled = pwm.ErrCancelled

type Direction int

const (
	Rising  Direction = 1
	Falling Direction = -1
)

func (d Direction) String() string {
	if d == Falling {
		return "falling"
	}
	return "rising"
}

// State is one point of the envelope.
type State struct {
	Threshold float64
	Direction Direction
	Step      uint32
}

// Config holds the envelope constants.
type Config struct {
	// Initial is the threshold a session starts from.
	Initial float64
	// Speed is the multiplicative rescale applied on every step.
	Speed float64
	// Truncate drops the fractional threshold after every step, as an
	// integer threshold would.
	Truncate bool
}

func DefaultConfig() Config {
	return Config{Initial: DefaultInitial, Speed: DefaultSpeed}
}

// Logger is satisfied by *log.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Controller owns the envelope for one PWM engine.
type Controller struct {
	cfg         Config
	engine      *pwm.Engine
	src         ticks.Source
	logger      Logger
	reflections atomic.Int32
}

// New returns a controller that drives engine from src. A zero Speed takes
// DefaultSpeed.
func New(engine *pwm.Engine, src ticks.Source, cfg Config) *Controller {
	if cfg.Speed == 0 {
		cfg.Speed = DefaultSpeed
	}
	return &Controller{cfg: cfg, engine: engine, src: src}
}

func (c *Controller) SetLogger(l Logger) {
	c.logger = l
}

func (c *Controller) Config() Config { return c.cfg }

// Reflections counts how many times the envelope has bounced off either
// limit since Start. Safe to call from any goroutine.
func (c *Controller) Reflections() int {
	return int(c.reflections.Load())
}

// Start resets both tick counters and returns the initial state.
func (c *Controller) Start() State {
	c.src.ResetFast()
	c.src.ResetSlow()
	c.reflections.Store(0)
	return State{Threshold: c.cfg.Initial, Direction: Rising, Step: 1}
}

// Clamp pins a threshold that has left [0, period] to the limit it crossed,
// reverses the direction and restarts the step at one. The slow counter is
// restarted with it since it is the step clock. The bool reports whether the
// state was clamped.
func (c *Controller) Clamp(s State) (State, bool) {
	period := float64(c.engine.Period())
	switch {
	case s.Threshold >= period:
		s.Threshold = period
	case s.Threshold < 0:
		s.Threshold = 0
	default:
		return s, false
	}
	s.Step = 1
	s.Direction = -s.Direction
	c.src.SetSlow(1)
	n := c.reflections.Add(1)
	if c.logger != nil {
		c.logger.Printf("Envelope reflected at %v, now %v (%d)", s.Threshold, s.Direction, n)
	}
	return s, true
}

// Step clamps s, runs one duty-cycle poll at the clamped threshold and
// returns the rescaled state.
func (c *Controller) Step(s State) (State, error) {
	s, _ = c.Clamp(s)
	if err := c.engine.Poll(s.Threshold); err != nil {
		return s, err
	}
	next := (s.Threshold + float64(s.Step)*float64(s.Direction)) * c.cfg.Speed
	if c.cfg.Truncate {
		next = math.Trunc(next)
	}
	s.Threshold = next
	return s, nil
}
