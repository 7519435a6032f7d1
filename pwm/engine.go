// Package pwm synthesises brightness on a plain on/off channel by comparing
// the fast tick counter against a threshold once per poll.
package pwm

import (
	"math"

	"github.com/pkg/errors"

	"dscheirer.com/ledsequencer/channel"
	"dscheirer.com/ledsequencer/ticks"
)

// DefaultPeriod is one PWM period in fast ticks.
const DefaultPeriod = 500

// Mode selects the on/off state machine.
type Mode int

const (
	// ModeLegacy is the three-branch machine the LED board shipped with.
	// Inside the threshold window an already-lit channel is switched off
	// by the second branch, so per-tick polling toggles there.
	ModeLegacy Mode = iota
	// ModeTwoState is on below the threshold and off from it to the end
	// of the period.
	ModeTwoState
)

func (m Mode) String() string {
	switch m {
	case ModeLegacy:
		return "legacy"
	case ModeTwoState:
		return "twostate"
	default:
		return "unknown"
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "legacy", "":
		return ModeLegacy, nil
	case "twostate":
		return ModeTwoState, nil
	}
	return ModeLegacy, errors.Errorf("unknown pwm mode %q", s)
}

var (
	ErrBrightness = errors.New("brightness out of range")
	ErrCancelled  = errors.New("cancelled")
)

// Setter drives a logical channel; *channel.Driver is one.
type Setter interface {
	Set(id int, on bool) error
}

// Engine runs the duty cycle for one channel. It belongs to the foreground
// loop that polls it; only the tick source is shared with interrupts.
type Engine struct {
	src     ticks.Source
	out     Setter
	channel int
	period  uint32
	mode    Mode
	on      bool
}

// NewEngine returns an engine for channel id with the given period in fast
// ticks. A zero period means DefaultPeriod. The channel starts off.
func NewEngine(src ticks.Source, out Setter, id int, period uint32) (*Engine, error) {
	if id < 0 || id >= channel.NumChannels {
		return nil, errors.Wrapf(channel.ErrInvalidChannel, "channel %d", id)
	}
	if period == 0 {
		period = DefaultPeriod
	}
	return &Engine{src: src, out: out, channel: id, period: period}, nil
}

func (e *Engine) SetMode(m Mode) { e.mode = m }

func (e *Engine) Mode() Mode { return e.mode }

func (e *Engine) Period() uint32 { return e.period }

func (e *Engine) Channel() int { return e.channel }

// On reports the level the engine last wrote.
func (e *Engine) On() bool { return e.on }

func (e *Engine) set(on bool) error {
	e.on = on
	return e.out.Set(e.channel, on)
}

// Poll makes one on/off decision against the fast counter. Thresholds are
// in fast ticks; a threshold at or above the period keeps the channel lit.
//
// A reading past the period resets the fast counter and lights the channel,
// which starts the next period. A reading equal to the period holds the
// current level. A wrapped counter reads small and simply starts the next
// period early.
func (e *Engine) Poll(threshold float64) error {
	if e.mode == ModeTwoState {
		return e.pollTwoState(threshold)
	}
	fast := e.src.Fast()
	switch {
	case float64(fast) < threshold && !e.on:
		return e.set(true)
	case fast < e.period && e.on:
		return e.set(false)
	case fast > e.period:
		e.src.ResetFast()
		return e.set(true)
	}
	return nil
}

func (e *Engine) pollTwoState(threshold float64) error {
	fast := e.src.Fast()
	if fast > e.period {
		e.src.ResetFast()
		return e.set(true)
	}
	want := float64(fast) < threshold
	if want != e.on {
		return e.set(want)
	}
	return nil
}

// Threshold converts a brightness in [0, 1] to whole fast ticks of on-time
// per period.
func Threshold(brightness float64, period uint32) (uint32, error) {
	if math.IsNaN(brightness) || brightness < 0 || brightness > 1 {
		return 0, errors.Wrapf(ErrBrightness, "%v", brightness)
	}
	return uint32(float64(period) * brightness), nil
}
