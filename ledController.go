package main

import (
	"context"

	"github.com/pkg/errors"

	"dscheirer.com/ledsequencer/channel"
	"dscheirer.com/ledsequencer/envelope"
	"dscheirer.com/ledsequencer/pattern"
	"dscheirer.com/ledsequencer/pwm"
	"dscheirer.com/ledsequencer/ticks"
)

const (
	demoWalk      = "walk"
	demoSOS       = "sos"
	demoGlow      = "glow"
	demoPulse     = "pulse"
	demoLightShow = "lightshow"
)

var errUnknownDemo = errors.New("unknown demo")

func validDemo(name string) bool {
	switch name {
	case demoWalk, demoSOS, demoGlow, demoPulse, demoLightShow:
		return true
	}
	return false
}

func isCancelled(err error) bool {
	cause := errors.Cause(err)
	return cause == pwm.ErrCancelled || cause == pattern.ErrCancelled
}

func startDemo(rt runtimeConfig) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := runDemo(rt); err != nil && !isCancelled(err) {
			rt.logger.Printf("Demo failed: %v", err)
		}
		// a finished demo ends the program
		rt.comms.stop()
	}()
}

// runDemo drives the board with the configured demo until it completes or
// quit is closed
func runDemo(rt runtimeConfig) error {
	logger := &ThreadLogger{name: "Demo"}
	defer func() {
		logger.Println("Exiting runDemo")
	}()

	name := rt.settings.GetString(sDemo)
	if !validDemo(name) {
		return errors.Wrap(errUnknownDemo, name)
	}

	if step := rt.settings.GetInt(sSlowStep); step < 0 {
		return errors.Errorf("%s must not be negative, got %d", sSlowStep, step)
	}

	drv, err := channel.New(rt.board.layout(), rt.board.ports())
	if err != nil {
		return err
	}
	if rt.settings.GetBool(sDebug) {
		drv.SetLogger(&ThreadLogger{name: "Channels"})
	}
	defer drv.AllOff()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-rt.comms.quit:
			logger.Println("Got a quit signal in runDemo")
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.Printf("Running %s", name)

	if seq, ok := pattern.Named(name); ok {
		repeat := rt.settings.GetInt(sRepeat)
		if repeat < 0 {
			return errors.Errorf("%s must not be negative", sRepeat)
		}
		player := pattern.NewPlayer(rt.clock, drv)
		if rt.settings.GetBool(sDebug) {
			player.SetLogger(logger)
		}
		return player.Repeat(ctx, seq, repeat)
	}

	engine, err := newEngine(rt, drv)
	if err != nil {
		return err
	}

	timers := ticks.NewTimers(rt.clock, rt.counters,
		rt.settings.GetDuration(sFastTick), rt.settings.GetDuration(sSlowTick))
	timers.Start(ctx)
	defer timers.Stop()

	if name == demoGlow {
		return pwm.Glow(ctx, engine, rt.settings.GetFloat(sBrightness))
	}

	ctrl := envelope.New(engine, rt.counters, envelope.Config{
		Initial:  rt.settings.GetFloat(sInitial),
		Speed:    rt.settings.GetFloat(sSpeed),
		Truncate: rt.settings.GetBool(sTruncate),
	})
	ctrl.SetLogger(logger)
	return ctrl.Run(ctx)
}

func newEngine(rt runtimeConfig, drv *channel.Driver) (*pwm.Engine, error) {
	period := rt.settings.GetInt(sPWMPeriod)
	if period <= 0 {
		return nil, errors.Errorf("%s must be positive", sPWMPeriod)
	}
	mode, err := pwm.ParseMode(rt.settings.GetString(sPWMMode))
	if err != nil {
		return nil, err
	}
	engine, err := pwm.NewEngine(rt.counters, drv, rt.settings.GetInt(sChannel), uint32(period))
	if err != nil {
		return nil, err
	}
	engine.SetMode(mode)
	return engine, nil
}
