// utility functions
package main

import (
	"sync"

	"github.com/jonboulle/clockwork"

	"dscheirer.com/ledsequencer/ticks"
)

type commChannels struct {
	quit chan struct{}
	once *sync.Once
}

// stop closes quit once, however many workers ask for it
func (c commChannels) stop() {
	c.once.Do(func() {
		close(c.quit)
	})
}

type runtimeConfig struct {
	settings configSettings
	comms    commChannels
	clock    clockwork.Clock
	board    board
	counters *ticks.Counters
	logger   flogger
}

func initCommChannels() commChannels {
	return commChannels{
		quit: make(chan struct{}),
		once: &sync.Once{}}
}

func initRuntime(settings configSettings, clock clockwork.Clock, b board) runtimeConfig {
	// a negative step is refused by runDemo, count it as the default here
	step := settings.GetInt(sSlowStep)
	if step < 0 {
		step = 0
	}
	return runtimeConfig{
		settings: settings,
		comms:    initCommChannels(),
		clock:    clock,
		board:    b,
		counters: ticks.NewCounters(uint32(step)),
		logger:   &ThreadLogger{name: "Main"}}
}
