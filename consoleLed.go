package main

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"

	"dscheirer.com/ledsequencer/channel"
)

const (
	consolePort = "CON"
	// sample the channels this often, redraw every frameSamples samples
	dConsoleSample = time.Millisecond
	frameSamples   = 33
)

// darkest to brightest
var shades = []rune{' ', '░', '▒', '▓', '█'}

var consoleLayout = channel.Layout{
	{Port: consolePort, Mask: 0x01},
	{Port: consolePort, Mask: 0x02},
	{Port: consolePort, Mask: 0x04},
	{Port: consolePort, Mask: 0x08},
	{Port: consolePort, Mask: 0x10},
	{Port: consolePort, Mask: 0x20},
}

// consoleBoard draws the six LEDs in the terminal. PWM runs far faster
// than a redraw so each LED is shaded by the share of samples it was lit.
type consoleBoard struct {
	bits  atomic.Uint32
	lit   [channel.NumChannels]int
	clock clockwork.Clock
	stop  chan struct{}
	wg    sync.WaitGroup
}

func (cb *consoleBoard) init(rt runtimeConfig) error {
	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "termbox init")
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	cb.clock = rt.clock
	cb.stop = make(chan struct{})
	cb.wg.Add(2)
	go cb.render()
	go cb.keys(rt.comms)
	return nil
}

func (cb *consoleBoard) layout() channel.Layout {
	return consoleLayout
}

func (cb *consoleBoard) ports() map[string]channel.Port {
	return map[string]channel.Port{consolePort: cb}
}

func (cb *consoleBoard) Set(mask uint8) {
	for {
		old := cb.bits.Load()
		if cb.bits.CompareAndSwap(old, old|uint32(mask)) {
			return
		}
	}
}

func (cb *consoleBoard) Clear(mask uint8) {
	for {
		old := cb.bits.Load()
		if cb.bits.CompareAndSwap(old, old&^uint32(mask)) {
			return
		}
	}
}

func (cb *consoleBoard) close() {
	if cb.stop == nil {
		return
	}
	close(cb.stop)
	termbox.Interrupt()
	cb.wg.Wait()
	termbox.Close()
	cb.stop = nil
}

// shade maps a lit count out of frameSamples to a block character
func shade(lit int) rune {
	i := lit * (len(shades) - 1) / frameSamples
	if lit > 0 && i == 0 {
		i = 1
	}
	return shades[i]
}

func (cb *consoleBoard) render() {
	defer cb.wg.Done()

	ticker := cb.clock.NewTicker(dConsoleSample)
	defer ticker.Stop()

	samples := 0
	for {
		select {
		case <-cb.stop:
			return
		case <-ticker.Chan():
		}

		bits := cb.bits.Load()
		for i := range cb.lit {
			if bits&(1<<uint(i)) != 0 {
				cb.lit[i]++
			}
		}
		samples++
		if samples < frameSamples {
			continue
		}
		cb.draw()
		samples = 0
		for i := range cb.lit {
			cb.lit[i] = 0
		}
	}
}

func (cb *consoleBoard) draw() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	printAt(1, 0, "LED sequencer (q to quit)", termbox.ColorWhite)
	for i, n := range cb.lit {
		x := 2 + i*5
		r := shade(n)
		for dx := 0; dx < 3; dx++ {
			termbox.SetCell(x+dx, 2, r, termbox.ColorRed, termbox.ColorDefault)
			termbox.SetCell(x+dx, 3, r, termbox.ColorRed, termbox.ColorDefault)
		}
		printAt(x+1, 5, fmt.Sprint(i), termbox.ColorDefault)
	}
	termbox.Flush()
}

func printAt(x, y int, s string, fg termbox.Attribute) {
	for _, r := range s {
		termbox.SetCell(x, y, r, fg, termbox.ColorDefault)
		x++
	}
}

// keys turns q, Esc or Ctrl-C into a quit
func (cb *consoleBoard) keys(comms commChannels) {
	defer cb.wg.Done()

	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventKey:
			if ev.Key == termbox.KeyCtrlC || ev.Key == termbox.KeyEsc || ev.Ch == 'q' {
				comms.stop()
			}
		case termbox.EventInterrupt:
			return
		case termbox.EventError:
			return
		}
		select {
		case <-cb.stop:
			return
		default:
		}
	}
}
