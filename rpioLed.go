package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"

	"dscheirer.com/ledsequencer/channel"
)

const gpioPort = "GPIO"

// one GPIO pin per channel, channel n on bit n
var gpioLayout = channel.Layout{
	{Port: gpioPort, Mask: 0x01},
	{Port: gpioPort, Mask: 0x02},
	{Port: gpioPort, Mask: 0x04},
	{Port: gpioPort, Mask: 0x08},
	{Port: gpioPort, Mask: 0x10},
	{Port: gpioPort, Mask: 0x20},
}

type rpioBoard struct {
	pins   [channel.NumChannels]rpio.Pin
	opened bool
}

func parsePins(s string) ([channel.NumChannels]int, error) {
	var pins [channel.NumChannels]int
	fields := strings.Split(s, ",")
	if len(fields) != channel.NumChannels {
		return pins, errors.Errorf("need %d pins, got %q", channel.NumChannels, s)
	}
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 0 {
			return pins, errors.Errorf("bad pin %q", f)
		}
		pins[i] = n
	}
	return pins, nil
}

func (rb *rpioBoard) init(rt runtimeConfig) error {
	pins, err := parsePins(rt.settings.GetString(sRPIOPins))
	if err != nil {
		return errors.Wrap(err, sRPIOPins)
	}

	if err := rpio.Open(); err != nil {
		return errors.Wrap(err, "rpio open")
	}
	rb.opened = true

	for i, p := range pins {
		rb.pins[i] = rpio.Pin(p)
		rb.pins[i].Output()
		rb.pins[i].Low()
	}
	rt.logger.Printf("rpio board on pins %v", pins)
	return nil
}

func (rb *rpioBoard) layout() channel.Layout {
	return gpioLayout
}

func (rb *rpioBoard) ports() map[string]channel.Port {
	return map[string]channel.Port{gpioPort: rb}
}

func (rb *rpioBoard) Set(mask uint8) {
	for i, pin := range rb.pins {
		if mask&(1<<uint(i)) != 0 {
			pin.High()
		}
	}
}

func (rb *rpioBoard) Clear(mask uint8) {
	for i, pin := range rb.pins {
		if mask&(1<<uint(i)) != 0 {
			pin.Low()
		}
	}
}

func (rb *rpioBoard) close() {
	if !rb.opened {
		return
	}
	rb.Clear(0x3f)
	rpio.Close()
	rb.opened = false
}
