// Package channel maps the six logical LED channels onto bits of physical
// output ports.
package channel

import (
	"github.com/pkg/errors"
)

// NumChannels is the number of logical LED outputs.
const NumChannels = 6

var (
	ErrInvalidChannel = errors.New("invalid channel")
	ErrLayout         = errors.New("invalid channel layout")
)

// Port is an output port whose bits drive LEDs.
type Port interface {
	Set(mask uint8)
	Clear(mask uint8)
}

// Logger is satisfied by *log.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Driver writes channel levels to their ports. It is owned by a single
// foreground loop and is not safe for concurrent use.
type Driver struct {
	ports  [NumChannels]Port
	masks  [NumChannels]uint8
	levels [NumChannels]bool
	logger Logger
}

// New checks layout against ports and returns a driver for it.
func New(layout Layout, ports map[string]Port) (*Driver, error) {
	if err := layout.Validate(ports); err != nil {
		return nil, err
	}
	d := &Driver{}
	for id, b := range layout {
		d.ports[id] = ports[b.Port]
		d.masks[id] = b.Mask
	}
	return d, nil
}

// SetLogger turns on a log line per write. nil turns it off.
func (d *Driver) SetLogger(l Logger) {
	d.logger = l
}

func checkID(id int) error {
	if id < 0 || id >= NumChannels {
		return errors.Wrapf(ErrInvalidChannel, "channel %d", id)
	}
	return nil
}

// Set drives channel id on or off.
func (d *Driver) Set(id int, on bool) error {
	if err := checkID(id); err != nil {
		return err
	}
	d.write(id, on)
	return nil
}

// write drives a channel already known to be in range
func (d *Driver) write(id int, on bool) {
	if on {
		d.ports[id].Set(d.masks[id])
	} else {
		d.ports[id].Clear(d.masks[id])
	}
	d.levels[id] = on
	if d.logger != nil {
		d.logger.Printf("Set channel %v to %v", id, on)
	}
}

// Level is the last level written to channel id.
func (d *Driver) Level(id int) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}
	return d.levels[id], nil
}

// ApplyMask sets every channel from a six-bit pattern. Bit 5 is channel 0
// and bit 0 is channel 5, so 0x20 lights the first LED. Higher bits are
// ignored. It cannot fail: every id it writes is in range.
func (d *Driver) ApplyMask(mask uint8) {
	for id := 0; id < NumChannels; id++ {
		d.write(id, mask&(1<<uint(NumChannels-1-id)) != 0)
	}
}

// Mask reports the current levels in ApplyMask's bit order.
func (d *Driver) Mask() uint8 {
	var m uint8
	for id, on := range d.levels {
		if on {
			m |= 1 << uint(NumChannels-1-id)
		}
	}
	return m
}

func (d *Driver) AllOff() {
	d.ApplyMask(0)
}
