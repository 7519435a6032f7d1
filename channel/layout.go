package channel

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Binding is the port and single-bit mask behind one channel.
type Binding struct {
	Port string
	Mask uint8
}

// Layout binds each channel id to its output.
type Layout [NumChannels]Binding

// DefaultLayout is the LED board wiring: channels 0 and 1 on port B,
// channels 2 through 5 on port L, on alternate bits.
var DefaultLayout = Layout{
	{Port: "B", Mask: 0x02},
	{Port: "B", Mask: 0x08},
	{Port: "L", Mask: 0x02},
	{Port: "L", Mask: 0x08},
	{Port: "L", Mask: 0x20},
	{Port: "L", Mask: 0x80},
}

// PortNames lists the distinct ports the layout uses, in channel order.
func (l Layout) PortNames() []string {
	var names []string
	seen := map[string]bool{}
	for _, b := range l {
		if !seen[b.Port] {
			seen[b.Port] = true
			names = append(names, b.Port)
		}
	}
	return names
}

// Validate checks that every channel has a port in ports, a one-bit mask,
// and an output of its own.
func (l Layout) Validate(ports map[string]Port) error {
	used := map[Binding]int{}
	for id, b := range l {
		if _, ok := ports[b.Port]; !ok {
			return errors.Wrapf(ErrLayout, "channel %d: no port %q", id, b.Port)
		}
		if bits.OnesCount8(b.Mask) != 1 {
			return errors.Wrapf(ErrLayout, "channel %d: mask %#02x is not a single bit", id, b.Mask)
		}
		if other, ok := used[b]; ok {
			return errors.Wrapf(ErrLayout, "channels %d and %d share %s:%#02x", other, id, b.Port, b.Mask)
		}
		used[b] = id
	}
	return nil
}
