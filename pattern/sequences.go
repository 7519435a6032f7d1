package pattern

import "time"

const (
	dot   = 100 * time.Millisecond
	dash  = 250 * time.Millisecond
	gap   = 250 * time.Millisecond
	pause = 500 * time.Millisecond
)

// SOS flashes the last LED for the dots and the last four for the dashes.
var SOS = Sequence{
	{0x01, dot}, {0x00, gap}, {0x01, dot}, {0x00, gap}, {0x01, dot}, {0x00, pause},
	{0x0f, dash}, {0x00, gap}, {0x0f, dash}, {0x00, gap}, {0x0f, dash}, {0x00, pause},
	{0x01, dot}, {0x00, gap}, {0x01, dot}, {0x00, gap}, {0x01, dot}, {0x00, gap},
	{0x00, gap},
}

// Walk is the board bring-up check: channels 0, 2 and 1 come on one at a
// time, then 2, 0 and 1 go off, a second apart.
var Walk = Sequence{
	{0x20, time.Second},
	{0x28, time.Second},
	{0x38, time.Second},
	{0x30, time.Second},
	{0x10, time.Second},
	{0x00, time.Second},
}

// LightShow is the board's light-show demo, which plays the SOS table.
// It is a copy so changing one leaves the other alone.
var LightShow = append(Sequence(nil), SOS...)

// Named looks up a built-in sequence.
func Named(name string) (Sequence, bool) {
	switch name {
	case "sos":
		return SOS, true
	case "walk":
		return Walk, true
	case "lightshow":
		return LightShow, true
	}
	return nil, false
}
