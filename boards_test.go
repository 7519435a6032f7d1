package main

import (
	"testing"

	"gotest.tools/assert"

	"dscheirer.com/ledsequencer/channel"
)

func TestParsePins(t *testing.T) {
	pins, err := parsePins("17,27,22,23,24,25")
	assert.NilError(t, err)
	assert.Equal(t, pins, [channel.NumChannels]int{17, 27, 22, 23, 24, 25})

	pins, err = parsePins(" 2, 3 ,4,5,6,7")
	assert.NilError(t, err)
	assert.Equal(t, pins[1], 3)

	for _, bad := range []string{"", "1,2,3", "1,2,3,4,5,6,7", "1,2,x,4,5,6", "1,2,3,4,5,-6"} {
		_, err := parsePins(bad)
		assert.Assert(t, err != nil, bad)
	}
}

func TestNewBoard(t *testing.T) {
	b, err := newBoard(boardLog)
	assert.NilError(t, err)
	_, ok := b.(*logBoard)
	assert.Assert(t, ok)

	b, err = newBoard(boardConsole)
	assert.NilError(t, err)
	_, ok = b.(*consoleBoard)
	assert.Assert(t, ok)

	b, err = newBoard(boardRPIO)
	assert.NilError(t, err)
	_, ok = b.(*rpioBoard)
	assert.Assert(t, ok)

	_, err = newBoard("lcd")
	assert.ErrorContains(t, err, `unknown board "lcd"`)
}

// every board's layout must fit its own ports, checked without touching
// hardware or the terminal
func TestBoardLayouts(t *testing.T) {
	for _, name := range []string{boardRPIO, boardConsole} {
		b, err := newBoard(name)
		assert.NilError(t, err)
		_, err = channel.New(b.layout(), b.ports())
		assert.NilError(t, err, name)
	}

	_, _, lb := testRuntime(t, nil)
	_, err := channel.New(lb.layout(), lb.ports())
	assert.NilError(t, err)
}

func TestConsoleBoardBits(t *testing.T) {
	cb := &consoleBoard{}
	d, err := channel.New(cb.layout(), cb.ports())
	assert.NilError(t, err)

	d.ApplyMask(0x21)
	assert.Equal(t, cb.bits.Load(), uint32(0x21))
	assert.NilError(t, d.Set(0, false))
	assert.Equal(t, cb.bits.Load(), uint32(0x20))

	// close before init is a no-op
	cb.close()
}

func TestShade(t *testing.T) {
	assert.Equal(t, shade(0), ' ')
	assert.Equal(t, shade(1), '░')
	assert.Equal(t, shade(frameSamples*3/4), '▒')
	assert.Equal(t, shade(frameSamples), '█')
}

func TestLogBoardAudit(t *testing.T) {
	_, _, lb := testRuntime(t, nil)
	port := lb.ports()["L"]

	port.Set(0x02)
	port.Set(0x80)
	port.Clear(0x02)
	assert.Equal(t, lb.value("L"), uint8(0x80))
	assert.Equal(t, lb.value("B"), uint8(0))
	assert.DeepEqual(t, lb.auditTrail(), []string{
		"Port L = 0x02",
		"Port L = 0x82",
		"Port L = 0x80",
	})

	for i := 0; i < auditLimit; i++ {
		port.Clear(0x80)
	}
	assert.Equal(t, len(lb.auditTrail()), auditLimit)
	assert.Equal(t, lb.writes, auditLimit+3)
}
