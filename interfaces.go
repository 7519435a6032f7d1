package main

import (
	"github.com/pkg/errors"

	"dscheirer.com/ledsequencer/channel"
)

const (
	boardRPIO    = "rpio"
	boardConsole = "console"
	boardLog     = "log"
)

// board is the hardware behind the six channels
type board interface {
	init(rt runtimeConfig) error
	layout() channel.Layout
	ports() map[string]channel.Port
	close()
}

func newBoard(name string) (board, error) {
	switch name {
	case boardRPIO:
		return &rpioBoard{}, nil
	case boardConsole:
		return &consoleBoard{}, nil
	case boardLog:
		return &logBoard{}, nil
	}
	return nil, errUnknownBoard(name)
}

func errUnknownBoard(name string) error {
	return errors.Errorf("unknown board %q", name)
}
