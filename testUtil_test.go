package main

import (
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
	"gotest.tools/poll"
)

func logCaller(pc uintptr, file string, line int, ok bool) {
	if !ok {
		file = "?"
		line = 0
	}

	fn := runtime.FuncForPC(pc)
	var fnName string
	if fn == nil {
		fnName = "?()"
	} else {
		dotName := filepath.Ext(fn.Name())
		fnName = strings.TrimLeft(dotName, ".") + "()"
	}

	log.Printf("Starting %s (%s:%d)", fnName, filepath.Base(file), line)
}

// testRuntime builds a runtime on a fake clock and an initialized log board.
// overrides are applied to the default settings first.
func testRuntime(t *testing.T, overrides map[string]interface{}) (runtimeConfig, clockwork.FakeClock, *logBoard) {
	logCaller(runtime.Caller(1))

	s := defaultSettings()
	for k, v := range overrides {
		assert.NilError(t, s.set(k, v))
	}

	lb := &logBoard{}
	clock := clockwork.NewFakeClock()
	rt := initRuntime(s, clock, lb)
	assert.NilError(t, lb.init(rt))
	return rt, clock, lb
}

// testDemo runs the configured demo and hands back its result
func testDemo(rt runtimeConfig) chan error {
	done := make(chan error, 1)
	go func() {
		done <- runDemo(rt)
	}()
	return done
}

func testQuit(t *testing.T, rt runtimeConfig, done chan error) error {
	rt.comms.stop()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("demo did not stop on quit")
	}
	return nil
}

func waitForWrites(t *testing.T, lb *logBoard) {
	poll.WaitOn(t, func(poll.LogT) poll.Result {
		if n := len(lb.auditTrail()); n > 0 {
			return poll.Success()
		}
		return poll.Continue("no port writes yet")
	}, poll.WithTimeout(2*time.Second), poll.WithDelay(time.Millisecond))
}
