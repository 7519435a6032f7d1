package main

import (
	"fmt"
	"sync"

	"dscheirer.com/ledsequencer/channel"
)

// keep the first writes for inspection, count the rest
const auditLimit = 1000

// logBoard keeps the ports in memory and logs writes, for headless runs
// and tests
type logBoard struct {
	mu         sync.Mutex
	regs       map[string]*channel.Register
	portMap    map[string]channel.Port
	audit      []string
	writes     int
	disableLog bool
	logger     flogger
}

type logPort struct {
	name string
	reg  *channel.Register
	lb   *logBoard
}

func (lp logPort) Set(mask uint8) {
	lp.lb.mu.Lock()
	defer lp.lb.mu.Unlock()
	lp.reg.Set(mask)
	lp.lb.record(lp.name, lp.reg.Value())
}

func (lp logPort) Clear(mask uint8) {
	lp.lb.mu.Lock()
	defer lp.lb.mu.Unlock()
	lp.reg.Clear(mask)
	lp.lb.record(lp.name, lp.reg.Value())
}

func (lb *logBoard) init(rt runtimeConfig) error {
	lb.regs = make(map[string]*channel.Register)
	lb.portMap = make(map[string]channel.Port)
	lb.audit = make([]string, 0)
	lb.writes = 0
	// every PWM edge is a write, only log them when asked
	lb.disableLog = !rt.settings.GetBool(sDebug)
	lb.logger = &ThreadLogger{name: "LEDs"}

	for _, name := range channel.DefaultLayout.PortNames() {
		reg := &channel.Register{}
		lb.regs[name] = reg
		lb.portMap[name] = logPort{name: name, reg: reg, lb: lb}
	}
	return nil
}

// record is called with mu held
func (lb *logBoard) record(port string, value uint8) {
	lb.writes++
	msg := fmt.Sprintf("Port %s = 0x%02x", port, value)
	if len(lb.audit) < auditLimit {
		lb.audit = append(lb.audit, msg)
	}
	if !lb.disableLog {
		lb.logger.Printf("%s", msg)
	}
}

func (lb *logBoard) value(port string) uint8 {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.regs[port].Value()
}

func (lb *logBoard) layout() channel.Layout {
	return channel.DefaultLayout
}

func (lb *logBoard) ports() map[string]channel.Port {
	return lb.portMap
}

// auditTrail is a copy of the recorded writes
func (lb *logBoard) auditTrail() []string {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return append([]string(nil), lb.audit...)
}

func (lb *logBoard) close() {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.logger.Printf("%d port writes", lb.writes)
}
