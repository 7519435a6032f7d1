package channel

// Register is an 8-bit output port held in memory, like the data register of
// a microcontroller port. It keeps the number of writes so callers can tell
// a held level from a rewritten one.
type Register struct {
	value  uint8
	writes int
}

func (r *Register) Set(mask uint8) {
	r.value |= mask
	r.writes++
}

func (r *Register) Clear(mask uint8) {
	r.value &^= mask
	r.writes++
}

// Value is the current port contents.
func (r *Register) Value() uint8 {
	return r.value
}

// Writes is the number of Set and Clear calls so far.
func (r *Register) Writes() int {
	return r.writes
}

// NewRegisters returns one Register per port name in the layout, as both a
// port map for New and a typed map for inspection.
func NewRegisters(l Layout) (map[string]Port, map[string]*Register) {
	ports := map[string]Port{}
	regs := map[string]*Register{}
	for _, name := range l.PortNames() {
		r := &Register{}
		ports[name] = r
		regs[name] = r
	}
	return ports, regs
}
