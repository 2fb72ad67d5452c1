package tb

// A Simulator is a cycle-accurate circuit evaluator. It has no concept of
// concurrency; the scheduler guarantees that Step is only ever called from
// the commit phase of the run loop.
type Simulator interface {
	// Poke sets the value of an input port.
	Poke(port string, value uint64)

	// Peek returns the current value of a port.
	Peek(port string) uint64

	// Step advances the simulation by the given number of whole cycles,
	// toggling the main clock once per cycle.
	Step(cycles int)
}

// A NameMap maps logical signal names used by test code to the port
// identifiers of the underlying simulator. It is consulted, never mutated.
type NameMap map[string]string

// Resolve returns the port identifier for a logical signal name. Signals
// without an entry map to themselves.
func (m NameMap) Resolve(signal string) string {
	if m == nil {
		return signal
	}

	if port, ok := m[signal]; ok {
		return port
	}

	return signal
}
