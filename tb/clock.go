package tb

// clockState holds the last observed value and the rising-edge count of one
// tracked dependent clock.
type clockState struct {
	last  bool
	edges uint64
}

// A clockTracker samples the dependent clocks that test threads wait on and
// reports rising edges. The main clock is never tracked here: it is driven
// by the scheduler's own Step(1) call and rises exactly once per timestep
// by construction.
//
// Dependent clocks are tracked lazily, from the first blockUntil that names
// them, and dropped once no thread waits on them. The tracked-clock count
// is therefore bounded by the clocks the test actually uses, not by the
// clocks the circuit contains.
type clockTracker struct {
	sim   Simulator
	names NameMap

	clocks map[string]*clockState
	order  []string
}

func newClockTracker(sim Simulator, names NameMap) *clockTracker {
	return &clockTracker{
		sim:    sim,
		names:  names,
		clocks: make(map[string]*clockState),
	}
}

// observe reads the simulator's current boolean value of a clock signal.
func (ct *clockTracker) observe(clock string) bool {
	return ct.sim.Peek(ct.names.Resolve(clock)) != 0
}

// track starts following a clock if it is not followed yet. The current
// value is recorded as the baseline so a clock that is already high does
// not count as rising on the next sample.
func (ct *clockTracker) track(clock string) {
	if _, ok := ct.clocks[clock]; ok {
		return
	}

	ct.clocks[clock] = &clockState{last: ct.observe(clock)}
	ct.order = append(ct.order, clock)
}

// tracked returns the tracked clocks in the order tracking started. The
// order is stable so edge resolution visits clocks deterministically.
func (ct *clockTracker) tracked() []string {
	return ct.order
}

// rose samples a tracked clock and reports whether it transitioned from
// low to high since the previous sample. On a rising edge the clock's edge
// counter advances.
func (ct *clockTracker) rose(clock string) bool {
	state, ok := ct.clocks[clock]
	if !ok {
		panicInvariant("sampling a clock that is not tracked: " + clock)
	}

	now := ct.observe(clock)
	r := !state.last && now
	state.last = now

	if r {
		state.edges++
	}

	return r
}

// edgeCount returns the number of rising edges seen on a tracked clock.
func (ct *clockTracker) edgeCount(clock string) uint64 {
	state, ok := ct.clocks[clock]
	if !ok {
		return 0
	}
	return state.edges
}

// drop forgets clocks that no longer have any waiting thread. Called once
// per committed timestep.
func (ct *clockTracker) drop(inUse func(clock string) bool) {
	kept := ct.order[:0]
	for _, c := range ct.order {
		if inUse(c) {
			kept = append(kept, c)
			continue
		}
		delete(ct.clocks, c)
	}
	ct.order = kept
}
