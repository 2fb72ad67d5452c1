package tb

// A Circuit is the per-thread handle to the simulated circuit. Every test
// thread receives its own Circuit; it carries the thread identity that the
// conflict checker uses to attribute pokes and peeks. A Circuit must not be
// shared across threads.
type Circuit struct {
	sched  *Scheduler
	thread *Thread
}

// Fork spawns a new thread running body. From the scheduler's point of view
// the new thread runs concurrently with the caller: it executes within the
// current timestep, after the caller and any earlier-forked threads have
// re-blocked or finished. Forking never advances the simulator.
func (c *Circuit) Fork(name string, body func(*Circuit)) {
	c.sched.fork(c.thread, name, body)
}

// Poke drives a signal at the default priority 0.
func (c *Circuit) Poke(signal string, value uint64) {
	c.sched.poke(c.thread, signal, value, 0)
}

// PokePriority drives a signal at an explicit priority. When several
// threads poke the same signal in one timestep, the lowest numeric priority
// wins; equal priorities from two threads are a conflict. Priority is how a
// default driver at a high number yields to an override at a low one.
func (c *Circuit) PokePriority(signal string, value uint64, priority int) {
	c.sched.poke(c.thread, signal, value, priority)
}

// Peek returns the current value of a signal.
func (c *Circuit) Peek(signal string) uint64 {
	return c.sched.peek(c.thread, signal)
}

// PeekStale requests a value from before the most recent same-timestep
// poke. The contract of stale reads is undefined; the request fails
// explicitly rather than returning garbage.
func (c *Circuit) PeekStale(signal string) uint64 {
	panic("stale peek of " + signal + ": stale reads are unsupported")
}

// Expect peeks a signal and records a non-fatal AssertionMismatch if the
// observed value differs from want. A mismatch does not stop the run.
func (c *Circuit) Expect(signal string, want uint64) {
	got := c.sched.peek(c.thread, signal)
	if got == want {
		return
	}

	c.sched.reporter.Report(&AssertionMismatch{
		Signal:   signal,
		Timestep: c.sched.timestep.Load(),
		Thread:   c.thread.name,
		Want:     want,
		Got:      got,
	})
}

// Step suspends the calling thread for n rising edges of the main clock.
func (c *Circuit) Step(n int) {
	for i := 0; i < n; i++ {
		c.sched.blockUntil(c.thread, c.sched.mainClock)
	}
}

// StepOn suspends the calling thread for n rising edges of the named
// clock. The clock is tracked from the first wait and dropped once no
// thread waits on it.
func (c *Circuit) StepOn(clock string, n int) {
	for i := 0; i < n; i++ {
		c.sched.blockUntil(c.thread, clock)
	}
}

// Timestep returns the number of committed timesteps so far.
func (c *Circuit) Timestep() uint64 {
	return c.sched.Timestep()
}

// ThreadName returns the name of the calling thread.
func (c *Circuit) ThreadName() string {
	return c.thread.name
}
