package tb

// A pokeRecord is the currently dominant poke to one signal within one
// validation window.
type pokeRecord struct {
	value    uint64
	priority int
	seq      int
	thread   *Thread
}

// A peekRecord remembers that a thread observed a signal, and when.
type peekRecord struct {
	signal string
	seq    int
	thread *Thread
}

// A window accumulates the pokes and peeks of the threads gated by one
// clock. Threads gated by different clocks are not concurrent with respect
// to each other, even within the same timestep, so each clock gets its own
// window.
type window struct {
	pokes map[string]*pokeRecord
	peeks []peekRecord
}

func newWindow() *window {
	return &window{pokes: make(map[string]*pokeRecord)}
}

// A conflictChecker validates the pokes and peeks of all threads within the
// current timestep. Priority arbitrates between same-signal writers: lower
// numeric priority wins, equal priority from two distinct threads is a
// conflict. All records are scoped to the current timestep and cleared at
// commit.
//
// The checker is only ever called from the single currently-running thread
// or from the scheduler goroutine, so it needs no locking.
type conflictChecker struct {
	reporter FailureReporter

	windows  map[string]*window
	seq      int
	timestep uint64
}

func newConflictChecker(reporter FailureReporter) *conflictChecker {
	return &conflictChecker{
		reporter: reporter,
		windows:  make(map[string]*window),
	}
}

func (c *conflictChecker) windowFor(clock string) *window {
	w, ok := c.windows[clock]
	if !ok {
		w = newWindow()
		c.windows[clock] = w
	}
	return w
}

// DoPoke records a poke attempt and decides whether the caller may forward
// it to the simulator. A false return means the poke lost arbitration and
// must not be applied.
func (c *conflictChecker) DoPoke(
	clock, signal string,
	value uint64,
	priority int,
	t *Thread,
) bool {
	c.seq++
	w := c.windowFor(clock)

	prev, ok := w.pokes[signal]
	if !ok || prev.thread == t {
		// First poke to the signal this timestep, or the same thread
		// revising its own poke.
		w.pokes[signal] = &pokeRecord{
			value:    value,
			priority: priority,
			seq:      c.seq,
			thread:   t,
		}
		return true
	}

	if priority < prev.priority {
		w.pokes[signal] = &pokeRecord{
			value:    value,
			priority: priority,
			seq:      c.seq,
			thread:   t,
		}
		return true
	}

	if priority > prev.priority {
		// Dominated by an earlier poke. The earlier value stays applied.
		return false
	}

	c.reporter.Report(&ConflictError{
		Signal:   signal,
		Timestep: c.timestep,
		Priority: priority,
		First:    prev.thread.name,
		Second:   t.name,
	})

	return false
}

// DoPeek records that a thread observed a signal this timestep. The record
// is validated at commit time against later pokes to the same signal.
func (c *conflictChecker) DoPeek(clock, signal string, t *Thread) {
	c.seq++
	w := c.windowFor(clock)
	w.peeks = append(w.peeks, peekRecord{signal: signal, seq: c.seq, thread: t})
}

// NewTimestep opens a fresh validation window for the threads gated by one
// clock. Called when that clock's edge fires.
func (c *conflictChecker) NewTimestep(clock string) {
	c.windows[clock] = newWindow()
}

// FinishTimestep validates the whole timestep and clears the log. A peek
// sequenced before the poke that ultimately decided its signal's value,
// issued by a different thread in the same window, observed a value that
// was no longer current when the timestep committed.
func (c *conflictChecker) FinishTimestep() {
	for _, w := range c.windows {
		for _, p := range w.peeks {
			dominant, ok := w.pokes[p.signal]
			if !ok {
				continue
			}

			if dominant.seq > p.seq && dominant.thread != p.thread {
				c.reporter.Report(&StaleReadViolation{
					Signal:   p.signal,
					Timestep: c.timestep,
					Reader:   p.thread.name,
					Writer:   dominant.thread.name,
				})
			}
		}
	}

	c.windows = make(map[string]*window)
	c.timestep++
}
