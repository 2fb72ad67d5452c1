package tb

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
)

// State is the run-loop state of a Scheduler.
type State int

// The states a Scheduler moves through. One Idle-to-Idle round trip is one
// timestep.
const (
	StateIdle State = iota
	StateResolvingEdges
	StateRunningThreads
	StateCommitting
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateResolvingEdges:
		return "ResolvingEdges"
	case StateRunningThreads:
		return "RunningThreads"
	case StateCommitting:
		return "Committing"
	case StateFinished:
		return "Finished"
	}
	return "Unknown"
}

// A Scheduler advances a clocked simulation one timestep at a time. Each
// timestep it resolves which clocks fired, resumes the threads blocked on
// those clocks one at a time until each re-blocks or finishes, and then
// commits the timestep by stepping the simulator a single cycle.
//
// The blocked-thread table, the clock state table, and the per-timestep
// poke/peek log are mutated only on the scheduler goroutine. Running
// threads communicate intent through narrow synchronous calls that hand
// control back to the scheduler.
type Scheduler struct {
	HookableBase

	sim      Simulator
	names    NameMap
	reporter FailureReporter

	mainClock string
	resetPort string
	idleLimit int

	tracker *clockTracker
	checker *conflictChecker

	blocked  map[string][]*Thread
	threads  []*Thread
	main     *Thread
	runQueue []*Thread
	yield    chan threadEvent
	errs     []error

	timestep atomic.Uint64

	runLock      sync.Mutex
	statusLock   sync.Mutex
	state        State
	threadStatus []ThreadStatus
}

// NewScheduler creates a Scheduler driving the given simulator. The main
// clock defaults to port "clock" and the reset line to port "reset".
func NewScheduler(sim Simulator) *Scheduler {
	return &Scheduler{
		sim:       sim,
		reporter:  NewCollectingReporter(),
		mainClock: "clock",
		resetPort: "reset",
		idleLimit: 1000,
	}
}

// WithMainClock sets the signal that fires once per timestep by
// construction.
func (s *Scheduler) WithMainClock(clock string) *Scheduler {
	s.mainClock = clock
	return s
}

// WithResetPort sets the reset line asserted for exactly one committed
// cycle before user code runs. An empty name disables the reset sequence.
func (s *Scheduler) WithResetPort(port string) *Scheduler {
	s.resetPort = port
	return s
}

// WithIdleLimit sets how many consecutive timesteps the scheduler commits
// with no runnable thread, waiting for a dependent clock to rise, before it
// declares the run deadlocked. The default is 1000.
func (s *Scheduler) WithIdleLimit(timesteps int) *Scheduler {
	s.idleLimit = timesteps
	return s
}

// WithNameMap sets the logical-signal-to-port mapping.
func (s *Scheduler) WithNameMap(names NameMap) *Scheduler {
	s.names = names
	return s
}

// WithReporter sets the collector that receives conflicts, expectation
// mismatches, and stale-read violations.
func (s *Scheduler) WithReporter(r FailureReporter) *Scheduler {
	s.reporter = r
	return s
}

// Reporter returns the failure collector of the scheduler.
func (s *Scheduler) Reporter() FailureReporter {
	return s.reporter
}

// Timestep returns the number of committed timesteps so far.
func (s *Scheduler) Timestep() uint64 {
	return s.timestep.Load()
}

// Run executes one full test. It asserts the reset line for exactly one
// committed cycle, spawns the body as the main thread, and loops until the
// main thread completes. Every thread still alive at that point is torn
// down unconditionally. Panics captured from thread bodies are returned
// joined; non-fatal failures go to the Reporter instead.
func (s *Scheduler) Run(body func(*Circuit)) error {
	s.runLock.Lock()
	defer s.runLock.Unlock()

	s.tracker = newClockTracker(s.sim, s.names)
	s.checker = newConflictChecker(s.reporter)
	s.blocked = make(map[string][]*Thread)
	s.yield = make(chan threadEvent)
	s.threads = nil
	s.errs = nil
	s.timestep.Store(0)

	if s.resetPort != "" {
		port := s.names.Resolve(s.resetPort)
		s.sim.Poke(port, 1)
		s.sim.Step(1)
		s.sim.Poke(port, 0)
	}

	s.main = s.spawn("main", body)
	s.main.window = s.mainClock
	s.blocked[s.mainClock] = append(s.blocked[s.mainClock], s.main)

	err := s.loop()
	s.teardown()

	if err != nil {
		return errors.Join(append([]error{err}, s.errs...)...)
	}
	return errors.Join(s.errs...)
}

func (s *Scheduler) loop() error {
	idle := 0
	for !s.main.done {
		s.setState(StateResolvingEdges)
		s.runQueue = s.collectUnblockable()
		if len(s.runQueue) == 0 {
			// Every live thread waits on a dependent clock that has not
			// risen yet. Keep the main clock ticking so a slow divider can
			// reach its next edge, up to the idle limit.
			idle++
			if idle > s.idleLimit {
				return &DeadlockError{
					Timestep: s.timestep.Load(),
					Parked:   s.parkedNames(),
				}
			}

			s.commit()
			s.setState(StateIdle)
			continue
		}
		idle = 0

		s.setState(StateRunningThreads)
		for i := 0; i < len(s.runQueue); i++ {
			// Forked threads join the tail of the queue and run within the
			// same timestep.
			s.resume(s.runQueue[i])
		}
		s.runQueue = nil

		if s.main.done {
			// The final partial timestep, in which the main thread ran to
			// completion without blocking, is not committed.
			break
		}

		s.commit()
		s.setState(StateIdle)
	}

	return nil
}

// collectUnblockable gathers the unblock set of the timestep. The main
// clock fires once per timestep by definition; every other tracked clock is
// sampled, and only if a thread waits on it.
func (s *Scheduler) collectUnblockable() []*Thread {
	set := s.takeBlocked(s.mainClock)

	for _, clock := range s.tracker.tracked() {
		if len(s.blocked[clock]) == 0 {
			continue
		}

		if s.tracker.rose(clock) {
			s.checker.NewTimestep(clock)
			set = append(set, s.takeBlocked(clock)...)
		}
	}

	return set
}

func (s *Scheduler) takeBlocked(clock string) []*Thread {
	ts := s.blocked[clock]
	delete(s.blocked, clock)
	return ts
}

// resume releases one thread through its gate and waits until it either
// re-blocks or finishes. This strict handoff is what makes resume order,
// and therefore the whole run, deterministic.
func (s *Scheduler) resume(t *Thread) {
	if t.done {
		return
	}

	s.InvokeHook(HookCtx{Domain: s, Pos: HookPosThreadResume, Item: t})

	t.gate <- struct{}{}
	ev := <-s.yield

	switch ev.kind {
	case threadBlocked:
		s.park(ev.thread, ev.clock)
	case threadFinished:
		s.finish(ev)
	}
}

func (s *Scheduler) park(t *Thread, clock string) {
	t.window = clock
	if clock != s.mainClock {
		s.tracker.track(clock)
	}
	s.blocked[clock] = append(s.blocked[clock], t)
}

func (s *Scheduler) finish(ev threadEvent) {
	ev.thread.done = true
	s.InvokeHook(HookCtx{Domain: s, Pos: HookPosThreadComplete, Item: ev.thread})

	if ev.err != nil {
		s.errs = append(s.errs, ev.err)
	}
}

func (s *Scheduler) commit() {
	s.setState(StateCommitting)

	s.checker.FinishTimestep()
	s.sim.Step(1)
	committed := s.timestep.Add(1)

	s.InvokeHook(HookCtx{
		Domain: s,
		Pos:    HookPosTimestepCommit,
		Item:   committed,
	})

	s.tracker.drop(func(clock string) bool {
		return len(s.blocked[clock]) > 0
	})

	s.updateStatus()
}

// teardown cancels every thread still alive. This is a hard stop: the
// test's intended termination point has been reached and anything still
// blocked is stimulus that will never be needed again.
func (s *Scheduler) teardown() {
	s.setState(StateFinished)

	for _, t := range s.threads {
		if t.done {
			continue
		}

		t.cancelled = true
		t.gate <- struct{}{}

		ev := <-s.yield
		if ev.kind != threadFinished || ev.thread != t {
			panicInvariant("cancelled thread yielded instead of finishing")
		}

		t.done = true
		if ev.err != nil {
			s.errs = append(s.errs, ev.err)
		}
	}

	s.blocked = make(map[string][]*Thread)
	s.updateStatus()
}

// spawn starts the goroutine backing a thread. The goroutine parks on the
// gate immediately; it runs no user code until the scheduler resumes it.
func (s *Scheduler) spawn(name string, body func(*Circuit)) *Thread {
	t := newThread(name)
	s.threads = append(s.threads, t)

	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(threadCancelled); !ok {
					err = &ThreadPanicError{Thread: t.name, Value: r}
				}
			}
			s.yield <- threadEvent{thread: t, kind: threadFinished, err: err}
		}()

		<-t.gate
		if t.cancelled {
			panic(threadCancelled{})
		}

		body(&Circuit{sched: s, thread: t})
	}()

	return t
}

// fork registers a new thread spawned by a running thread. Only one thread
// runs at a time and the scheduler goroutine is parked waiting for a yield,
// so appending to the run queue here is serialized by construction.
func (s *Scheduler) fork(parent *Thread, name string, body func(*Circuit)) *Thread {
	t := s.spawn(name, body)
	t.window = parent.window
	s.runQueue = append(s.runQueue, t)
	return t
}

// blockUntil suspends the calling thread until the named clock's next
// rising edge. It is called from thread context; the scheduler performs the
// blocked-set registration on its own goroutine.
func (s *Scheduler) blockUntil(t *Thread, clock string) {
	s.yield <- threadEvent{thread: t, kind: threadBlocked, clock: clock}
	<-t.gate

	if t.cancelled {
		panic(threadCancelled{})
	}
}

func (s *Scheduler) poke(t *Thread, signal string, value uint64, priority int) {
	if s.checker.DoPoke(t.window, signal, value, priority, t) {
		s.sim.Poke(s.names.Resolve(signal), value)
	}
}

func (s *Scheduler) peek(t *Thread, signal string) uint64 {
	s.checker.DoPeek(t.window, signal, t)
	return s.sim.Peek(s.names.Resolve(signal))
}

func (s *Scheduler) parkedNames() []string {
	var names []string
	for _, t := range s.threads {
		if !t.done {
			names = append(names, t.name)
		}
	}
	return names
}

// A ThreadStatus is a point-in-time view of one thread, for monitoring.
type ThreadStatus struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	WaitingOn string `json:"waiting_on"`
	Done      bool   `json:"done"`
}

// A Status is a point-in-time view of a run, for monitoring. It is updated
// once per committed timestep.
type Status struct {
	State    string         `json:"state"`
	Timestep uint64         `json:"timestep"`
	Threads  []ThreadStatus `json:"threads"`
}

// Status returns the most recently published run status. It is safe to
// call from other goroutines while the run is in progress.
func (s *Scheduler) Status() Status {
	s.statusLock.Lock()
	defer s.statusLock.Unlock()

	return Status{
		State:    s.state.String(),
		Timestep: s.timestep.Load(),
		Threads:  append([]ThreadStatus(nil), s.threadStatus...),
	}
}

func (s *Scheduler) setState(state State) {
	s.statusLock.Lock()
	s.state = state
	s.statusLock.Unlock()
}

func (s *Scheduler) updateStatus() {
	snapshot := make([]ThreadStatus, 0, len(s.threads))
	for _, t := range s.threads {
		snapshot = append(snapshot, ThreadStatus{
			ID:        t.id,
			Name:      t.name,
			WaitingOn: t.window,
			Done:      t.done,
		})
	}

	s.statusLock.Lock()
	s.threadStatus = snapshot
	s.statusLock.Unlock()
}

func panicInvariant(msg string) {
	log.Panic(msg)
}
