package tb

import "fmt"

// A ConflictError is raised when two threads poke the same signal in the
// same timestep at equal priority. The poke is rejected and the run
// continues.
type ConflictError struct {
	Signal   string
	Timestep uint64
	Priority int
	First    string
	Second   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"conflicting pokes to %s at timestep %d: "+
			"threads %s and %s both poked at priority %d",
		e.Signal, e.Timestep, e.First, e.Second, e.Priority)
}

// An AssertionMismatch records an Expect call that observed a value
// differing from the expectation. It is non-fatal.
type AssertionMismatch struct {
	Signal   string
	Timestep uint64
	Thread   string
	Want     uint64
	Got      uint64
}

func (e *AssertionMismatch) Error() string {
	return fmt.Sprintf(
		"expectation failed on %s at timestep %d in thread %s: want %d, got %d",
		e.Signal, e.Timestep, e.Thread, e.Want, e.Got)
}

// A StaleReadViolation is raised at commit time when a peek observed a
// signal before a sibling thread issued the poke that ultimately decided
// the signal's value for the timestep.
type StaleReadViolation struct {
	Signal   string
	Timestep uint64
	Reader   string
	Writer   string
}

func (e *StaleReadViolation) Error() string {
	return fmt.Sprintf(
		"stale read of %s at timestep %d: "+
			"thread %s peeked before the deciding poke from thread %s",
		e.Signal, e.Timestep, e.Reader, e.Writer)
}

// A DeadlockError is returned when the idle limit's worth of consecutive
// timesteps commit without a single runnable thread while the main thread
// is still alive. The waited clocks are never going to rise.
type DeadlockError struct {
	Timestep uint64
	Parked   []string
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf(
		"deadlock at timestep %d: no thread is unblockable, parked threads: %v",
		e.Timestep, e.Parked)
}

// A ThreadPanicError wraps a panic that escaped a thread body. Panics are
// captured per thread, queued, and returned from Run after teardown.
type ThreadPanicError struct {
	Thread string
	Value  any
}

func (e *ThreadPanicError) Error() string {
	return fmt.Sprintf("thread %s panicked: %v", e.Thread, e.Value)
}

// threadCancelled is the sentinel panic value used to unwind a thread at
// teardown. It never escapes the thread wrapper.
type threadCancelled struct{}
