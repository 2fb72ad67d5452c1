package tb

// A Thread is a cooperatively-scheduled unit of test stimulus and
// observation code. At most one thread's code executes at any instant; all
// others are parked on their gate waiting for the scheduler to resume them.
type Thread struct {
	id   string
	name string

	// gate is the single-slot resume handle. The scheduler releases exactly
	// one thread at a time by sending on its gate.
	gate chan struct{}

	// window is the clock whose edge last resumed this thread. It scopes
	// the thread's pokes and peeks to that clock's validation window.
	window string

	done      bool
	cancelled bool
}

// ID returns the unique identifier of the thread.
func (t *Thread) ID() string {
	return t.id
}

// Name returns the name of the thread.
func (t *Thread) Name() string {
	return t.name
}

// Done returns true once the thread's body has returned or the thread has
// been torn down.
func (t *Thread) Done() bool {
	return t.done
}

func newThread(name string) *Thread {
	return &Thread{
		id:   GetIDGenerator().Generate(),
		name: name,
		gate: make(chan struct{}),
	}
}

// threadEventKind tells the scheduler why a thread handed control back.
type threadEventKind int

const (
	// threadBlocked means the thread called a clock wait and must be
	// registered in the blocked set.
	threadBlocked threadEventKind = iota

	// threadFinished means the thread's body returned, panicked, or was
	// unwound by cancellation.
	threadFinished
)

// A threadEvent is the message a thread sends the scheduler when it reaches
// a suspension point. All blocked-set mutation happens on the scheduler
// goroutine in response to these events, which keeps the shared tables
// single-writer.
type threadEvent struct {
	thread *Thread
	kind   threadEventKind

	// clock is the clock the thread wants to wait on (threadBlocked only).
	clock string

	// err carries a captured panic out of the thread (threadFinished only).
	err error
}
