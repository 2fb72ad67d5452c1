package recording

import (
	"github.com/sarchlab/shiba/tb"
)

// A TimestepEntry is one committed timestep of a run.
type TimestepEntry struct {
	Timestep    uint64
	LiveThreads int
}

// A FailureEntry is one non-fatal failure of a run.
type FailureEntry struct {
	Timestep uint64
	Kind     string
	Signal   string
	Thread   string
	Detail   string
}

// A TimestepTracer records every committed timestep of a run into a
// Recorder. Attach it to a scheduler with AcceptHook.
type TimestepTracer struct {
	recorder Recorder
}

// NewTimestepTracer creates a TimestepTracer writing into the recorder.
func NewTimestepTracer(recorder Recorder) *TimestepTracer {
	recorder.CreateTable("timesteps", TimestepEntry{})

	return &TimestepTracer{recorder: recorder}
}

// Func records one row per committed timestep.
func (t *TimestepTracer) Func(ctx tb.HookCtx) {
	if ctx.Pos != tb.HookPosTimestepCommit {
		return
	}

	entry := TimestepEntry{
		Timestep: ctx.Item.(uint64),
	}

	if sched, ok := ctx.Domain.(*tb.Scheduler); ok {
		status := sched.Status()
		for _, th := range status.Threads {
			if !th.Done {
				entry.LiveThreads++
			}
		}
	}

	t.recorder.InsertData("timesteps", entry)
}

// A Reporter records every failure of a run into a Recorder, optionally
// forwarding to an inner tb.FailureReporter.
type Reporter struct {
	recorder Recorder
	inner    tb.FailureReporter
}

// NewReporter creates a recording Reporter. The inner reporter may be nil.
func NewReporter(recorder Recorder, inner tb.FailureReporter) *Reporter {
	recorder.CreateTable("failures", FailureEntry{})

	return &Reporter{recorder: recorder, inner: inner}
}

// Report records one failure row and forwards the failure.
func (r *Reporter) Report(failure error) {
	entry := FailureEntry{Detail: failure.Error()}

	switch f := failure.(type) {
	case *tb.ConflictError:
		entry.Kind = "conflict"
		entry.Timestep = f.Timestep
		entry.Signal = f.Signal
		entry.Thread = f.Second
	case *tb.AssertionMismatch:
		entry.Kind = "mismatch"
		entry.Timestep = f.Timestep
		entry.Signal = f.Signal
		entry.Thread = f.Thread
	case *tb.StaleReadViolation:
		entry.Kind = "stale_read"
		entry.Timestep = f.Timestep
		entry.Signal = f.Signal
		entry.Thread = f.Reader
	default:
		entry.Kind = "other"
	}

	r.recorder.InsertData("failures", entry)

	if r.inner != nil {
		r.inner.Report(failure)
	}
}
