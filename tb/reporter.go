package tb

import "sync"

// A FailureReporter collects the non-fatal failures of a run: poke
// conflicts, expectation mismatches, and stale-read violations. A failure
// never stops the run; the reporter is drained after Run returns.
type FailureReporter interface {
	Report(failure error)
}

// A CollectingReporter is the default FailureReporter. It accumulates
// failures in memory.
type CollectingReporter struct {
	lock     sync.Mutex
	failures []error
}

// NewCollectingReporter creates a CollectingReporter.
func NewCollectingReporter() *CollectingReporter {
	return &CollectingReporter{}
}

// Report records one failure.
func (r *CollectingReporter) Report(failure error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.failures = append(r.failures, failure)
}

// Failures returns all the failures recorded so far.
func (r *CollectingReporter) Failures() []error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return append([]error(nil), r.failures...)
}
