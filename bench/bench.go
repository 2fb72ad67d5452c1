// Package bench composes a scheduler, a trace recorder, a failure
// collector, and an optional monitor into one ready-to-run testbench.
package bench

import (
	"github.com/sarchlab/shiba/monitoring"
	"github.com/sarchlab/shiba/recording"
	"github.com/sarchlab/shiba/tb"
)

// A Bench provides the services required to run one test against a
// simulated circuit.
type Bench struct {
	id string

	scheduler *tb.Scheduler
	reporter  *tb.CollectingReporter
	recorder  recording.Recorder
	monitor   *monitoring.Monitor
}

// ID returns the unique identifier of the bench.
func (b *Bench) ID() string {
	return b.id
}

// Scheduler returns the scheduler driving the bench.
func (b *Bench) Scheduler() *tb.Scheduler {
	return b.scheduler
}

// Monitor returns the monitor of the bench. It is nil when monitoring is
// disabled.
func (b *Bench) Monitor() *monitoring.Monitor {
	return b.monitor
}

// Run executes one full test body against the circuit.
func (b *Bench) Run(body func(*tb.Circuit)) error {
	return b.scheduler.Run(body)
}

// Failures returns the non-fatal failures collected during the run.
func (b *Bench) Failures() []error {
	return b.reporter.Failures()
}

// Terminate flushes and closes the resources held by the bench.
func (b *Bench) Terminate() {
	if b.recorder != nil {
		b.recorder.Close()
	}
}
