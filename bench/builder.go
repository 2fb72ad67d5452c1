package bench

import (
	"github.com/rs/xid"
	"github.com/sarchlab/shiba/monitoring"
	"github.com/sarchlab/shiba/recording"
	"github.com/sarchlab/shiba/tb"
)

// Builder can be used to build a bench.
type Builder struct {
	sim       tb.Simulator
	mainClock string
	resetPort string
	names     tb.NameMap

	recordingOn    bool
	outputFileName string

	monitorOn   bool
	monitorPort int
}

// MakeBuilder creates a new builder with recording on and monitoring off.
func MakeBuilder() Builder {
	return Builder{
		mainClock:   "clock",
		resetPort:   "reset",
		recordingOn: true,
	}
}

// WithSimulator sets the circuit evaluator to drive.
func (b Builder) WithSimulator(sim tb.Simulator) Builder {
	b.sim = sim
	return b
}

// WithMainClock sets the main clock signal.
func (b Builder) WithMainClock(clock string) Builder {
	b.mainClock = clock
	return b
}

// WithResetPort sets the reset line asserted for one cycle at run start.
func (b Builder) WithResetPort(port string) Builder {
	b.resetPort = port
	return b
}

// WithNameMap sets the logical-signal-to-port mapping.
func (b Builder) WithNameMap(names tb.NameMap) Builder {
	b.names = names
	return b
}

// WithoutRecording disables the run trace database.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithOutputFileName sets the custom output file name for the recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithMonitoring enables the monitoring server.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.sim == nil {
		panic("a bench requires a simulator")
	}

	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordingOn && b.outputFileName != "" {
		panic("output file name cannot be set when recording is disabled")
	}
}

// Build builds the bench.
func (b Builder) Build() *Bench {
	b.parametersMustBeValid()

	bench := &Bench{
		id:       xid.New().String(),
		reporter: tb.NewCollectingReporter(),
	}

	bench.scheduler = tb.NewScheduler(b.sim).
		WithMainClock(b.mainClock).
		WithResetPort(b.resetPort).
		WithNameMap(b.names).
		WithReporter(bench.reporter)

	if b.recordingOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "shiba_run_" + bench.id
		}

		bench.recorder = recording.NewRecorder(outputPath)
		bench.scheduler.WithReporter(
			recording.NewReporter(bench.recorder, bench.reporter))
		bench.scheduler.AcceptHook(
			recording.NewTimestepTracer(bench.recorder))
	}

	if b.monitorOn {
		bench.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			bench.monitor.WithPortNumber(b.monitorPort)
		}
		bench.monitor.RegisterScheduler(bench.scheduler)
		bench.monitor.StartServer()
	}

	return bench
}
