// Package hdlsim provides a small in-memory circuit evaluator that
// satisfies the tb.Simulator contract. It models a circuit as a set of
// named ports, derived clock dividers, and per-cycle transfer functions. It
// is the reference engine used by the examples and by package tests; any
// cycle-accurate evaluator exposing poke/peek/step can replace it.
package hdlsim

import (
	"fmt"
	"log"
	"os"
)

// A TransferFunc updates circuit state once per cycle. It runs after the
// cycle counter and the derived clocks have advanced.
type TransferFunc func(e *Evaluator)

// An Evaluator is a cycle-accurate evaluator over named ports. It has no
// concept of concurrency: Poke, Peek, and Step must not be called
// concurrently with each other.
type Evaluator struct {
	ports    map[string]uint64
	dividers map[string]int
	rules    []TransferFunc
	cycle    uint64
}

// New creates an empty Evaluator.
func New() *Evaluator {
	return &Evaluator{
		ports:    make(map[string]uint64),
		dividers: make(map[string]int),
	}
}

// AddPort declares a port with an initial value.
func (e *Evaluator) AddPort(name string, initial uint64) *Evaluator {
	e.ports[name] = initial
	return e
}

// AddClockDivider declares a port carrying a divided clock that rises once
// every ratio cycles of the main clock. The ratio must be at least 2,
// otherwise the divided clock never returns to low between edges.
func (e *Evaluator) AddClockDivider(name string, ratio int) *Evaluator {
	if ratio < 2 {
		log.Panicf("clock divider %s must have a ratio of at least 2", name)
	}

	e.dividers[name] = ratio
	e.ports[name] = 1 // cycle 0 is a high phase
	return e
}

// OnCycle registers a transfer function evaluated once per cycle, in
// registration order.
func (e *Evaluator) OnCycle(f TransferFunc) *Evaluator {
	e.rules = append(e.rules, f)
	return e
}

// Poke sets the value of a port.
func (e *Evaluator) Poke(port string, value uint64) {
	e.mustHavePort(port)
	e.ports[port] = value
}

// Peek returns the current value of a port.
func (e *Evaluator) Peek(port string) uint64 {
	e.mustHavePort(port)
	return e.ports[port]
}

// Step advances the evaluation by whole cycles.
func (e *Evaluator) Step(cycles int) {
	for i := 0; i < cycles; i++ {
		e.cycle++
		e.updateDividers()

		for _, rule := range e.rules {
			rule(e)
		}
	}
}

// Cycle returns the number of cycles evaluated so far.
func (e *Evaluator) Cycle() uint64 {
	return e.cycle
}

func (e *Evaluator) updateDividers() {
	for name, ratio := range e.dividers {
		if e.cycle%uint64(ratio) == 0 {
			e.ports[name] = 1
		} else {
			e.ports[name] = 0
		}
	}
}

func (e *Evaluator) mustHavePort(port string) {
	if _, ok := e.ports[port]; ok {
		return
	}

	errMsg := fmt.Sprintf("port %s is not declared.\n", port)
	errMsg += "Declared ports include:\n"
	for n := range e.ports {
		errMsg += fmt.Sprintf("\t%s\n", n)
	}
	fmt.Fprint(os.Stderr, errMsg)

	panic("port not found")
}
