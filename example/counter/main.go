// This example drives an enabled counter with two concurrent test threads:
// one provides stimulus on every main-clock edge while the other observes
// the count on a divided clock.
package main

import (
	"fmt"
	"os"

	"github.com/sarchlab/shiba/bench"
	"github.com/sarchlab/shiba/hdlsim"
	"github.com/sarchlab/shiba/tb"
)

func buildCounter() *hdlsim.Evaluator {
	return hdlsim.New().
		AddPort("reset", 0).
		AddPort("enable", 0).
		AddPort("count", 0).
		AddClockDivider("clk_div", 2).
		OnCycle(func(e *hdlsim.Evaluator) {
			if e.Peek("reset") != 0 {
				e.Poke("count", 0)
				return
			}
			if e.Peek("enable") != 0 {
				e.Poke("count", e.Peek("count")+1)
			}
		})
}

func main() {
	b := bench.MakeBuilder().
		WithSimulator(buildCounter()).
		WithOutputFileName("counter_run").
		Build()
	defer b.Terminate()

	err := b.Run(func(c *tb.Circuit) {
		c.Fork("driver", func(c *tb.Circuit) {
			c.Poke("enable", 1)
			c.Step(8)
		})

		c.Fork("watcher", func(c *tb.Circuit) {
			for i := 0; i < 4; i++ {
				c.StepOn("clk_div", 1)
				fmt.Printf("timestep %d: count = %d\n",
					c.Timestep(), c.Peek("count"))
			}
		})

		c.Step(8)
		c.Expect("count", 8)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}

	for _, f := range b.Failures() {
		fmt.Fprintf(os.Stderr, "failure: %v\n", f)
	}
}
