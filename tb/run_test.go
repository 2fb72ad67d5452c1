package tb

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/shiba/hdlsim"
)

func newEvaluator() *hdlsim.Evaluator {
	return hdlsim.New().
		AddPort("reset", 0).
		AddPort("sig", 0).
		AddPort("out", 0)
}

var _ = Describe("Scheduler with a circuit evaluator", func() {
	var (
		eval      *hdlsim.Evaluator
		scheduler *Scheduler
		collector *CollectingReporter
	)

	BeforeEach(func() {
		eval = newEvaluator()
		scheduler = NewScheduler(eval)
		collector = scheduler.Reporter().(*CollectingReporter)
	})

	It("should return a poked value to a same-timestep peek", func() {
		err := scheduler.Run(func(c *Circuit) {
			c.Poke("sig", 5)
			Expect(c.Peek("sig")).To(Equal(uint64(5)))
			c.Step(1)
		})

		Expect(err).To(BeNil())
		Expect(collector.Failures()).To(BeEmpty())
	})

	It("should let the lowest-priority poke win within a timestep", func() {
		var observed uint64
		err := scheduler.Run(func(c *Circuit) {
			c.Fork("t1", func(c *Circuit) {
				c.PokePriority("sig", 7, 2)
			})
			c.Fork("t2", func(c *Circuit) {
				c.PokePriority("sig", 9, 1)
			})
			c.Fork("t3", func(c *Circuit) {
				observed = c.Peek("sig")
			})
			c.Step(1)
		})

		Expect(err).To(BeNil())
		Expect(observed).To(Equal(uint64(9)))
		Expect(collector.Failures()).To(BeEmpty())
	})

	It("should reject a dominated poke instead of applying it", func() {
		var observed uint64
		err := scheduler.Run(func(c *Circuit) {
			c.Fork("t1", func(c *Circuit) {
				c.PokePriority("sig", 9, 1)
			})
			c.Fork("t2", func(c *Circuit) {
				c.PokePriority("sig", 7, 2)
			})
			c.Fork("t3", func(c *Circuit) {
				observed = c.Peek("sig")
			})
			c.Step(1)
		})

		Expect(err).To(BeNil())
		Expect(observed).To(Equal(uint64(9)))
	})

	It("should raise a conflict on equal-priority pokes from two threads", func() {
		var observed uint64
		err := scheduler.Run(func(c *Circuit) {
			c.Fork("t1", func(c *Circuit) {
				c.Poke("sig", 1)
			})
			c.Fork("t2", func(c *Circuit) {
				c.Poke("sig", 2)
			})
			c.Fork("t3", func(c *Circuit) {
				observed = c.Peek("sig")
			})
			c.Step(1)
		})

		Expect(err).To(BeNil())
		Expect(observed).To(Equal(uint64(1)))

		failures := collector.Failures()
		Expect(failures).To(HaveLen(1))

		conflict := failures[0].(*ConflictError)
		Expect(conflict.Signal).To(Equal("sig"))
		Expect(conflict.First).To(Equal("t1"))
		Expect(conflict.Second).To(Equal("t2"))
	})

	It("should flag a peek that ran before the deciding poke", func() {
		err := scheduler.Run(func(c *Circuit) {
			c.Fork("reader", func(c *Circuit) {
				c.Peek("sig")
			})
			c.Fork("writer", func(c *Circuit) {
				c.Poke("sig", 4)
			})
			c.Step(1)
		})

		Expect(err).To(BeNil())

		failures := collector.Failures()
		Expect(failures).To(HaveLen(1))

		stale := failures[0].(*StaleReadViolation)
		Expect(stale.Signal).To(Equal("sig"))
		Expect(stale.Reader).To(Equal("reader"))
		Expect(stale.Writer).To(Equal("writer"))
	})

	It("should record an expectation mismatch without stopping the run", func() {
		err := scheduler.Run(func(c *Circuit) {
			c.Expect("out", 3)
			c.Step(1)
			c.Expect("out", 0)
		})

		Expect(err).To(BeNil())

		failures := collector.Failures()
		Expect(failures).To(HaveLen(1))

		mismatch := failures[0].(*AssertionMismatch)
		Expect(mismatch.Signal).To(Equal("out"))
		Expect(mismatch.Want).To(Equal(uint64(3)))
		Expect(mismatch.Got).To(Equal(uint64(0)))
	})

	It("should resume a divided-clock thread only on its own edges", func() {
		eval = newEvaluator().AddClockDivider("clk_b", 2)
		scheduler = NewScheduler(eval)

		resumes := 0
		var resumedAt uint64
		err := scheduler.Run(func(c *Circuit) {
			c.Fork("slow", func(c *Circuit) {
				c.StepOn("clk_b", 1)
				resumes++
				resumedAt = c.Timestep()
			})
			c.Step(3)
		})

		Expect(err).To(BeNil())
		Expect(scheduler.Timestep()).To(Equal(uint64(3)))
		Expect(resumes).To(Equal(1))
		Expect(resumedAt).To(Equal(uint64(1)))
	})

	It("should keep the main clock ticking for a waiter on a slow clock", func() {
		eval = newEvaluator().AddClockDivider("clk_b", 4)
		scheduler = NewScheduler(eval)

		err := scheduler.Run(func(c *Circuit) {
			c.StepOn("clk_b", 1)
		})

		Expect(err).To(BeNil())
		Expect(scheduler.Timestep()).To(Equal(uint64(3)))
	})

	It("should not treat threads on different clocks as concurrent", func() {
		eval = newEvaluator().
			AddClockDivider("clk_a", 2).
			AddClockDivider("clk_b", 4)
		scheduler = NewScheduler(eval)
		collector = scheduler.Reporter().(*CollectingReporter)

		err := scheduler.Run(func(c *Circuit) {
			c.Fork("on_a", func(c *Circuit) {
				c.StepOn("clk_a", 2)
				c.Poke("sig", 1)
			})
			c.Fork("on_b", func(c *Circuit) {
				c.StepOn("clk_b", 1)
				c.Poke("sig", 2)
			})
			c.Step(6)
		})

		Expect(err).To(BeNil())
		Expect(collector.Failures()).To(BeEmpty())
	})
})
