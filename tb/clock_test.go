package tb

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("ClockTracker", func() {
	var (
		mockCtrl *gomock.Controller
		sim      *MockSimulator
		tracker  *clockTracker
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		sim = NewMockSimulator(mockCtrl)
		tracker = newClockTracker(sim, nil)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should report a low-to-high transition as rising", func() {
		gomock.InOrder(
			sim.EXPECT().Peek("clk").Return(uint64(0)),
			sim.EXPECT().Peek("clk").Return(uint64(1)),
		)

		tracker.track("clk")

		Expect(tracker.rose("clk")).To(BeTrue())
		Expect(tracker.edgeCount("clk")).To(Equal(uint64(1)))
	})

	It("should not report a clock held high as rising", func() {
		gomock.InOrder(
			sim.EXPECT().Peek("clk").Return(uint64(1)),
			sim.EXPECT().Peek("clk").Return(uint64(1)),
		)

		tracker.track("clk")

		Expect(tracker.rose("clk")).To(BeFalse())
		Expect(tracker.edgeCount("clk")).To(Equal(uint64(0)))
	})

	It("should track each clock only once", func() {
		sim.EXPECT().Peek("clk").Return(uint64(0))

		tracker.track("clk")
		tracker.track("clk")

		Expect(tracker.tracked()).To(HaveLen(1))
	})

	It("should resolve clock names through the name map", func() {
		sim.EXPECT().Peek("top.clk2").Return(uint64(0)).Times(2)

		tracker = newClockTracker(sim, NameMap{"clk2": "top.clk2"})
		tracker.track("clk2")

		Expect(tracker.rose("clk2")).To(BeFalse())
	})

	It("should drop clocks that no thread waits on", func() {
		sim.EXPECT().Peek(gomock.Any()).Return(uint64(0)).Times(2)

		tracker.track("clk_a")
		tracker.track("clk_b")

		tracker.drop(func(clock string) bool { return clock == "clk_b" })

		Expect(tracker.tracked()).To(Equal([]string{"clk_b"}))
		Expect(tracker.edgeCount("clk_a")).To(Equal(uint64(0)))
	})
})
