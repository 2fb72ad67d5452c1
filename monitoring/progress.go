package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/shiba/tb"
)

// A ProgressBar tracks how far a run has advanced toward its expected
// number of timesteps.
type ProgressBar struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

// Advance adds a certain amount to the finished count.
func (b *ProgressBar) Advance(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// Func advances the bar once per committed timestep, so a bar can be
// attached to a scheduler as a hook.
func (b *ProgressBar) Func(ctx tb.HookCtx) {
	if ctx.Pos != tb.HookPosTimestepCommit {
		return
	}

	b.Advance(1)
}
