package tb

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookCtx is the context that holds all the information about the site that
// a hook is triggered
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable defines an object that accept Hooks
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// HookPosTimestepCommit triggers once per committed timestep, after all
// threads unblocked in the timestep have re-blocked or finished and the
// simulator has been stepped. External checkpointing attaches here.
var HookPosTimestepCommit = &HookPos{Name: "TimestepCommit"}

// HookPosThreadResume triggers right before a thread's test code resumes.
var HookPosThreadResume = &HookPos{Name: "ThreadResume"}

// HookPosThreadComplete triggers when a thread's body returns.
var HookPosThreadComplete = &HookPos{Name: "ThreadComplete"}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other type that
// implement the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// NewHookableBase creates a HookableBase object
func NewHookableBase() *HookableBase {
	h := new(HookableBase)
	h.Hooks = make([]Hook, 0)
	return h
}

// AcceptHook register a hook
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// InvokeHook triggers the register Hooks
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
