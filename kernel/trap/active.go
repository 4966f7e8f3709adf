package trap

import (
	"github.com/vedadux/sweb/kernel"
	"github.com/vedadux/sweb/kernel/cpu"
)

var (
	errSwitchWithInterrupts = &kernel.Error{Module: "trap", Message: "active register context switched with interrupts enabled"}
	errNilContext           = &kernel.Error{Module: "trap", Message: "attempt to activate a nil register context"}
)

// ActiveContext references the register context that the trap return path
// restores. Exactly one context is active at any time; the handle never owns
// the context it points to.
//
// The handle is shared between the dispatcher and the scheduler. All
// repointing goes through Switch, which refuses to run with interrupts
// enabled.
type ActiveContext struct {
	ic   cpu.InterruptController
	regs *Registers
}

// NewActiveContext returns a handle that initially points to regs.
func NewActiveContext(ic cpu.InterruptController, regs *Registers) *ActiveContext {
	return &ActiveContext{ic: ic, regs: regs}
}

// Current returns the active register context.
func (a *ActiveContext) Current() *Registers {
	return a.regs
}

// Switch makes regs the active register context. Calling Switch while
// interrupts are enabled or with a nil context is a fatal error.
func (a *ActiveContext) Switch(regs *Registers) {
	if a.ic.InterruptsEnabled() {
		panic(errSwitchWithInterrupts)
	}
	if regs == nil {
		panic(errNilContext)
	}

	a.regs = regs
}
