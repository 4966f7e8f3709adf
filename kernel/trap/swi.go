package trap

import (
	"github.com/vedadux/sweb/kernel"
	"github.com/vedadux/sweb/kernel/cpu"
	"github.com/vedadux/sweb/kernel/kfmt"
)

const (
	// SWIYield is the software interrupt operand for a voluntary yield.
	SWIYield = uint16(0xffff)

	// SWISyscall is the software interrupt operand for system calls.
	SWISyscall = uint16(0x0)
)

var errSWIWithInterrupts = &kernel.Error{Module: "trap", Message: "software interrupt handled with interrupts enabled"}

// handleSoftwareInterrupt decodes the operand of the trapping "swi"
// instruction and either yields or runs a system call. Unknown operands halt
// the execution context.
func (d *Dispatcher) handleSoftwareInterrupt() Outcome {
	if d.core.InterruptsEnabled() {
		panic(errSWIWithInterrupts)
	}

	switch operand := d.frame.Operand(); operand {
	case SWIYield:
		d.sched.Schedule()
		return Resume
	case SWISyscall:
		d.syscall(d.sched.CurrentThread())
		return Resume
	default:
		kfmt.Printf("Invalid SWI: %x\n", operand)
		return Halt
	}
}

// syscall runs a system call for thread. The arguments are taken from the
// user context before interrupts are enabled and the result is stored after
// they are disabled again so that a reschedule never observes a partially
// read argument list or a half-written result.
func (d *Dispatcher) syscall(thread Thread) {
	user := thread.UserContext()

	thread.SetSwitchToUserspace(false)
	d.active.Switch(thread.KernelContext())

	args := user.R
	kfmt.Debug(kfmt.Syscall, "thread %d:%s syscall %x(%x, %x, %x, %x, %x)\n",
		thread.ID(), thread.Name(), args[0], args[1], args[2], args[3], args[4], args[5])

	var result uint32
	cpu.WithInterrupts(d.core, func() {
		result = d.syscalls.Invoke(args[0], args[1], args[2], args[3], args[4], args[5])
	})

	user.R[0] = result
	thread.SetSwitchToUserspace(true)
	d.active.Switch(user)
}
