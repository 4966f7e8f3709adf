// Package trap implements the exception dispatch layer: it classifies every
// trap taken by the core, routes it to the matching handler and keeps the
// active register context, the address-space root and the interrupt mask
// consistent across the handlers.
package trap

import (
	"io"

	"github.com/vedadux/sweb/kernel"
	"github.com/vedadux/sweb/kernel/cpu"
	"github.com/vedadux/sweb/kernel/kfmt"
)

var (
	errControlFlags     = &kernel.Error{Module: "trap", Message: "register context has IRQ/FIQ/Thumb bits set"}
	errStackCanary      = &kernel.Error{Module: "trap", Message: "kernel stack canary overwritten"}
	errBadTTBR0         = &kernel.Error{Module: "trap", Message: "active register context holds an invalid TTBR0"}
	errUserModeMismatch = &kernel.Error{Module: "trap", Message: "thread returns to user space with a privileged register context"}
)

// Config bundles the collaborators required by a Dispatcher.
type Config struct {
	Core      cpu.Core
	Active    *ActiveContext
	Scheduler Scheduler
	Syscalls  Syscalls
	IRQ       IRQDelegate

	// Frame decodes trap details. If nil, an ARM decoder reading from
	// Core and Active is used.
	Frame Frame
}

// Dispatcher is the single entry point for all traps.
type Dispatcher struct {
	core     cpu.Core
	active   *ActiveContext
	sched    Scheduler
	syscalls Syscalls
	irq      IRQDelegate
	frame    Frame

	tracker FaultTracker
}

// NewDispatcher returns a Dispatcher wired to the collaborators in cfg.
func NewDispatcher(cfg Config) *Dispatcher {
	frame := cfg.Frame
	if frame == nil {
		frame = NewARMFrame(cfg.Core, cfg.Active)
	}

	return &Dispatcher{
		core:     cfg.Core,
		active:   cfg.Active,
		sched:    cfg.Scheduler,
		syscalls: cfg.Syscalls,
		irq:      cfg.IRQ,
		frame:    frame,
	}
}

// Dispatch services a trap of type exc. The trap entry code invokes it with
// interrupts disabled and the active context pointing at the registers saved
// for the trap. Unless Halt is returned, TTBR0 has been reloaded from the
// (possibly new) active context when Dispatch returns.
//
// Violations of the register context invariants indicate that the trap
// machinery itself is broken and cause a kernel panic.
func (d *Dispatcher) Dispatch(exc ExceptionType) Outcome {
	thread := d.sched.CurrentThread()
	if thread != nil && !thread.IsStackCanaryOK() {
		panic(errStackCanary)
	}

	kfmt.Debug(kfmt.Interrupts, "exceptionHandler: type = %x (%s)\n", uint32(exc), exc)

	if thread == nil {
		d.sched.Schedule()
		d.restoreAddressSpace()
		return Resume
	}

	if !d.active.Current().CPSR.ControlFlagsClear() {
		panic(errControlFlags)
	}

	alive := thread.Alive()

	var outcome Outcome
	switch exc {
	case IRQ:
		outcome = d.irq.HandleIRQ()
	case SoftwareIRQ:
		outcome = d.handleSoftwareInterrupt()
	case PrefetchAbort, DataAbort:
		outcome = d.handleAbort(d.frame.ProgramCounter(), exc)
	default:
		return d.handleCPUFault(exc, thread)
	}

	if outcome == Halt {
		return Halt
	}

	// A thread killed while servicing the trap must not be resumed.
	if outcome == Terminated || (alive && !thread.Alive()) {
		d.sched.Schedule()
		outcome = Terminated
	}

	d.restoreAddressSpace()
	return outcome
}

// restoreAddressSpace validates the active register context and loads its
// address-space root into TTBR0.
func (d *Dispatcher) restoreAddressSpace() {
	regs := d.active.Current()
	if !regs.TTBR0Valid() {
		panic(errBadTTBR0)
	}
	if !regs.CPSR.ControlFlagsClear() {
		panic(errControlFlags)
	}

	if thread := d.sched.CurrentThread(); thread != nil {
		if thread.SwitchToUserspace() && !regs.CPSR.IsUnprivileged() {
			panic(errUserModeMismatch)
		}
		if !thread.IsStackCanaryOK() {
			panic(errStackCanary)
		}
	}

	d.core.SwitchTTBR0(regs.TTBR0)
}

// handleCPUFault deals with exceptions that have no handler. The thread is
// killed and the execution context must be halted by the caller.
func (d *Dispatcher) handleCPUFault(exc ExceptionType, thread Thread) Outcome {
	kfmt.Printf("\nCPU Fault type = %x (%s)\n", uint32(exc), exc)
	dumpThreadRegisters(kfmt.GetOutputSink(), thread)

	thread.SetSwitchToUserspace(false)
	d.active.Switch(thread.KernelContext())
	d.core.EnableInterrupts()
	thread.Kill()

	return Halt
}

// dumpThreadRegisters writes the identity and the register contexts of
// thread to w.
func dumpThreadRegisters(w io.Writer, thread Thread) {
	kfmt.Fprintf(w, "Thread %d:%s switch_to_userspace: %t\n", thread.ID(), thread.Name(), thread.SwitchToUserspace())

	indented := kfmt.PrefixWriter{Sink: w, Prefix: []byte("  ")}
	kfmt.Fprintf(w, "Kernel registers:\n")
	thread.KernelContext().DumpTo(&indented)

	if user := thread.UserContext(); user != nil && user != thread.KernelContext() {
		kfmt.Fprintf(w, "User registers:\n")
		user.DumpTo(&indented)
	}
}
