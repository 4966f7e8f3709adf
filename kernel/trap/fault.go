package trap

import (
	"github.com/vedadux/sweb/kernel/cpu"
	"github.com/vedadux/sweb/kernel/kfmt"
	"github.com/vedadux/sweb/kernel/mem"
)

const (
	// userWindowStart and userWindowEnd bound (exclusively) the addresses
	// that may be demand-paged for user processes.
	userWindowStart = uint32(8 * mem.Mb)
	userWindowEnd   = uint32(2 * mem.Gb)

	// ExitAccessViolation is the exit code of a process terminated for
	// accessing an address outside the user window.
	ExitAccessViolation = uint32(9999)
)

// handleAbort services prefetch and data aborts. Faults in the user window
// are resolved by demand paging through the thread's loader; all other
// faults terminate the thread or its process.
func (d *Dispatcher) handleAbort(pc uint32, exc ExceptionType) Outcome {
	var (
		thread  = d.sched.CurrentThread()
		kind    = InstructionFetch
		address = pc
		loader  = thread.Loader()
	)

	// For data aborts the saved PC is the address of the faulting load or
	// store, not the address it accessed.
	if exc != PrefetchAbort {
		kind = DataAccess
		address = d.frame.FaultAddress()
	}

	kfmt.Debug(kfmt.PageFault, "Address: %x (%s) - currentThread: %d:%s, switch_to_userspace: %t\n",
		address, kind, thread.ID(), thread.Name(), thread.SwitchToUserspace())

	if address == 0 {
		kfmt.Debug(kfmt.PageFault, "Maybe you're dereferencing a null-pointer!\n")
	}

	if loader != nil && loader.CheckAddressValid(address) {
		kfmt.Debug(kfmt.PageFault, "There is something wrong: The address is actually mapped!\n")
	}

	if d.tracker.Record(address) {
		kfmt.Debug(kfmt.PageFault, "%d times the same pagefault? That should not happen -> kill Thread\n", RepeatFaultLimit+1)
		thread.Kill()
		return Terminated
	}

	if kfmt.ChannelEnabled(kfmt.PageFault) {
		dumpThreadRegisters(&kfmt.PrefixWriter{Sink: kfmt.GetOutputSink(), Prefix: []byte("[PAGEFAULT] ")}, thread)
	}

	// The fault is serviced in the context of the thread's kernel side,
	// regardless of which context trapped.
	savedSwitchToUserspace := thread.SwitchToUserspace()
	thread.SetSwitchToUserspace(false)
	d.active.Switch(thread.KernelContext())

	outcome := Resume
	cpu.WithInterrupts(d.core, func() {
		outcome = d.resolveFault(thread, loader, address)
	})

	thread.SetSwitchToUserspace(savedSwitchToUserspace)
	if savedSwitchToUserspace {
		d.active.Switch(thread.UserContext())
	}

	return outcome
}

// resolveFault runs with interrupts enabled and either pages in the faulting
// address or terminates the offender.
func (d *Dispatcher) resolveFault(thread Thread, loader Loader, address uint32) Outcome {
	switch {
	case loader == nil:
		kfmt.Debug(kfmt.PageFault, "Kernel Page Fault! Should never happen...\n")
		thread.Kill()
		return Terminated
	case address > userWindowStart && address < userWindowEnd:
		// The window is a coarse check; the loader decides whether the
		// address belongs to a segment.
		if err := loader.LoadPage(address); err != nil {
			kfmt.Debug(kfmt.PageFault, "loadPage(%x) failed: %s\n", address, err.Error())
		}
		return Resume
	default:
		kfmt.Debug(kfmt.PageFault, "Memory Access Violation: address: %x\n", address)
		d.syscalls.TerminateProcess(ExitAccessViolation)
		return Terminated
	}
}
