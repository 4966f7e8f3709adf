package sim

import (
	"github.com/vedadux/sweb/kernel/cpu"
	"github.com/vedadux/sweb/kernel/kfmt"
	"github.com/vedadux/sweb/kernel/trap"
)

// StackCanary is the sentinel stored at the bottom of every kernel stack.
const StackCanary = uint32(0xdeadc0de)

// KernelTTBR0 is the page directory shared by all kernel-only threads.
const KernelTTBR0 = uint32(0x00004000)

// Thread is a simulated kernel thread. User threads own a Loader; kernel
// threads do not and run exclusively on their kernel context.
type Thread struct {
	id   uint32
	name string

	kernelRegs trap.Registers
	userRegs   trap.Registers

	switchToUserspace bool
	loader            *Loader

	// idle threads are never killed; the scheduler falls back to them
	// when nothing else is runnable.
	idle bool

	dead     bool
	exited   bool
	exitCode uint32

	canary uint32
}

func newKernelThread(id uint32, name string, entry uint32) *Thread {
	t := &Thread{id: id, name: name, canary: StackCanary}
	t.kernelRegs = trap.Registers{PC: entry, CPSR: cpu.ModeSYS, TTBR0: KernelTTBR0}
	t.userRegs = t.kernelRegs
	return t
}

func newIdleThread(id uint32) *Thread {
	t := newKernelThread(id, "Idle", idleEntry)
	t.idle = true
	return t
}

func newUserThread(id uint32, name string, loader *Loader, entry uint32) *Thread {
	t := &Thread{
		id:                id,
		name:              name,
		loader:            loader,
		switchToUserspace: true,
		canary:            StackCanary,
	}
	t.kernelRegs = trap.Registers{CPSR: cpu.ModeSYS, TTBR0: loader.PageDirectory()}
	t.userRegs = trap.Registers{PC: entry, CPSR: cpu.ModeUSR, TTBR0: loader.PageDirectory()}
	return t
}

// ID returns the thread identifier.
func (t *Thread) ID() uint32 { return t.id }

// Name returns the thread's display name.
func (t *Thread) Name() string { return t.name }

// KernelContext returns the kernel mode registers.
func (t *Thread) KernelContext() *trap.Registers { return &t.kernelRegs }

// UserContext returns the user mode registers. Kernel threads return their
// kernel context.
func (t *Thread) UserContext() *trap.Registers {
	if t.loader == nil {
		return &t.kernelRegs
	}
	return &t.userRegs
}

// SwitchToUserspace reports whether the thread resumes in user mode.
func (t *Thread) SwitchToUserspace() bool { return t.switchToUserspace }

// SetSwitchToUserspace updates the user mode flag.
func (t *Thread) SetSwitchToUserspace(v bool) { t.switchToUserspace = v }

// Loader returns the thread's loader or nil for kernel threads.
func (t *Thread) Loader() trap.Loader {
	if t.loader == nil {
		return nil
	}
	return t.loader
}

// AddressSpace returns the loader of a user thread or nil for kernel
// threads.
func (t *Thread) AddressSpace() *Loader { return t.loader }

// Kill marks the thread as dead. The idle thread cannot be killed.
func (t *Thread) Kill() {
	if t.idle {
		kfmt.Debug(kfmt.Scheduler, "refusing to kill idle thread %d\n", t.id)
		return
	}
	t.dead = true
}

// Alive returns false once the thread has been killed.
func (t *Thread) Alive() bool { return !t.dead }

// IsStackCanaryOK returns true if the stack sentinel is intact.
func (t *Thread) IsStackCanaryOK() bool { return t.canary == StackCanary }

// ExitCode returns the code passed to the exit system call and whether the
// thread exited through it.
func (t *Thread) ExitCode() (uint32, bool) { return t.exitCode, t.exited }

// SmashStack overwrites the stack sentinel.
func (t *Thread) SmashStack() { t.canary = 0 }

// resumeContext returns the context the thread continues on when selected.
func (t *Thread) resumeContext() *trap.Registers {
	if t.switchToUserspace {
		return t.UserContext()
	}
	return t.KernelContext()
}
