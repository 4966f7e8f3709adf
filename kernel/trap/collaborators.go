package trap

// Thread is the view of a kernel thread required by the trap handlers.
type Thread interface {
	// ID returns the thread identifier.
	ID() uint32

	// Name returns the thread's display name.
	Name() string

	// KernelContext returns the registers used while the thread executes
	// in kernel mode.
	KernelContext() *Registers

	// UserContext returns the registers used while the thread executes in
	// user mode. Kernel-only threads may return their kernel context.
	UserContext() *Registers

	// SwitchToUserspace reports whether the thread returns to user mode
	// when the current trap completes.
	SwitchToUserspace() bool

	// SetSwitchToUserspace updates the user mode flag.
	SetSwitchToUserspace(bool)

	// Loader returns the loader of the thread's process or nil for
	// kernel-only threads.
	Loader() Loader

	// Kill marks the thread as dead. The scheduler never selects a dead
	// thread again.
	Kill()

	// Alive returns false once Kill has been called.
	Alive() bool

	// IsStackCanaryOK returns true if the kernel stack sentinel is intact.
	IsStackCanaryOK() bool
}

// Loader installs user-space mappings on demand.
type Loader interface {
	// CheckAddressValid returns true if addr is currently mapped in the
	// process address space.
	CheckAddressValid(addr uint32) bool

	// LoadPage maps the page containing addr, populating it from the
	// process image.
	LoadPage(addr uint32) error
}

// Scheduler selects which thread runs next. Schedule may repoint the active
// register context.
type Scheduler interface {
	// CurrentThread returns the thread that was running when the trap
	// occurred or nil if no thread has been scheduled yet.
	CurrentThread() Thread

	// IncTicks advances the scheduler's tick counter.
	IncTicks()

	// Schedule selects the next thread to run.
	Schedule()
}

// Syscalls dispatches system calls on behalf of the current thread.
type Syscalls interface {
	// Invoke runs the system call selected by a0 and returns its result.
	Invoke(a0, a1, a2, a3, a4, a5 uint32) uint32

	// TerminateProcess exits the current thread's process with the given
	// exit code.
	TerminateProcess(code uint32)
}

// IRQDelegate resolves the pending interrupt source(s) and runs the matching
// peripheral handler.
type IRQDelegate interface {
	HandleIRQ() Outcome
}
