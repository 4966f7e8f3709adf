// Package cpu describes the hardware surface the trap core relies on: the
// interrupt mask, the translation table base register, the fault address
// register and instruction memory.
package cpu

// InterruptController enables and disables interrupt delivery for the
// executing core.
type InterruptController interface {
	// EnableInterrupts enables interrupt handling.
	EnableInterrupts()

	// DisableInterrupts disables interrupt handling.
	DisableInterrupts()

	// InterruptsEnabled returns true if interrupts are currently enabled.
	InterruptsEnabled() bool
}

// Core is implemented by the platform layer and exposes the registers and
// memory accesses needed while servicing a trap.
type Core interface {
	InterruptController

	// SwitchTTBR0 loads the translation table base register with the
	// physical address of a page directory and invalidates the TLB.
	SwitchTTBR0(ttbr0 uint32)

	// ActiveTTBR0 returns the value currently loaded in TTBR0.
	ActiveTTBR0() uint32

	// FaultAddress returns the contents of the data fault address
	// register.
	FaultAddress() uint32

	// ReadWord returns the 32-bit word at the given virtual address.
	ReadWord(addr uint32) uint32

	// Halt stops instruction execution.
	Halt()
}

// WithInterrupts runs fn with interrupts enabled and restores the previous
// interrupt state once fn returns, including when fn panics. When invoked
// with interrupts disabled, exactly one DisableInterrupts call is issued on
// every exit path.
func WithInterrupts(ic InterruptController, fn func()) {
	if wasEnabled := ic.InterruptsEnabled(); !wasEnabled {
		ic.EnableInterrupts()
		defer ic.DisableInterrupts()
	}

	fn()
}

// EncodeSWI returns the ARM encoding of "swi imm" (condition: always).
func EncodeSWI(imm uint32) uint32 {
	return 0xEF000000 | imm&0x00FFFFFF
}
