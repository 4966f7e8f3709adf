package trap

import "github.com/vedadux/sweb/kernel/cpu"

// Frame gives the dispatcher access to the trap details that are encoded in
// hardware registers or in the instruction stream.
type Frame interface {
	// ProgramCounter returns the program counter saved in the active
	// register context.
	ProgramCounter() uint32

	// Operand returns the immediate operand of the software interrupt
	// instruction that caused the trap.
	Operand() uint16

	// FaultAddress returns the address whose access caused a data abort.
	FaultAddress() uint32
}

// armFrame decodes trap details for ARM cores where the saved PC points to
// the instruction following the trapping "swi".
type armFrame struct {
	core   cpu.Core
	active *ActiveContext
}

// NewARMFrame returns a Frame that reads trap details for the context
// referenced by active.
func NewARMFrame(core cpu.Core, active *ActiveContext) Frame {
	return &armFrame{core: core, active: active}
}

func (f *armFrame) ProgramCounter() uint32 {
	return f.active.Current().PC
}

// Operand extracts the low 16 bits of the instruction word preceding the
// saved PC.
func (f *armFrame) Operand() uint16 {
	return uint16(f.core.ReadWord(f.active.Current().PC-4) & 0xffff)
}

func (f *armFrame) FaultAddress() uint32 {
	return f.core.FaultAddress()
}
