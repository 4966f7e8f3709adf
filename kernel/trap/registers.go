package trap

import (
	"io"

	"github.com/vedadux/sweb/kernel/cpu"
	"github.com/vedadux/sweb/kernel/kfmt"
	"github.com/vedadux/sweb/kernel/mem"
)

// ttbr0AlignMask covers the low bits of TTBR0 that must be zero.
const ttbr0AlignMask = uint32(mem.PageDirectorySize - 1)

// Registers contains a snapshot of the register values of a thread in one
// processor mode. Each thread owns two instances: one for kernel mode and one
// for user mode.
type Registers struct {
	// R holds the general purpose registers r0-r12.
	R [13]uint32

	SP uint32
	LR uint32
	PC uint32

	CPSR cpu.PSR

	// TTBR0 holds the physical address of the first level translation
	// table for the address space this context executes in.
	TTBR0 uint32
}

// TTBR0Valid returns true if TTBR0 points to a non-zero, 16K aligned table.
func (r *Registers) TTBR0Valid() bool {
	return r.TTBR0 != 0 && r.TTBR0&ttbr0AlignMask == 0
}

// DumpTo outputs the register contents to w.
func (r *Registers) DumpTo(w io.Writer) {
	kfmt.Fprintf(w, "R0  = %08x R1  = %08x R2  = %08x R3  = %08x\n", r.R[0], r.R[1], r.R[2], r.R[3])
	kfmt.Fprintf(w, "R4  = %08x R5  = %08x R6  = %08x R7  = %08x\n", r.R[4], r.R[5], r.R[6], r.R[7])
	kfmt.Fprintf(w, "R8  = %08x R9  = %08x R10 = %08x R11 = %08x\n", r.R[8], r.R[9], r.R[10], r.R[11])
	kfmt.Fprintf(w, "R12 = %08x SP  = %08x LR  = %08x PC  = %08x\n", r.R[12], r.SP, r.LR, r.PC)
	kfmt.Fprintf(w, "CPSR = %08x (%s) TTBR0 = %08x\n", uint32(r.CPSR), r.CPSR, r.TTBR0)
}
