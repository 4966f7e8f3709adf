package cpu

// PSR holds the value of an ARM program status register (CPSR/SPSR).
type PSR uint32

// Processor modes encoded in the low 5 bits of the PSR.
const (
	ModeUSR = PSR(0x10)
	ModeFIQ = PSR(0x11)
	ModeIRQ = PSR(0x12)
	ModeSVC = PSR(0x13)
	ModeABT = PSR(0x17)
	ModeUND = PSR(0x1B)
	ModeSYS = PSR(0x1F)

	modeMask = PSR(0x1F)
)

// PSR control flags.
const (
	// FlagThumb is set while executing Thumb instructions.
	FlagThumb = PSR(1 << 5)

	// FlagFIQDisable masks fast interrupts.
	FlagFIQDisable = PSR(1 << 6)

	// FlagIRQDisable masks normal interrupts.
	FlagIRQDisable = PSR(1 << 7)

	controlFlagMask = FlagThumb | FlagFIQDisable | FlagIRQDisable
)

// Mode returns the processor mode bits.
func (p PSR) Mode() PSR {
	return p & modeMask
}

// ControlFlagsClear returns true if the IRQ/FIQ mask bits and the Thumb bit
// are all clear. Saved thread contexts must always satisfy this.
func (p PSR) ControlFlagsClear() bool {
	return p&controlFlagMask == 0
}

// IsUnprivileged returns true if the mode bits encode user mode.
func (p PSR) IsUnprivileged() bool {
	return p&0xF == 0
}

// String returns a short name for the processor mode.
func (p PSR) String() string {
	switch p.Mode() {
	case ModeUSR:
		return "usr"
	case ModeFIQ:
		return "fiq"
	case ModeIRQ:
		return "irq"
	case ModeSVC:
		return "svc"
	case ModeABT:
		return "abt"
	case ModeUND:
		return "und"
	case ModeSYS:
		return "sys"
	default:
		return "???"
	}
}
