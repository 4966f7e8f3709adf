package trap

// ExceptionType identifies the exception vector through which the trap was
// taken.
type ExceptionType uint32

// The ARM exception vectors. The numbering matches the order of the vector
// table and is passed to Dispatch by the trap entry code.
const (
	Reset          = ExceptionType(0x00)
	UndefinedInstr = ExceptionType(0x01)
	SoftwareIRQ    = ExceptionType(0x02)
	PrefetchAbort  = ExceptionType(0x03)
	DataAbort      = ExceptionType(0x04)
	ReservedVector = ExceptionType(0x05)
	IRQ            = ExceptionType(0x06)
	FIQ            = ExceptionType(0x07)
)

// String returns the exception name.
func (e ExceptionType) String() string {
	switch e {
	case Reset:
		return "reset"
	case UndefinedInstr:
		return "undefined instruction"
	case SoftwareIRQ:
		return "software interrupt"
	case PrefetchAbort:
		return "prefetch abort"
	case DataAbort:
		return "data abort"
	case ReservedVector:
		return "reserved"
	case IRQ:
		return "irq"
	case FIQ:
		return "fiq"
	default:
		return "unknown"
	}
}

// AccessKind describes the memory access that caused an abort.
type AccessKind uint8

const (
	// InstructionFetch is reported for prefetch aborts.
	InstructionFetch AccessKind = iota

	// DataAccess is reported for data aborts.
	DataAccess
)

// String returns a human readable name for the access kind.
func (k AccessKind) String() string {
	if k == InstructionFetch {
		return "Instruction Fetch"
	}
	return "Data Access"
}

// Outcome describes how a trap was resolved.
type Outcome uint8

const (
	// Resume indicates that execution continues with the active register
	// context.
	Resume Outcome = iota

	// Terminated indicates that the trapping thread or its process was
	// terminated; execution continues with whatever thread the scheduler
	// selected afterwards.
	Terminated

	// Halt indicates that no safe resumption exists and the execution
	// context must be stopped by the caller.
	Halt
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Resume:
		return "resume"
	case Terminated:
		return "terminated"
	default:
		return "halt"
	}
}
