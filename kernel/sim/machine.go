// Package sim runs the trap dispatcher on an emulated core. It provides a
// round-robin scheduler, demand-paged processes and a small system call
// table so that traps can be injected and their effects observed.
package sim

import (
	"io"

	"github.com/vedadux/sweb/kernel"
	"github.com/vedadux/sweb/kernel/board"
	"github.com/vedadux/sweb/kernel/cpu"
	"github.com/vedadux/sweb/kernel/driver/video/console"
	"github.com/vedadux/sweb/kernel/kfmt"
	"github.com/vedadux/sweb/kernel/mem"
	"github.com/vedadux/sweb/kernel/trap"
)

const (
	// userTTBR0Base is the physical address of the first process page
	// directory; each process gets the next 16K aligned slot.
	userTTBR0Base = uint32(0x00100000)
	ttbr0Stride   = uint32(mem.PageDirectorySize)

	idleEntry = uint32(0x80000000)
)

var (
	errNoUserThread = &kernel.Error{Module: "sim", Message: "system calls can only be issued by user threads"}
	errHalted       = &kernel.Error{Module: "sim", Message: "execution context is halted"}
)

// Machine bundles an emulated core with the kernel components that service
// its traps.
type Machine struct {
	Core       *cpu.Emulated
	Active     *trap.ActiveContext
	Scheduler  *Scheduler
	Syscalls   *Syscalls
	IRQs       board.Latch
	Board      *board.Board
	Timer      *trap.Timer
	Dispatcher *trap.Dispatcher

	bootRegs  trap.Registers
	nextID    uint32
	processes uint32
}

// NewMachine returns a machine whose heartbeat is drawn on display (which may
// be nil) and whose processes write their console output to out.
func NewMachine(display console.Device, out io.Writer) *Machine {
	m := &Machine{
		Core:     cpu.NewEmulated(),
		bootRegs: trap.Registers{CPSR: cpu.ModeSVC, TTBR0: KernelTTBR0},
	}

	m.Active = trap.NewActiveContext(m.Core, &m.bootRegs)
	m.Scheduler = NewScheduler(m.Active, newIdleThread(m.allocID()))
	m.Syscalls = NewSyscalls(m.Scheduler, m.Core, out)
	m.Timer = trap.NewTimer(m.Scheduler, display)

	m.Board = board.New(&m.IRQs)
	m.Board.HandleInterrupt(board.Timer, m.Timer.OnTick)
	m.Board.HandleInterrupt(board.UART1, board.HaltingHandler(board.UART1))
	m.Board.HandleInterrupt(board.Mouse, board.HaltingHandler(board.Mouse))

	m.Dispatcher = trap.NewDispatcher(trap.Config{
		Core:      m.Core,
		Active:    m.Active,
		Scheduler: m.Scheduler,
		Syscalls:  m.Syscalls,
		IRQ:       m.Board,
	})

	kfmt.SetHaltFn(m.Core.Halt)
	return m
}

func (m *Machine) allocID() uint32 {
	m.nextID++
	return m.nextID
}

// SpawnUser creates a user process with its own address space consisting of
// segments and a single thread starting at entry.
func (m *Machine) SpawnUser(name string, entry uint32, segments ...Segment) *Thread {
	ttbr0 := userTTBR0Base + m.processes*ttbr0Stride
	m.processes++

	t := newUserThread(m.allocID(), name, NewLoader(ttbr0, segments...), entry)
	m.Scheduler.AddThread(t)
	return t
}

// SpawnKernel creates a kernel-only thread.
func (m *Machine) SpawnKernel(name string, entry uint32) *Thread {
	t := newKernelThread(m.allocID(), name, entry)
	m.Scheduler.AddThread(t)
	return t
}

// Trap takes an exception of type exc: interrupts are masked, the dispatcher
// runs and the machine either returns from the exception or halts. A kernel
// panic raised by the dispatcher is reported through kfmt.Panic and halts the
// machine.
func (m *Machine) Trap(exc trap.ExceptionType) (outcome trap.Outcome) {
	if m.Core.Halted() {
		return trap.Halt
	}

	m.Core.EnterException()

	defer func() {
		if err := recover(); err != nil {
			kfmt.Panic(err)
			m.Core.Halt()
			outcome = trap.Halt
		}
	}()

	if outcome = m.Dispatcher.Dispatch(exc); outcome == trap.Halt {
		m.Core.Halt()
		return outcome
	}

	m.Core.ReturnFromException()
	return outcome
}

// Tick raises the timer interrupt.
func (m *Machine) Tick() trap.Outcome {
	m.IRQs.Raise(board.Timer)
	return m.Trap(trap.IRQ)
}

// RaiseIRQ raises an interrupt on src.
func (m *Machine) RaiseIRQ(src board.Source) trap.Outcome {
	m.IRQs.Raise(src)
	return m.Trap(trap.IRQ)
}

// SoftwareInterrupt executes "swi operand" on the active context.
func (m *Machine) SoftwareInterrupt(operand uint32) trap.Outcome {
	m.Core.WriteWord(m.Active.Current().PC-4, cpu.EncodeSWI(operand))
	return m.Trap(trap.SoftwareIRQ)
}

// Yield issues the yield software interrupt.
func (m *Machine) Yield() trap.Outcome {
	return m.SoftwareInterrupt(uint32(trap.SWIYield))
}

// Syscall issues system call num with up to five arguments from the current
// thread and returns the value left in R0.
func (m *Machine) Syscall(num uint32, args ...uint32) (uint32, trap.Outcome, error) {
	if m.Core.Halted() {
		return 0, trap.Halt, errHalted
	}

	t := m.Scheduler.Current()
	if t == nil || t.loader == nil {
		return 0, trap.Resume, errNoUserThread
	}

	user := t.UserContext()
	user.R[0] = num
	for i := 0; i < 5; i++ {
		var arg uint32
		if i < len(args) {
			arg = args[i]
		}
		user.R[i+1] = arg
	}

	outcome := m.SoftwareInterrupt(uint32(trap.SWISyscall))
	return user.R[0], outcome, nil
}

// DataAbort simulates a load or store to addr that missed the page tables.
func (m *Machine) DataAbort(addr uint32) trap.Outcome {
	m.Core.SetFaultAddress(addr)
	return m.Trap(trap.DataAbort)
}

// PrefetchAbort simulates a branch to addr that missed the page tables.
func (m *Machine) PrefetchAbort(addr uint32) trap.Outcome {
	m.Active.Current().PC = addr
	return m.Trap(trap.PrefetchAbort)
}

// UndefinedInstruction simulates the execution of an undefined opcode.
func (m *Machine) UndefinedInstruction() trap.Outcome {
	return m.Trap(trap.UndefinedInstr)
}
