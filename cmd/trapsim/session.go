package main

import (
	"fmt"
	"io"

	"github.com/vedadux/sweb/kernel/board"
	"github.com/vedadux/sweb/kernel/kfmt"
	"github.com/vedadux/sweb/kernel/sim"
	"github.com/vedadux/sweb/kernel/trap"
)

// Layout of the init process image.
const (
	initEntry = uint32(0x01000100)
	textStart = uint32(0x01000000)
	textEnd   = uint32(0x01100000)
	dataStart = uint32(0x01800000)
	dataEnd   = dataStart + sim.PageSize
)

var greeting = []byte("hello from init\n")

// session feeds keystrokes to a simulated machine.
type session struct {
	m         *sim.Machine
	out       io.Writer
	faultAddr uint32
}

func newSession(m *sim.Machine, out io.Writer, faultAddr uint32) *session {
	m.SpawnUser("init", initEntry,
		sim.Segment{Start: textStart, End: textEnd},
		sim.Segment{Start: dataStart, End: dataEnd},
	)
	m.SpawnKernel("worker", 0x80001000)
	m.Core.StoreBytes(dataStart, greeting)

	return &session{m: m, out: out, faultAddr: faultAddr}
}

// handleKey runs the command bound to key. It returns false once the
// session should end.
func (s *session) handleKey(key rune) bool {
	var outcome trap.Outcome

	switch key {
	case 't':
		outcome = s.m.Tick()
	case 'y':
		outcome = s.m.Yield()
	case 's':
		outcome = s.syscall(sim.SysWrite, sim.StdoutFD, dataStart, uint32(len(greeting)))
	case 'c':
		outcome = s.syscall(sim.SysTicks)
	case 'x':
		outcome = s.syscall(sim.SysExit, 0)
	case 'd':
		outcome = s.m.DataAbort(s.faultAddr)
	case 'p':
		outcome = s.m.PrefetchAbort(s.faultAddr)
	case 'n':
		outcome = s.m.DataAbort(0)
	case 'u':
		outcome = s.m.UndefinedInstruction()
	case 'i':
		outcome = s.m.RaiseIRQ(board.UART1)
	case 'w':
		outcome = s.m.SoftwareInterrupt(0x42)
	case 'r':
		s.dumpState()
		return true
	case 'q':
		return false
	case '?', 'h':
		s.usage()
		return true
	default:
		return true
	}

	s.report(key, outcome)
	return outcome != trap.Halt
}

func (s *session) syscall(num uint32, args ...uint32) trap.Outcome {
	res, outcome, err := s.m.Syscall(num, args...)
	if err != nil {
		fmt.Fprintf(s.out, "syscall %d: %s\n", num, err.Error())
		return outcome
	}

	fmt.Fprintf(s.out, "syscall %d returned %d\n", num, int32(res))
	return outcome
}

func (s *session) report(key rune, outcome trap.Outcome) {
	cur := s.m.Scheduler.Current()
	if cur == nil {
		fmt.Fprintf(s.out, "[%c] %s\n", key, outcome)
		return
	}

	fmt.Fprintf(s.out, "[%c] %s, running %d:%s (TTBR0 = %08x)\n",
		key, outcome, cur.ID(), cur.Name(), s.m.Core.ActiveTTBR0())
}

func (s *session) dumpState() {
	fmt.Fprintf(s.out, "ticks: %d, runnable threads: %d, halted: %t\n",
		s.m.Scheduler.Ticks(), len(s.m.Scheduler.Threads()), s.m.Core.Halted())
	for _, t := range s.m.Scheduler.Threads() {
		fmt.Fprintf(s.out, "  %d:%s user=%t", t.ID(), t.Name(), t.SwitchToUserspace())
		if as := t.AddressSpace(); as != nil {
			fmt.Fprintf(s.out, " pages=%d/%d", as.MappedPages(), as.ImagePages())
		}
		fmt.Fprintln(s.out)
	}
	if regs := s.m.Active.Current(); regs != nil {
		regs.DumpTo(&kfmt.PrefixWriter{Sink: s.out, Prefix: []byte("  ")})
	}
}

func (s *session) usage() {
	fmt.Fprint(s.out, `keys:
  t  timer interrupt        y  yield
  s  write syscall          c  ticks syscall
  x  exit syscall           w  invalid software interrupt
  d  data abort             p  prefetch abort
  n  null dereference       u  undefined instruction
  i  uart interrupt         r  dump state
  q  quit
`)
}

// run reads keys from next until it returns an error, the session ends or
// the machine halts.
func (s *session) run(next func() (rune, error)) error {
	for {
		key, err := next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if !s.handleKey(key) {
			return nil
		}
	}
}
