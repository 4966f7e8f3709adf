package sim

import (
	"io"

	"github.com/vedadux/sweb/kernel/kfmt"
)

// System call numbers.
const (
	SysExit  = uint32(1)
	SysWrite = uint32(3)
	SysTicks = uint32(15)

	// StdoutFD is the only file descriptor accepted by SysWrite.
	StdoutFD = uint32(1)

	// maxWriteSize caps the number of bytes copied by a single SysWrite.
	maxWriteSize = uint32(4096)
)

// errSyscall is returned (as -1) for unknown calls and bad arguments.
const errSyscall = ^uint32(0)

// MemoryReader reads process memory.
type MemoryReader interface {
	LoadByte(addr uint32) byte
}

// Syscalls implements the system call table of the simulator.
type Syscalls struct {
	sched *Scheduler
	mem   MemoryReader
	out   io.Writer
}

// NewSyscalls returns a syscall table that writes console output to out.
func NewSyscalls(sched *Scheduler, mem MemoryReader, out io.Writer) *Syscalls {
	return &Syscalls{sched: sched, mem: mem, out: out}
}

// Invoke runs system call a0 with arguments a1-a5.
func (s *Syscalls) Invoke(a0, a1, a2, a3, a4, a5 uint32) uint32 {
	switch a0 {
	case SysExit:
		s.TerminateProcess(a1)
		return 0
	case SysWrite:
		return s.write(a1, a2, a3)
	case SysTicks:
		return s.sched.Ticks()
	default:
		kfmt.Debug(kfmt.Syscall, "unknown syscall %d\n", a0)
		return errSyscall
	}
}

func (s *Syscalls) write(fd, buf, size uint32) uint32 {
	if fd != StdoutFD || size > maxWriteSize {
		return errSyscall
	}

	data := make([]byte, size)
	for i := range data {
		data[i] = s.mem.LoadByte(buf + uint32(i))
	}

	n, err := s.out.Write(data)
	if err != nil {
		return errSyscall
	}
	return uint32(n)
}

// TerminateProcess exits the current thread with code.
func (s *Syscalls) TerminateProcess(code uint32) {
	t := s.sched.Current()
	if t == nil {
		return
	}

	kfmt.Debug(kfmt.Syscall, "thread %d:%s exits with code %d\n", t.ID(), t.Name(), code)
	t.exitCode = code
	t.exited = true
	t.Kill()
}
