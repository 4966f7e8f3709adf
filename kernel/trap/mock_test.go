package trap

import (
	"errors"

	"github.com/vedadux/sweb/kernel/cpu"
)

const testTTBR0 = uint32(0x00108000)

type fakeLoader struct {
	core *cpu.Emulated
	env  *testEnv

	mapped      map[uint32]bool
	loadErr     error
	panicOnLoad bool
	loaded      []uint32

	// state observed while LoadPage runs
	irqEnabledDuringLoad bool
	activeDuringLoad     *Registers
	userFlagDuringLoad   bool
}

func (l *fakeLoader) CheckAddressValid(addr uint32) bool { return l.mapped[addr] }

func (l *fakeLoader) LoadPage(addr uint32) error {
	l.loaded = append(l.loaded, addr)
	l.irqEnabledDuringLoad = l.core.InterruptsEnabled()
	l.activeDuringLoad = l.env.active.Current()
	l.userFlagDuringLoad = l.env.thread.userFlag
	if l.panicOnLoad {
		panic("loader exploded")
	}
	return l.loadErr
}

type fakeThread struct {
	id       uint32
	name     string
	kernel   Registers
	user     Registers
	userFlag bool
	loader   *fakeLoader
	killed   bool
	canaryOK bool
}

func (t *fakeThread) ID() uint32                  { return t.id }
func (t *fakeThread) Name() string                { return t.name }
func (t *fakeThread) KernelContext() *Registers   { return &t.kernel }
func (t *fakeThread) UserContext() *Registers     { return &t.user }
func (t *fakeThread) SwitchToUserspace() bool     { return t.userFlag }
func (t *fakeThread) SetSwitchToUserspace(v bool) { t.userFlag = v }
func (t *fakeThread) Kill()                       { t.killed = true }
func (t *fakeThread) Alive() bool                 { return !t.killed }
func (t *fakeThread) IsStackCanaryOK() bool       { return t.canaryOK }
func (t *fakeThread) Loader() Loader {
	if t.loader == nil {
		return nil
	}
	return t.loader
}

type fakeScheduler struct {
	current       *fakeThread
	ticks         int
	scheduleCalls int
	onSchedule    func()
}

func (s *fakeScheduler) CurrentThread() Thread {
	if s.current == nil {
		return nil
	}
	return s.current
}

func (s *fakeScheduler) IncTicks() { s.ticks++ }

func (s *fakeScheduler) Schedule() {
	s.scheduleCalls++
	if s.onSchedule != nil {
		s.onSchedule()
	}
}

type fakeSyscalls struct {
	env *testEnv

	calls     int
	args      [6]uint32
	result    uint32
	exitCodes []uint32
	killOnRun bool

	irqEnabledDuringInvoke bool
	activeDuringInvoke     *Registers
	userFlagDuringInvoke   bool
}

func (s *fakeSyscalls) Invoke(a0, a1, a2, a3, a4, a5 uint32) uint32 {
	s.calls++
	s.args = [6]uint32{a0, a1, a2, a3, a4, a5}
	s.irqEnabledDuringInvoke = s.env.core.InterruptsEnabled()
	s.activeDuringInvoke = s.env.active.Current()
	s.userFlagDuringInvoke = s.env.thread.userFlag
	if s.killOnRun {
		s.env.thread.Kill()
	}
	return s.result
}

func (s *fakeSyscalls) TerminateProcess(code uint32) {
	s.exitCodes = append(s.exitCodes, code)
	s.env.thread.Kill()
}

type fakeIRQ struct {
	calls   int
	outcome Outcome
}

func (i *fakeIRQ) HandleIRQ() Outcome {
	i.calls++
	return i.outcome
}

type testEnv struct {
	core     *cpu.Emulated
	active   *ActiveContext
	sched    *fakeScheduler
	syscalls *fakeSyscalls
	irq      *fakeIRQ
	thread   *fakeThread
	loader   *fakeLoader
	disp     *Dispatcher
}

var errLoadFailed = errors.New("segment not backed by the executable")

// newTestEnv returns a dispatcher whose current thread is a user thread
// that trapped from user mode. Interrupts are disabled as they would be
// after exception entry.
func newTestEnv() *testEnv {
	env := &testEnv{core: cpu.NewEmulated()}
	env.core.EnterException()

	env.loader = &fakeLoader{core: env.core, env: env, mapped: make(map[uint32]bool)}
	env.thread = &fakeThread{
		id:       7,
		name:     "user-thread",
		userFlag: true,
		loader:   env.loader,
		canaryOK: true,
		kernel:   Registers{CPSR: cpu.ModeSYS, TTBR0: testTTBR0, PC: 0x80001000},
		user:     Registers{CPSR: cpu.ModeUSR, TTBR0: testTTBR0, PC: 0x01000104},
	}

	env.active = NewActiveContext(env.core, &env.thread.user)
	env.sched = &fakeScheduler{current: env.thread}
	env.syscalls = &fakeSyscalls{env: env}
	env.irq = &fakeIRQ{}
	env.disp = NewDispatcher(Config{
		Core:      env.core,
		Active:    env.active,
		Scheduler: env.sched,
		Syscalls:  env.syscalls,
		IRQ:       env.irq,
	})

	return env
}

// makeKernelThread turns the current thread into a kernel-only thread that
// trapped from kernel mode.
func (env *testEnv) makeKernelThread() {
	env.thread.loader = nil
	env.thread.userFlag = false
	env.thread.name = "kernel-thread"
	env.active.regs = &env.thread.kernel
}
