package sim

import (
	"github.com/vedadux/sweb/kernel/kfmt"
	"github.com/vedadux/sweb/kernel/trap"
)

// Scheduler is a round-robin scheduler. Dead threads are reaped the next
// time Schedule runs; the idle thread runs when nothing else is runnable.
type Scheduler struct {
	active  *trap.ActiveContext
	idle    *Thread
	threads []*Thread
	current *Thread
	ticks   uint32
}

// NewScheduler returns a scheduler that switches active between threads.
func NewScheduler(active *trap.ActiveContext, idle *Thread) *Scheduler {
	return &Scheduler{active: active, idle: idle}
}

// AddThread makes t runnable.
func (s *Scheduler) AddThread(t *Thread) {
	s.threads = append(s.threads, t)
}

// Threads returns the runnable threads, excluding the idle thread.
func (s *Scheduler) Threads() []*Thread {
	return s.threads
}

// CurrentThread returns the running thread or nil before the first call to
// Schedule.
func (s *Scheduler) CurrentThread() trap.Thread {
	if s.current == nil {
		return nil
	}
	return s.current
}

// Current returns the running thread.
func (s *Scheduler) Current() *Thread {
	return s.current
}

// IncTicks advances the tick counter.
func (s *Scheduler) IncTicks() {
	s.ticks++
}

// Ticks returns the number of timer ticks observed so far.
func (s *Scheduler) Ticks() uint32 {
	return s.ticks
}

// Schedule selects the next live thread after the current one and makes its
// resume context active.
func (s *Scheduler) Schedule() {
	start := 0
	for i, t := range s.threads {
		if t == s.current {
			start = i + 1
			break
		}
	}

	next := s.idle
	for i := 0; i < len(s.threads); i++ {
		if t := s.threads[(start+i)%len(s.threads)]; t.Alive() {
			next = t
			break
		}
	}

	s.reap()

	if next != s.current {
		kfmt.Debug(kfmt.Scheduler, "switching to thread %d:%s\n", next.ID(), next.Name())
	}
	s.current = next
	s.active.Switch(next.resumeContext())
}

// reap drops dead threads from the run queue.
func (s *Scheduler) reap() {
	live := s.threads[:0]
	for _, t := range s.threads {
		if t.Alive() {
			live = append(live, t)
		}
	}
	s.threads = live
}
