package trap

import "github.com/vedadux/sweb/kernel/driver/video/console"

// heartbeatGlyphs is the animation shown in the top-left console cell.
var heartbeatGlyphs = [...]byte{'/', '-', '\\', '|'}

// TickScheduler is the part of the scheduler driven by the timer.
type TickScheduler interface {
	IncTicks()
	Schedule()
}

// Timer handles the periodic timer interrupt.
type Timer struct {
	sched   TickScheduler
	display console.Device
	beat    int
}

// NewTimer returns a timer handler that drives sched and animates a
// heartbeat on display. display may be nil.
func NewTimer(sched TickScheduler, display console.Device) *Timer {
	return &Timer{sched: sched, display: display}
}

// OnTick advances the heartbeat, increments the tick counter and invokes the
// scheduler. Any context switch happens inside Schedule.
func (t *Timer) OnTick() Outcome {
	if t.display != nil {
		t.display.SetCharacter(0, 0, heartbeatGlyphs[t.beat], console.Green)
	}
	t.beat = (t.beat + 1) % len(heartbeatGlyphs)

	t.sched.IncTicks()
	t.sched.Schedule()
	return Resume
}
