// Package board routes interrupt requests raised by the board's peripherals
// to their handlers.
package board

import (
	"github.com/vedadux/sweb/kernel/kfmt"
	"github.com/vedadux/sweb/kernel/trap"
)

// Source identifies an interrupt request line of the board's interrupt
// controller.
type Source uint8

// The interrupt sources wired on the supported board.
const (
	Timer Source = iota
	UART1
	Mouse

	// MaxSources is the number of request lines of the controller.
	MaxSources = 32
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case Timer:
		return "timer"
	case UART1:
		return "uart1"
	case Mouse:
		return "mouse"
	default:
		return "irq"
	}
}

// Controller is implemented by interrupt controllers that latch pending
// requests.
type Controller interface {
	// Pending returns a bitmask with one bit set per pending source.
	Pending() uint32

	// Acknowledge clears the pending request of src.
	Acknowledge(src Source)
}

// Handler services an interrupt request.
type Handler func() trap.Outcome

// Board dispatches pending interrupt requests to registered handlers. It
// implements trap.IRQDelegate.
type Board struct {
	ctrl     Controller
	handlers [MaxSources]Handler
}

// New returns a Board that reads pending requests from ctrl.
func New(ctrl Controller) *Board {
	return &Board{ctrl: ctrl}
}

// HandleInterrupt ensures that handler will be invoked whenever src raises a
// request. Registering a nil handler removes any previous registration.
func (b *Board) HandleInterrupt(src Source, handler Handler) {
	if src >= MaxSources {
		return
	}
	b.handlers[src] = handler
}

// HandleIRQ services all pending requests in ascending source order. Each
// request is acknowledged before its handler runs. If a handler returns Halt,
// the remaining requests stay pending and Halt is returned; otherwise the most
// severe outcome is returned.
func (b *Board) HandleIRQ() trap.Outcome {
	var (
		pending = b.ctrl.Pending()
		outcome = trap.Resume
	)

	for src := Source(0); pending != 0 && src < MaxSources; src++ {
		if pending&(1<<src) == 0 {
			continue
		}
		pending &^= 1 << src
		b.ctrl.Acknowledge(src)

		handler := b.handlers[src]
		if handler == nil {
			kfmt.Debug(kfmt.Interrupts, "spurious interrupt from source %d (%s)\n", uint8(src), src)
			continue
		}

		switch handler() {
		case trap.Halt:
			return trap.Halt
		case trap.Terminated:
			outcome = trap.Terminated
		}
	}

	return outcome
}

// HaltingHandler returns a handler for sources that have no driver. It
// reports the source and halts the execution context.
func HaltingHandler(src Source) Handler {
	return func() trap.Outcome {
		kfmt.Printf("arch_%s_irq_handler\n", src)
		return trap.Halt
	}
}

// Latch is a software interrupt controller that keeps pending requests in a
// bitmask.
type Latch struct {
	pending uint32
}

// Raise marks src as pending.
func (l *Latch) Raise(src Source) {
	if src < MaxSources {
		l.pending |= 1 << src
	}
}

// Pending returns the bitmask of pending sources.
func (l *Latch) Pending() uint32 {
	return l.pending
}

// Acknowledge clears the pending request of src.
func (l *Latch) Acknowledge(src Source) {
	l.pending &^= 1 << src
}
