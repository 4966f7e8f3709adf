package kfmt

import "github.com/vedadux/sweb/kernel"

var (
	// cpuHaltFn is invoked by Panic once the panic banner has been
	// printed. The platform layer replaces it with its halt routine via
	// SetHaltFn; tests mock it.
	cpuHaltFn = parkForever

	errRuntimePanic = &kernel.Error{Module: "rt", Message: "unknown cause"}
)

// SetHaltFn installs the routine that Panic uses to stop the execution
// context. Passing nil restores the default, which parks the caller forever.
func SetHaltFn(fn func()) {
	if fn == nil {
		fn = parkForever
	}
	cpuHaltFn = fn
}

// Panic outputs the supplied error (if not nil) to the console and halts the
// CPU. Calls to Panic do not return unless the installed halt routine does.
func Panic(e interface{}) {
	var err *kernel.Error

	switch t := e.(type) {
	case *kernel.Error:
		err = t
	case string:
		err = &kernel.Error{Module: errRuntimePanic.Module, Message: t}
	case error:
		err = &kernel.Error{Module: errRuntimePanic.Module, Message: t.Error()}
	}

	Printf("\n-----------------------------------\n")
	if err != nil {
		Printf("[%s] unrecoverable error: %s\n", err.Module, err.Message)
	}
	Printf("*** kernel panic: system halted ***")
	Printf("\n-----------------------------------\n")

	cpuHaltFn()
}

func parkForever() {
	select {}
}
