package cpu

import (
	"fmt"
	"testing"
)

func TestPSR(t *testing.T) {
	specs := []struct {
		psr          PSR
		expMode      string
		expFlagsOK   bool
		expUserLevel bool
	}{
		{ModeUSR, "usr", true, true},
		{ModeSYS, "sys", true, false},
		{ModeSVC | FlagIRQDisable, "svc", false, false},
		{ModeUSR | FlagThumb, "usr", false, true},
		{ModeIRQ | FlagFIQDisable, "irq", false, false},
		{PSR(0x15), "???", true, false},
	}

	for specIndex, spec := range specs {
		t.Run(fmt.Sprint(specIndex), func(t *testing.T) {
			if got := spec.psr.String(); got != spec.expMode {
				t.Errorf("expected mode %q; got %q", spec.expMode, got)
			}
			if got := spec.psr.ControlFlagsClear(); got != spec.expFlagsOK {
				t.Errorf("expected ControlFlagsClear() to return %t; got %t", spec.expFlagsOK, got)
			}
			if got := spec.psr.IsUnprivileged(); got != spec.expUserLevel {
				t.Errorf("expected IsUnprivileged() to return %t; got %t", spec.expUserLevel, got)
			}
		})
	}
}

func TestWithInterrupts(t *testing.T) {
	t.Run("from disabled state", func(t *testing.T) {
		c := NewEmulated()
		c.EnterException()

		var enabledInside bool
		WithInterrupts(c, func() { enabledInside = c.InterruptsEnabled() })

		if !enabledInside {
			t.Error("expected interrupts to be enabled while fn runs")
		}
		if c.InterruptsEnabled() {
			t.Error("expected interrupts to be disabled after WithInterrupts returns")
		}
		if c.EnableCalls != 1 || c.DisableCalls != 1 {
			t.Errorf("expected 1 enable and 1 disable; got %d and %d", c.EnableCalls, c.DisableCalls)
		}
	})

	t.Run("fn panics", func(t *testing.T) {
		c := NewEmulated()
		c.EnterException()

		func() {
			defer func() {
				if err := recover(); err == nil {
					t.Error("expected panic to propagate")
				}
			}()
			WithInterrupts(c, func() { panic("boom") })
		}()

		if c.InterruptsEnabled() {
			t.Error("expected interrupts to be disabled after a panic")
		}
		if c.EnableCalls != 1 || c.DisableCalls != 1 {
			t.Errorf("expected 1 enable and 1 disable; got %d and %d", c.EnableCalls, c.DisableCalls)
		}
	})

	t.Run("already enabled", func(t *testing.T) {
		c := NewEmulated()

		WithInterrupts(c, func() {})

		if !c.InterruptsEnabled() {
			t.Error("expected interrupts to stay enabled")
		}
		if c.EnableCalls != 0 || c.DisableCalls != 0 {
			t.Errorf("expected no mask changes; got %d enables and %d disables", c.EnableCalls, c.DisableCalls)
		}
	})
}

func TestEmulatedMemory(t *testing.T) {
	c := NewEmulated()

	c.WriteWord(0x1000, EncodeSWI(0xffff))
	if got := c.ReadWord(0x1002); got != 0xEF00FFFF {
		t.Fatalf("expected unaligned read to return the containing word; got %x", got)
	}

	c.StoreBytes(0x2001, []byte("hey!"))
	for i, exp := range []byte("hey!") {
		if got := c.LoadByte(0x2001 + uint32(i)); got != exp {
			t.Errorf("byte %d: expected %q; got %q", i, exp, got)
		}
	}
	if got := c.LoadByte(0x2000); got != 0 {
		t.Errorf("expected untouched byte to remain 0; got %x", got)
	}

	c.SetFaultAddress(0xdead0000)
	if c.FaultAddress() != 0xdead0000 {
		t.Error("expected fault address to be latched")
	}

	c.SwitchTTBR0(0x4000)
	if c.ActiveTTBR0() != 0x4000 || c.TTBR0Switches != 1 {
		t.Error("expected TTBR0 to be loaded")
	}

	c.Halt()
	if !c.Halted() {
		t.Error("expected core to be halted")
	}
}
