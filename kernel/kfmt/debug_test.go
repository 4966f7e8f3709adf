package kfmt

import (
	"bytes"
	"testing"
)

func TestDebugChannels(t *testing.T) {
	defer func(orig uint32) {
		enabledChannels = orig
		SetOutputSink(nil)
	}(enabledChannels)

	var buf bytes.Buffer
	SetOutputSink(&buf)

	EnableChannel(PageFault, true)
	EnableChannel(Interrupts, false)

	Debug(PageFault, "Address: %x\nnext line\n", 0x1000)
	Debug(Interrupts, "muted\n")

	exp := "[PAGEFAULT] Address: 1000\n[PAGEFAULT] next line\n"
	if got := buf.String(); got != exp {
		t.Fatalf("expected to get %q; got %q", exp, got)
	}

	EnableChannel(numChannels, true)
	if ChannelEnabled(numChannels) {
		t.Fatal("expected out of range channel to remain disabled")
	}
}

func TestSetChannels(t *testing.T) {
	defer func(orig uint32) { enabledChannels = orig }(enabledChannels)

	specs := []struct {
		input  string
		expErr bool
		exp    []Channel
	}{
		{"pagefault, syscall", false, []Channel{PageFault, Syscall}},
		{"all", false, []Channel{PageFault, Interrupts, Syscall, Scheduler, Loader}},
		{"none", false, nil},
		{"", false, nil},
		{"A_INTERRUPTS", false, []Channel{Interrupts}},
		{"bogus", true, nil},
	}

	for _, spec := range specs {
		enabledChannels = 0
		err := SetChannels(spec.input)
		if spec.expErr {
			if err != errUnknownChannel {
				t.Errorf("[%q] expected errUnknownChannel; got %v", spec.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("[%q] unexpected error: %v", spec.input, err)
			continue
		}

		var expMask uint32
		for _, ch := range spec.exp {
			expMask |= 1 << ch
		}
		if enabledChannels != expMask {
			t.Errorf("[%q] expected mask %b; got %b", spec.input, expMask, enabledChannels)
		}
	}

	if got := Channel(200).String(); got != "UNKNOWN" {
		t.Fatalf("expected UNKNOWN; got %q", got)
	}
}
