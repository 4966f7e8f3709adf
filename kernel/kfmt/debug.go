package kfmt

import (
	"strings"

	"github.com/vedadux/sweb/kernel"
)

// Channel identifies a debug output channel. Each kernel subsystem logs its
// diagnostics to its own channel so that noisy subsystems can be muted.
type Channel uint8

// The list of supported debug channels.
const (
	PageFault Channel = iota
	Interrupts
	Syscall
	Scheduler
	Loader

	numChannels
)

var (
	channelNames = [numChannels]string{
		PageFault:  "PAGEFAULT",
		Interrupts: "A_INTERRUPTS",
		Syscall:    "SYSCALL",
		Scheduler:  "SCHEDULER",
		Loader:     "LOADER",
	}

	// enabledChannels is a bitmask with one bit per Channel.
	enabledChannels uint32 = 1<<PageFault | 1<<Syscall

	errUnknownChannel = &kernel.Error{Module: "kfmt", Message: "unknown debug channel"}
)

// String returns the channel name as it appears in debug output.
func (ch Channel) String() string {
	if ch >= numChannels {
		return "UNKNOWN"
	}
	return channelNames[ch]
}

// EnableChannel turns debug output for ch on or off.
func EnableChannel(ch Channel, enabled bool) {
	if ch >= numChannels {
		return
	}

	if enabled {
		enabledChannels |= 1 << ch
	} else {
		enabledChannels &^= 1 << ch
	}
}

// ChannelEnabled returns true if debug output for ch is enabled.
func ChannelEnabled(ch Channel) bool {
	return ch < numChannels && enabledChannels&(1<<ch) != 0
}

// SetChannels replaces the set of enabled channels with the comma-separated
// list of channel names in list. The names "all" and "none" are also
// accepted.
func SetChannels(list string) *kernel.Error {
	var mask uint32

	for _, name := range strings.Split(list, ",") {
		name = strings.ToUpper(strings.TrimSpace(name))
		switch name {
		case "":
			continue
		case "ALL":
			mask = 1<<numChannels - 1
			continue
		case "NONE":
			mask = 0
			continue
		}

		found := false
		for ch, chName := range channelNames {
			if chName == name {
				mask |= 1 << uint(ch)
				found = true
				break
			}
		}
		if !found {
			return errUnknownChannel
		}
	}

	enabledChannels = mask
	return nil
}

// Debug formats a message and writes it to the output sink if ch is enabled.
// Every line of the message is prefixed with the channel name.
func Debug(ch Channel, format string, args ...interface{}) {
	if !ChannelEnabled(ch) {
		return
	}

	w := PrefixWriter{
		Sink:   GetOutputSink(),
		Prefix: []byte("[" + ch.String() + "] "),
	}
	Fprintf(&w, format, args...)
}
