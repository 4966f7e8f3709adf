package trap

// RepeatFaultLimit is the number of consecutive repeats of the same fault
// address after which the faulting thread is terminated. The first fault at
// an address is not a repeat, so termination happens on the sixth
// consecutive fault.
const RepeatFaultLimit = 5

// FaultTracker remembers the last fault address to detect threads that keep
// faulting on the same address without making progress.
type FaultTracker struct {
	seen        bool
	lastAddress uint32
	repeats     uint32
}

// Record registers a fault at addr and returns true if the thread that
// triggered it should be terminated. Once the limit triggers, the tracker
// forgets addr: the next fault, at any address, is treated as a first fault
// and the thread that raises it again gets RepeatFaultLimit repeats.
func (t *FaultTracker) Record(addr uint32) bool {
	if !t.seen || addr != t.lastAddress {
		t.seen = true
		t.lastAddress = addr
		t.repeats = 0
		return false
	}

	t.repeats++
	if t.repeats < RepeatFaultLimit {
		return false
	}

	t.seen = false
	t.repeats = 0
	return true
}

// LastAddress returns the most recently recorded fault address and the
// number of consecutive repeats observed for it.
func (t *FaultTracker) LastAddress() (uint32, uint32) {
	return t.lastAddress, t.repeats
}
