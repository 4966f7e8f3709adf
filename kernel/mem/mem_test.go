package mem

import "testing"

func TestPageAddressing(t *testing.T) {
	specs := []struct {
		addr       uint32
		expAligned uint32
		expNumber  uint32
	}{
		{0, 0, 0},
		{0x00000fff, 0, 0},
		{0x01002010, 0x01002000, 0x1002},
		{0xffffffff, 0xfffff000, 0xfffff},
	}

	for specIndex, spec := range specs {
		if got := PageAlignDown(spec.addr); got != spec.expAligned {
			t.Errorf("[spec %d] expected aligned address %x; got %x", specIndex, spec.expAligned, got)
		}
		if got := PageNumber(spec.addr); got != spec.expNumber {
			t.Errorf("[spec %d] expected page number %x; got %x", specIndex, spec.expNumber, got)
		}
	}
}
