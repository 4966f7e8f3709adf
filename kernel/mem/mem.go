// Package mem defines the memory sizes and page geometry of the ARM target.
package mem

const (
	// PageShift is equal to log2(PageSize). This constant is used when
	// we need to convert a virtual address to a page number (shift right by PageShift)
	// and vice-versa.
	PageShift = 12

	// PageSize defines the size of a small page in bytes.
	PageSize = Size(1 << PageShift)

	// PageDirectorySize is the size of a first level translation table.
	// TTBR0 must be aligned to it.
	PageDirectorySize = 16 * Kb
)

// Size represents a memory block size in bytes.
type Size uint64

// Common memory block sizes
const (
	Byte Size = 1
	Kb        = 1024 * Byte
	Mb        = 1024 * Kb
	Gb        = 1024 * Mb
)

// PageAlignDown returns the address of the page containing addr.
func PageAlignDown(addr uint32) uint32 {
	return addr &^ uint32(PageSize-1)
}

// PageNumber returns the index of the page containing addr.
func PageNumber(addr uint32) uint32 {
	return addr >> PageShift
}
