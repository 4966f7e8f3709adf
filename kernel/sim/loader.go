package sim

import (
	"github.com/vedadux/sweb/kernel"
	"github.com/vedadux/sweb/kernel/kfmt"
	"github.com/vedadux/sweb/kernel/mem"
)

// PageSize is the size of a demand-loaded page.
const PageSize = uint32(mem.PageSize)

var errNoSegment = &kernel.Error{Module: "loader", Message: "address is not backed by any segment of the executable"}

// Segment is a half-open virtual address range [Start, End) of the process
// image.
type Segment struct {
	Start uint32
	End   uint32
}

func (s Segment) contains(addr uint32) bool {
	return addr >= s.Start && addr < s.End
}

// Pages returns the number of pages spanned by the segment.
func (s Segment) Pages() uint32 {
	if s.End <= s.Start {
		return 0
	}
	return mem.PageNumber(s.End-1) - mem.PageNumber(s.Start) + 1
}

// Loader keeps track of which pages of a process image have been mapped.
// Pages are keyed by page number.
type Loader struct {
	ttbr0    uint32
	segments []Segment
	pages    map[uint32]bool
}

// NewLoader returns a loader for an address space rooted at ttbr0 whose
// image consists of the given segments.
func NewLoader(ttbr0 uint32, segments ...Segment) *Loader {
	return &Loader{
		ttbr0:    ttbr0,
		segments: segments,
		pages:    make(map[uint32]bool),
	}
}

// PageDirectory returns the physical address of the process page directory.
func (l *Loader) PageDirectory() uint32 {
	return l.ttbr0
}

// CheckAddressValid returns true if the page containing addr is mapped.
func (l *Loader) CheckAddressValid(addr uint32) bool {
	return l.pages[mem.PageNumber(addr)]
}

// LoadPage maps the page containing addr if it belongs to a segment.
func (l *Loader) LoadPage(addr uint32) error {
	for _, seg := range l.segments {
		if seg.contains(addr) {
			kfmt.Debug(kfmt.Loader, "mapping page %x of address space %x\n", mem.PageAlignDown(addr), l.ttbr0)
			l.pages[mem.PageNumber(addr)] = true
			return nil
		}
	}

	return errNoSegment
}

// MappedPages returns the number of pages mapped so far.
func (l *Loader) MappedPages() int {
	return len(l.pages)
}

// ImagePages returns the number of pages needed to back the whole image.
func (l *Loader) ImagePages() uint32 {
	var pages uint32
	for _, seg := range l.segments {
		pages += seg.Pages()
	}
	return pages
}
