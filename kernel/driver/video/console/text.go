package console

import "sync"

const (
	clearColor = Black
	clearChar  = byte(' ')
)

// Text implements an EGA-style text console backed by a cell buffer. Each
// cell holds the character in its low byte and the foreground/background
// attributes in its high byte.
type Text struct {
	sync.Mutex

	width  uint32
	height uint32

	cells []uint16
}

// NewText returns a cleared text console with the given dimensions.
func NewText(width, height uint32) *Text {
	cons := &Text{
		width:  width,
		height: height,
		cells:  make([]uint16, width*height),
	}
	cons.Clear()
	return cons
}

// Dimensions returns the console width and height in characters.
func (cons *Text) Dimensions() (uint32, uint32) {
	return cons.width, cons.height
}

// Clear blanks the whole console.
func (cons *Text) Clear() {
	cons.Lock()
	clr := uint16(clearColor<<4|clearColor)<<8 | uint16(clearChar)
	for i := range cons.cells {
		cons.cells[i] = clr
	}
	cons.Unlock()
}

// SetCharacter writes ch with foreground fg to cell (x, y).
func (cons *Text) SetCharacter(x, y uint32, ch byte, fg Attr) {
	if x >= cons.width || y >= cons.height {
		return
	}

	cons.Lock()
	cons.cells[y*cons.width+x] = uint16(clearColor<<4|fg)<<8 | uint16(ch)
	cons.Unlock()
}

// Character returns the character and foreground attribute stored at cell
// (x, y).
func (cons *Text) Character(x, y uint32) (byte, Attr) {
	if x >= cons.width || y >= cons.height {
		return 0, clearColor
	}

	cons.Lock()
	cell := cons.cells[y*cons.width+x]
	cons.Unlock()
	return byte(cell), Attr(cell>>8) & 0xf
}

// Row returns the characters of row y as a string.
func (cons *Text) Row(y uint32) string {
	if y >= cons.height {
		return ""
	}

	cons.Lock()
	defer cons.Unlock()

	row := make([]byte, cons.width)
	for x := uint32(0); x < cons.width; x++ {
		row[x] = byte(cons.cells[y*cons.width+x])
	}
	return string(row)
}
