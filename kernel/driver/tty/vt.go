// Package tty provides a terminal that renders a byte stream onto a console
// device.
package tty

import (
	"sync"

	"github.com/vedadux/sweb/kernel/driver/video/console"
)

const (
	defaultFg = console.LightGrey
	tabWidth  = 4
)

type cell struct {
	ch   byte
	attr console.Attr
}

// Vt is a simple terminal that processes LF, CR, TAB and BS characters. It
// owns the console rows from its top row downwards; rows above it (such as
// the heartbeat row) are never touched. Vt keeps a copy of its cells so it
// can scroll on devices that cannot move their contents.
type Vt struct {
	mu   sync.Mutex
	cons console.Device

	width  uint32
	height uint32
	top    uint32

	curX    uint32
	curY    uint32
	curAttr console.Attr

	cells []cell
}

// NewVt returns a terminal drawing on cons starting at row top.
func NewVt(cons console.Device, top uint32) *Vt {
	w, h := cons.Dimensions()
	if top >= h {
		top = h - 1
	}

	t := &Vt{
		cons:    cons,
		width:   w,
		height:  h - top,
		top:     top,
		curAttr: defaultFg,
		cells:   make([]cell, w*(h-top)),
	}
	t.clear()
	return t
}

// Dimensions returns the terminal width and height in characters.
func (t *Vt) Dimensions() (uint32, uint32) {
	return t.width, t.height
}

// SetColor sets the foreground color for subsequent writes.
func (t *Vt) SetColor(fg console.Attr) {
	t.mu.Lock()
	t.curAttr = fg
	t.mu.Unlock()
}

// Clear clears the terminal.
func (t *Vt) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.clear()
}

// Position returns the current cursor position (x, y).
func (t *Vt) Position() (uint32, uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.curX, t.curY
}

// SetPosition sets the current cursor position to (x,y).
func (t *Vt) SetPosition(x, y uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if x >= t.width {
		x = t.width - 1
	}

	if y >= t.height {
		y = t.height - 1
	}

	t.curX, t.curY = x, y
}

// Write implements io.Writer.
func (t *Vt) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, b := range data {
		t.writeByte(b)
	}

	return len(data), nil
}

// WriteByte implements io.ByteWriter.
func (t *Vt) WriteByte(b byte) error {
	t.mu.Lock()
	t.writeByte(b)
	t.mu.Unlock()
	return nil
}

func (t *Vt) writeByte(b byte) {
	switch b {
	case '\r':
		t.cr()
	case '\n':
		t.cr()
		t.lf()
	case '\b':
		if t.curX > 0 {
			t.curX--
			t.put(t.curX, t.curY, ' ')
		}
	case '\t':
		for i := 0; i < tabWidth; i++ {
			t.advance(' ')
		}
	default:
		t.advance(b)
	}
}

func (t *Vt) advance(b byte) {
	t.put(t.curX, t.curY, b)
	t.curX++
	if t.curX == t.width {
		t.cr()
		t.lf()
	}
}

func (t *Vt) put(x, y uint32, b byte) {
	t.cells[y*t.width+x] = cell{ch: b, attr: t.curAttr}
	t.cons.SetCharacter(x, t.top+y, b, t.curAttr)
}

func (t *Vt) clear() {
	for y := uint32(0); y < t.height; y++ {
		for x := uint32(0); x < t.width; x++ {
			t.put(x, y, ' ')
		}
	}
	t.curX, t.curY = 0, 0
}

// cr resets the x coordinate of the terminal cursor to 0.
func (t *Vt) cr() {
	t.curX = 0
}

// lf advances the y coordinate of the terminal cursor by one line scrolling
// the terminal contents if the end of the last terminal line is reached.
func (t *Vt) lf() {
	if t.curY+1 < t.height {
		t.curY++
		return
	}

	copy(t.cells, t.cells[t.width:])
	for i := range t.cells[len(t.cells)-int(t.width):] {
		t.cells[len(t.cells)-int(t.width)+i] = cell{ch: ' ', attr: t.curAttr}
	}

	for y := uint32(0); y < t.height; y++ {
		for x := uint32(0); x < t.width; x++ {
			c := t.cells[y*t.width+x]
			t.cons.SetCharacter(x, t.top+y, c.ch, c.attr)
		}
	}
}
