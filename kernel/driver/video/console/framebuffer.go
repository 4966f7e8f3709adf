package console

import (
	"image"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Framebuffer is a console that renders characters into an RGBA pixel
// buffer using a fixed-width bitmap font.
type Framebuffer struct {
	sync.Mutex

	ctx  *gg.Context
	face font.Face

	glyphWidth  uint32
	glyphHeight uint32
	ascent      uint32

	// Console dimensions in characters
	widthInChars  uint32
	heightInChars uint32
}

// NewFramebuffer returns a framebuffer console with the given pixel
// dimensions, cleared to black.
func NewFramebuffer(width, height uint32) *Framebuffer {
	face := basicfont.Face7x13
	cons := &Framebuffer{
		ctx:         gg.NewContext(int(width), int(height)),
		face:        face,
		glyphWidth:  uint32(face.Advance),
		glyphHeight: uint32(face.Height),
		ascent:      uint32(face.Ascent),
	}
	cons.widthInChars = width / cons.glyphWidth
	cons.heightInChars = height / cons.glyphHeight
	cons.ctx.SetFontFace(face)
	cons.Clear()

	return cons
}

// Dimensions returns the console width and height in characters.
func (cons *Framebuffer) Dimensions() (uint32, uint32) {
	return cons.widthInChars, cons.heightInChars
}

// Clear fills the framebuffer with the clear color.
func (cons *Framebuffer) Clear() {
	cons.Lock()
	cons.ctx.SetColor(Palette[clearColor])
	cons.ctx.Clear()
	cons.Unlock()
}

// SetCharacter renders ch at cell (x, y) using fg on the clear color.
func (cons *Framebuffer) SetCharacter(x, y uint32, ch byte, fg Attr) {
	if x >= cons.widthInChars || y >= cons.heightInChars {
		return
	}

	cons.Lock()
	defer cons.Unlock()

	px := float64(x * cons.glyphWidth)
	py := float64(y * cons.glyphHeight)

	cons.ctx.SetColor(Palette[clearColor])
	cons.ctx.DrawRectangle(px, py, float64(cons.glyphWidth), float64(cons.glyphHeight))
	cons.ctx.Fill()

	if ch == clearChar {
		return
	}

	cons.ctx.SetColor(Palette[fg&0xf])
	cons.ctx.DrawString(string(rune(ch)), px, py+float64(cons.ascent))
}

// Image returns the rendered framebuffer contents.
func (cons *Framebuffer) Image() image.Image {
	cons.Lock()
	defer cons.Unlock()
	return cons.ctx.Image()
}

// CellBounds returns the pixel rectangle covered by cell (x, y).
func (cons *Framebuffer) CellBounds(x, y uint32) image.Rectangle {
	return image.Rect(
		int(x*cons.glyphWidth), int(y*cons.glyphHeight),
		int((x+1)*cons.glyphWidth), int((y+1)*cons.glyphHeight),
	)
}

// SavePNG writes the framebuffer contents to path as a PNG image.
func (cons *Framebuffer) SavePNG(path string) error {
	cons.Lock()
	defer cons.Unlock()
	return cons.ctx.SavePNG(path)
}
