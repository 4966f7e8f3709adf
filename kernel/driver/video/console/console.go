// Package console provides the display devices used for kernel diagnostics:
// an in-memory text console and a pixel framebuffer console.
package console

import "image/color"

// Attr defines a color attribute.
type Attr uint8

// The set of attributes that can be passed to SetCharacter().
const (
	Black Attr = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGrey
	Grey
	LightBlue
	LightGreen
	LightCyan
	LightRed
	LightMagenta
	LightBrown
	White
)

// Palette maps each Attr to its RGB value (standard 16-color EGA palette).
var Palette = color.Palette{
	color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	color.RGBA{R: 0x00, G: 0x00, B: 0xaa, A: 0xff},
	color.RGBA{R: 0x00, G: 0xaa, B: 0x00, A: 0xff},
	color.RGBA{R: 0x00, G: 0xaa, B: 0xaa, A: 0xff},
	color.RGBA{R: 0xaa, G: 0x00, B: 0x00, A: 0xff},
	color.RGBA{R: 0xaa, G: 0x00, B: 0xaa, A: 0xff},
	color.RGBA{R: 0xaa, G: 0x55, B: 0x00, A: 0xff},
	color.RGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff},
	color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff},
	color.RGBA{R: 0x55, G: 0x55, B: 0xff, A: 0xff},
	color.RGBA{R: 0x55, G: 0xff, B: 0x55, A: 0xff},
	color.RGBA{R: 0x55, G: 0xff, B: 0xff, A: 0xff},
	color.RGBA{R: 0xff, G: 0x55, B: 0x55, A: 0xff},
	color.RGBA{R: 0xff, G: 0x55, B: 0xff, A: 0xff},
	color.RGBA{R: 0xff, G: 0xff, B: 0x55, A: 0xff},
	color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

// The Device interface is implemented by objects that can function as
// physical consoles. Coordinates are 0-based character cells.
type Device interface {
	// Dimensions returns the width and height of the console in characters.
	Dimensions() (uint32, uint32)

	// SetCharacter writes ch to cell (x, y) using fg as the foreground
	// color. Writes outside the console are ignored.
	SetCharacter(x, y uint32, ch byte, fg Attr)

	// Clear blanks the whole console.
	Clear()
}
