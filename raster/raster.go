/*
Package raster converts between images and the 2-bit symbol planes that are
written as strands.

The format is defined as 350 by 341 pixels exactly using a fixed palette of
four colors, white, black, red and blue, stored as the 2-bit symbols 00, 01,
10 and 11 respectively. Any other color is rejected; use Prepare to map an
arbitrary picture onto the palette first.
*/
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/bodgit/dnaimage/address"
	"github.com/bodgit/dnaimage/strand"
)

const (
	pixelX    = strand.Width
	pixelY    = address.Rows
	numColors = 4
)

var (
	// ErrUnknownColor is returned for a pixel outside the palette
	ErrUnknownColor = errors.New("raster: unknown color")
	// ErrUndefinedBinaryCode is returned for a symbol with no palette entry
	ErrUndefinedBinaryCode = errors.New("raster: undefined binary code")
	// ErrWrongSize is returned for an image that is not 350 by 341
	ErrWrongSize = errors.New("raster: image is wrong size")
)

// Palette holds the four colors, indexed by symbol.
var Palette = color.Palette{
	color.RGBA{0xff, 0xff, 0xff, 0xff},
	color.RGBA{0x00, 0x00, 0x00, 0xff},
	color.RGBA{0xff, 0x00, 0x00, 0xff},
	color.RGBA{0x0e, 0x6e, 0xb8, 0xff},
}

// Bounds is the rectangle every raster occupies.
var Bounds = image.Rect(0, 0, pixelX, pixelY)

// SymbolOf returns the 2-bit symbol for c. Only the straight, not alpha
// premultiplied, red, green and blue channels are compared.
func SymbolOf(c color.Color) (byte, error) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	for i, p := range Palette {
		pc := p.(color.RGBA)
		if n.R == pc.R && n.G == pc.G && n.B == pc.B {
			return byte(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %d,%d,%d", ErrUnknownColor, n.R, n.G, n.B)
}

// ColorOf returns the palette color for symbol s.
func ColorOf(s byte) (color.RGBA, error) {
	if int(s) >= numColors {
		return color.RGBA{}, fmt.Errorf("%w: %02b", ErrUndefinedBinaryCode, s)
	}
	return Palette[s].(color.RGBA), nil
}

// Plane is a bit-plane of 2-bit symbols, indexed by row then column.
type Plane [][]byte
