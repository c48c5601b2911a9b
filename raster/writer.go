package raster

import (
	"fmt"
	"image"
)

type encoder struct {
	plane Plane
}

func (e *encoder) encode(m image.Image) error {
	b := m.Bounds()
	e.plane = make(Plane, pixelY)
	for y := 0; y < pixelY; y++ {
		row := make([]byte, pixelX)
		for x := 0; x < pixelX; x++ {
			s, err := SymbolOf(m.At(b.Min.X+x, b.Min.Y+y))
			if err != nil {
				return fmt.Errorf("%w at position (%d, %d)", err, x+1, y+1)
			}
			row[x] = s
		}
		e.plane[y] = row
	}
	return nil
}

// Encode maps every pixel of m to its symbol, row-major. It fails on the
// first pixel outside the palette.
func Encode(m image.Image) (Plane, error) {
	b := m.Bounds()
	if b.Dx() != pixelX || b.Dy() != pixelY {
		return nil, fmt.Errorf("%w: %dx%d", ErrWrongSize, b.Dx(), b.Dy())
	}

	var e encoder
	if err := e.encode(m); err != nil {
		return nil, err
	}
	return e.plane, nil
}
