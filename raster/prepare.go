package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/nfnt/resize"
)

func valid(m image.Image) bool {
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, err := SymbolOf(m.At(x, y)); err != nil {
				return false
			}
		}
	}
	return true
}

// Prepare returns a copy of m that Encode accepts. The picture is scaled to
// 350 by 341, reduced to four colors and each of those is replaced with the
// nearest palette color. A picture already in the right size and palette is
// copied unchanged.
func Prepare(m image.Image) *image.Paletted {
	b := m.Bounds()
	if b.Dx() != pixelX || b.Dy() != pixelY {
		m = resize.Resize(pixelX, pixelY, m, resize.NearestNeighbor)
		b = m.Bounds()
	}

	pm := image.NewPaletted(Bounds, Palette)

	if valid(m) {
		draw.Draw(pm, Bounds, m, b.Min, draw.Src)
		return pm
	}

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, numColors), m)

	// Draw onto the reduced palette then snap each of its colors to the
	// nearest fixed one
	tmp := image.NewPaletted(Bounds, p)
	draw.Draw(tmp, Bounds, m, b.Min, draw.Src)

	lut := make([]uint8, len(p))
	for i, c := range p {
		lut[i] = uint8(Palette.Index(c))
	}

	for y := 0; y < pixelY; y++ {
		for x := 0; x < pixelX; x++ {
			pm.SetColorIndex(x, y, lut[tmp.ColorIndexAt(x, y)])
		}
	}

	return pm
}
