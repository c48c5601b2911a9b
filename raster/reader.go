package raster

import (
	"errors"
	"fmt"
	"image"

	"github.com/bodgit/dnaimage/matrix"
	"github.com/bodgit/dnaimage/nucleotide"
)

// ErrIncomplete is returned when the matrix has not been filled
var ErrIncomplete = errors.New("raster: matrix is incomplete")

// DecodeReport tallies payload groups that could not be unpacked and were
// decoded as zero bits instead.
type DecodeReport struct {
	MalformedGroups int
	// Rows lists, counting from one, every row with a malformed group
	Rows []int
}

type decoder struct {
	m      *matrix.Matrix
	image  *image.Paletted
	report DecodeReport
}

func (d *decoder) decodeRow(y int) error {
	payload, ok := d.m.Row(y + 1)
	if !ok {
		return fmt.Errorf("%w: row %d", ErrIncomplete, y+1)
	}

	symbols, bad, err := nucleotide.UnpackSymbols([]byte(payload), pixelX)
	if err != nil {
		return fmt.Errorf("row %d: %w", y+1, err)
	}
	if bad > 0 {
		d.report.MalformedGroups += bad
		d.report.Rows = append(d.report.Rows, y+1)
	}

	for x, s := range symbols {
		if int(s) >= numColors {
			return fmt.Errorf("%w at position (%d, %d)", ErrUndefinedBinaryCode, x+1, y+1)
		}
		d.image.SetColorIndex(x, y, s)
	}
	return nil
}

func (d *decoder) decode(m *matrix.Matrix) error {
	d.m = m
	d.image = image.NewPaletted(Bounds, Palette)
	for y := 0; y < pixelY; y++ {
		if err := d.decodeRow(y); err != nil {
			return err
		}
	}
	return nil
}

// Decode rebuilds the image from a completed matrix, see matrix.Fill.
// Groups that fail to unpack decode as zero bits and are counted in the
// report rather than failing the decode.
func Decode(m *matrix.Matrix) (*image.Paletted, DecodeReport, error) {
	if !m.Complete() {
		return nil, DecodeReport{}, ErrIncomplete
	}
	var d decoder
	if err := d.decode(m); err != nil {
		return nil, DecodeReport{}, err
	}
	return d.image, d.report, nil
}
