/*
Package strand assembles addressed strands ready for synthesis.

Each image row of 350 2-bit symbols is packed into a stream of 437
nucleotides which is cut into five chunks of 90, 90, 90, 90 and 77
nucleotides. The address of each chunk is prepended giving four strands of
100 nucleotides and a final strand of 87.
*/
package strand

import (
	"errors"
	"fmt"

	"github.com/bodgit/dnaimage/address"
	"github.com/bodgit/dnaimage/nucleotide"
)

const (
	// Width is the number of 2-bit symbols in an image row
	Width = 350
	// RowLength is the number of nucleotides an image row packs to
	RowLength = 437

	payloadLength     = 90
	lastPayloadLength = RowLength - (address.Columns-1)*payloadLength
)

var errWrongWidth = errors.New("strand: wrong row width")

// PayloadLength returns the payload length of strands in column col.
func PayloadLength(col int) int {
	if col == address.Columns {
		return lastPayloadLength
	}
	return payloadLength
}

// Length returns the full length of strands in column col.
func Length(col int) int {
	return address.Length + PayloadLength(col)
}

// Strand is an address followed by its payload.
type Strand string

// Address returns the address prefix.
func (s Strand) Address() string {
	if len(s) < address.Length {
		return string(s)
	}
	return string(s[:address.Length])
}

// Payload returns everything after the address.
func (s Strand) Payload() string {
	if len(s) < address.Length {
		return ""
	}
	return string(s[address.Length:])
}

// Assemble packs one image row, y counting from zero, into its five
// strands.
func Assemble(y int, symbols []byte) ([]Strand, error) {
	if len(symbols) != Width {
		return nil, fmt.Errorf("%w: %d symbols", errWrongWidth, len(symbols))
	}

	seq := nucleotide.PackSymbols(symbols)

	strands := make([]Strand, 0, address.Columns)
	for col, off := 1, 0; col <= address.Columns; col++ {
		addr, err := address.Encode(address.Coordinate{Row: y + 1, Column: col})
		if err != nil {
			return nil, err
		}
		n := PayloadLength(col)
		strands = append(strands, Strand(addr+string(seq[off:off+n])))
		off += n
	}
	return strands, nil
}

// Pool is the full set of strands for an image, indexed by row then column
// counting from zero.
type Pool [][]Strand

// Strands returns the pool flattened in row-major order.
func (p Pool) Strands() []Strand {
	s := make([]Strand, 0, len(p)*address.Columns)
	for _, row := range p {
		s = append(s, row...)
	}
	return s
}

// AssemblePool assembles every row of a bit-plane in order.
func AssemblePool(rows [][]byte) (Pool, error) {
	if len(rows) != address.Rows {
		return nil, fmt.Errorf("strand: %d rows, want %d", len(rows), address.Rows)
	}
	p := make(Pool, len(rows))
	for y, row := range rows {
		strands, err := Assemble(y, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", y+1, err)
		}
		p[y] = strands
	}
	return p, nil
}
