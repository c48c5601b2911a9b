/*
Package matrix implements the sparse row by column matrix that strands read
back from a pool are reassembled into.

Each cell holds at most one payload. A cell is written at most once: the
first read to land on a coordinate wins and later reads for the same
coordinate are discarded, never merged or voted on. Setting a cell is a
single compare-and-swap so the matrix may be filled from several goroutines.
*/
package matrix

import (
	"strings"
	"sync/atomic"

	"github.com/bodgit/dnaimage/address"
	"github.com/bodgit/dnaimage/nucleotide"
	"github.com/bodgit/dnaimage/strand"
)

// Matrix is the address.Rows by address.Columns grid of payloads.
type Matrix struct {
	cells [address.Rows * address.Columns]atomic.Pointer[string]
}

// New returns an empty matrix
func New() *Matrix {
	return new(Matrix)
}

func index(c address.Coordinate) int {
	return (c.Row-1)*address.Columns + c.Column - 1
}

// Get returns the payload stored at c, if any.
func (m *Matrix) Get(c address.Coordinate) (string, bool) {
	if !c.Valid() {
		return "", false
	}
	if p := m.cells[index(c)].Load(); p != nil {
		return *p, true
	}
	return "", false
}

// Set stores payload at c unless the cell is already occupied. It reports
// whether the payload was stored.
func (m *Matrix) Set(c address.Coordinate, payload string) bool {
	if !c.Valid() {
		return false
	}
	return m.cells[index(c)].CompareAndSwap(nil, &payload)
}

// Length returns the number of occupied cells
func (m *Matrix) Length() int {
	var n int
	for i := range m.cells {
		if m.cells[i].Load() != nil {
			n++
		}
	}
	return n
}

// Row returns the concatenated payloads of row, counting from one, and
// whether every cell in the row was present.
func (m *Matrix) Row(row int) (string, bool) {
	var sb strings.Builder
	sb.Grow(strand.RowLength)
	complete := true
	for col := 1; col <= address.Columns; col++ {
		p, ok := m.Get(address.Coordinate{Row: row, Column: col})
		if !ok {
			complete = false
		}
		sb.WriteString(p)
	}
	return sb.String(), complete
}

// Sentinel returns the placeholder payload written into empty cells of
// column col.
func Sentinel(col int) string {
	return strings.Repeat(string(nucleotide.Sentinel), strand.PayloadLength(col))
}

// Fill writes the sentinel payload into every cell that is empty or holds a
// payload of the wrong length for its column. It returns the coordinates it
// replaced in row-major order.
func (m *Matrix) Fill() []address.Coordinate {
	var filled []address.Coordinate
	for row := 1; row <= address.Rows; row++ {
		for col := 1; col <= address.Columns; col++ {
			c := address.Coordinate{Row: row, Column: col}
			cell := &m.cells[index(c)]
			p := cell.Load()
			if p != nil && len(*p) == strand.PayloadLength(col) {
				continue
			}
			s := Sentinel(col)
			cell.Store(&s)
			filled = append(filled, c)
		}
	}
	return filled
}

// Complete reports whether every cell holds a payload of the right length.
func (m *Matrix) Complete() bool {
	for row := 1; row <= address.Rows; row++ {
		for col := 1; col <= address.Columns; col++ {
			p, ok := m.Get(address.Coordinate{Row: row, Column: col})
			if !ok || len(p) != strand.PayloadLength(col) {
				return false
			}
		}
	}
	return true
}
