package matrix

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/dnaimage/address"
)

const null = "null"

func empty(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, null)
}

// MarshalText encodes the matrix as CSV, one record per row with one field
// per column. Empty cells are written as empty fields.
func (m *Matrix) MarshalText() ([]byte, error) {
	b := new(bytes.Buffer)
	cw := csv.NewWriter(b)
	record := make([]string, address.Columns)
	for row := 1; row <= address.Rows; row++ {
		for col := 1; col <= address.Columns; col++ {
			record[col-1], _ = m.Get(address.Coordinate{Row: row, Column: col})
		}
		if err := cw.Write(record); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalText decodes a matrix written by MarshalText, replacing any
// existing contents. Empty fields and "null" are left as empty cells;
// anything else is stored as is and left for Fill to validate.
func (m *Matrix) UnmarshalText(b []byte) error {
	for i := range m.cells {
		m.cells[i].Store(nil)
	}

	cr := csv.NewReader(bytes.NewReader(b))
	cr.FieldsPerRecord = address.Columns

	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if row > address.Rows {
			return fmt.Errorf("matrix: more than %d rows", address.Rows)
		}
		for i, s := range record {
			if empty(s) {
				continue
			}
			m.Set(address.Coordinate{Row: row, Column: i + 1}, strings.TrimSpace(s))
		}
	}
}
