package strand

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/bodgit/dnaimage/address"
)

// ReadsHeader is the first line written by WriteReads.
const ReadsHeader = "sequence"

// WriteCSV writes the pool as one CSV record per image row, each holding
// that row's five strands.
func WriteCSV(w io.Writer, p Pool) error {
	cw := csv.NewWriter(w)
	record := make([]string, address.Columns)
	for y, row := range p {
		if len(row) != address.Columns {
			return fmt.Errorf("strand: row %d has %d strands", y+1, len(row))
		}
		for i, s := range row {
			record[i] = string(s)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a pool written by WriteCSV. Strands are not validated.
func ReadCSV(r io.Reader) (Pool, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = address.Columns
	cr.ReuseRecord = true

	var p Pool
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]Strand, len(record))
		for i, s := range record {
			row[i] = Strand(s)
		}
		p = append(p, row)
	}
	return p, nil
}

// WriteReads writes strands as a read list: a header line followed by one
// strand per line.
func WriteReads(w io.Writer, strands []Strand) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, ReadsHeader); err != nil {
		return err
	}
	for _, s := range strands {
		if _, err := fmt.Fprintln(bw, s); err != nil {
			return err
		}
	}
	return bw.Flush()
}
