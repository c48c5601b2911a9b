package matrix

import (
	"errors"
	"fmt"

	"github.com/bodgit/dnaimage/address"
	"github.com/bodgit/dnaimage/strand"
)

var (
	// ErrLength is returned for a read that is neither 100 nor 87 long
	ErrLength = errors.New("matrix: wrong read length")
	// ErrShape is returned when a read's length does not match the column
	// its address decodes to
	ErrShape = errors.New("matrix: read length does not match column")
	// ErrDuplicateWrite is returned when the addressed cell is occupied
	ErrDuplicateWrite = errors.New("matrix: cell already written")
)

// Check validates a single read and returns where its payload belongs.
// The length is checked before any attempt to decode the address.
func Check(read string) (address.Coordinate, string, error) {
	full, last := strand.Length(1), strand.Length(address.Columns)
	if len(read) != full && len(read) != last {
		return address.Coordinate{}, "", fmt.Errorf("%w: %d", ErrLength, len(read))
	}

	s := strand.Strand(read)
	c, err := address.Decode(s.Address())
	if err != nil {
		return address.Coordinate{}, "", err
	}

	if len(read) != strand.Length(c.Column) {
		return address.Coordinate{}, "", fmt.Errorf("%w: length %d at %v", ErrShape, len(read), c)
	}

	return c, s.Payload(), nil
}

// Add validates read and stores its payload. A nil error means the payload
// was stored.
func (m *Matrix) Add(read string) error {
	c, payload, err := Check(read)
	if err != nil {
		return err
	}
	return m.Put(c, payload)
}

// Put is Set for a payload already validated by Check, reporting an
// occupied cell as ErrDuplicateWrite.
func (m *Matrix) Put(c address.Coordinate, payload string) error {
	if !m.Set(c, payload) {
		return fmt.Errorf("%w: %v", ErrDuplicateWrite, c)
	}
	return nil
}

// Report tallies the outcome of every read offered to a matrix.
type Report struct {
	Reads         int
	Accepted      int
	LengthErrors  int
	AddressErrors int
	ShapeErrors   int
	Duplicates    int
}

// Record counts the outcome err of one read as returned by Add.
func (r *Report) Record(err error) {
	r.Reads++
	switch {
	case err == nil:
		r.Accepted++
	case errors.Is(err, ErrLength):
		r.LengthErrors++
	case errors.Is(err, address.ErrInvalidAddress), errors.Is(err, address.ErrOutOfRange):
		r.AddressErrors++
	case errors.Is(err, ErrShape):
		r.ShapeErrors++
	case errors.Is(err, ErrDuplicateWrite):
		r.Duplicates++
	}
}

// Merge adds the counts from o to r.
func (r *Report) Merge(o Report) {
	r.Reads += o.Reads
	r.Accepted += o.Accepted
	r.LengthErrors += o.LengthErrors
	r.AddressErrors += o.AddressErrors
	r.ShapeErrors += o.ShapeErrors
	r.Duplicates += o.Duplicates
}

// Discarded returns the number of reads that were not stored.
func (r Report) Discarded() int {
	return r.Reads - r.Accepted
}

func (r Report) String() string {
	return fmt.Sprintf("%d reads, %d accepted, %d length errors, %d address errors, %d shape errors, %d duplicates",
		r.Reads, r.Accepted, r.LengthErrors, r.AddressErrors, r.ShapeErrors, r.Duplicates)
}

// Reconstruct offers every read to m in order and returns the tally.
func Reconstruct(m *Matrix, reads []string) Report {
	var r Report
	for _, read := range reads {
		r.Record(m.Add(read))
	}
	return r
}
