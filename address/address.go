/*
Package address implements the positional prefix written at the start of
every strand.

A coordinate is written as four decimal digits, the row as three zero padded
digits followed by the column as one digit. Each digit is stored as a 4-bit
nibble giving a 16-bit value which is then packed as two bytes with the
nucleotide bit-packer, giving fields of [2, 3, 3, 2, 3, 3] bits written as
[1, 2, 2, 1, 2, 2] nucleotides for a 10 nucleotide address.
*/
package address

import (
	"errors"
	"fmt"

	"github.com/bodgit/dnaimage/nucleotide"
)

const (
	// Rows is the number of strand rows, one per image row
	Rows = 341
	// Columns is the number of strands each image row is split into
	Columns = 5
	// Length is the number of nucleotides in an address
	Length = 2 * nucleotide.GroupLength
)

var (
	// ErrInvalidAddress is returned when an address does not decode
	ErrInvalidAddress = errors.New("address: invalid address")
	// ErrOutOfRange is returned when a coordinate lies outside the matrix
	ErrOutOfRange = errors.New("address: address out of range")
)

// Coordinate identifies one strand slot. Both fields count from one.
type Coordinate struct {
	Row    int
	Column int
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
}

// Valid reports whether c lies within the fixed geometry.
func (c Coordinate) Valid() bool {
	return c.Row >= 1 && c.Row <= Rows && c.Column >= 1 && c.Column <= Columns
}

func bcd(c Coordinate) uint16 {
	return uint16(c.Row/100)<<12 | uint16(c.Row/10%10)<<8 | uint16(c.Row%10)<<4 | uint16(c.Column)
}

// Encode returns the 10 nucleotide address of c.
func Encode(c Coordinate) (string, error) {
	if !c.Valid() {
		return "", fmt.Errorf("%w: %v", ErrOutOfRange, c)
	}
	v := bcd(c)
	hi := nucleotide.PackByte(byte(v >> 8))
	lo := nucleotide.PackByte(byte(v))
	return string(hi[:]) + string(lo[:]), nil
}

// Decode returns the coordinate addressed by the first Length nucleotides
// of s, which must be exactly Length nucleotides long.
func Decode(s string) (Coordinate, error) {
	if len(s) != Length {
		return Coordinate{}, fmt.Errorf("%w: length %d", ErrInvalidAddress, len(s))
	}
	hi, err := nucleotide.UnpackGroup([]byte(s[:nucleotide.GroupLength]))
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	lo, err := nucleotide.UnpackGroup([]byte(s[nucleotide.GroupLength:]))
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	// Nibbles above 9 are weighted as they are, only the range is checked
	digits := [4]int{int(hi >> 4), int(hi & 0x0f), int(lo >> 4), int(lo & 0x0f)}

	c := Coordinate{
		Row:    digits[0]*100 + digits[1]*10 + digits[2],
		Column: digits[3],
	}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("%w: %v", ErrOutOfRange, c)
	}
	return c, nil
}
