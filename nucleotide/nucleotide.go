/*
Package nucleotide implements the alphabet used to write binary data as DNA.

Two sub-codes are interleaved. A 2-bit value is written as a single
nucleotide and a 3-bit value is written as one of eight dinucleotide
codewords. No other two letter sequence is a valid codeword so "GG" or "AT"
never appear in well formed data.

A byte is split into fields of 2, 3 and 3 bits from the most significant end
and written as 1 + 2 + 2 = 5 nucleotides, or 1.6 bits per nucleotide.
*/
package nucleotide

import "errors"

// The four nucleotides, indexed by their 2-bit value.
const (
	G byte = 'G'
	C byte = 'C'
	T byte = 'T'
	A byte = 'A'
)

const (
	// GroupLength is the number of nucleotides a single byte packs to
	GroupLength = 5

	// Sentinel is the nucleotide for the all-zero 2-bit value
	Sentinel = G
)

var (
	// ErrInvalidSymbol is returned when a nucleotide is not one of G, C, T or A
	ErrInvalidSymbol = errors.New("nucleotide: invalid symbol")
	// ErrInvalidCodeword is returned for a dinucleotide outside the codeword set
	ErrInvalidCodeword = errors.New("nucleotide: invalid codeword")
	// ErrWrongGroupLength is returned when a group is not exactly five nucleotides
	ErrWrongGroupLength = errors.New("nucleotide: wrong group length")
	// ErrMalformedGroup is returned when any field of a group fails to decode
	ErrMalformedGroup = errors.New("nucleotide: malformed group")
)

var nucleotides = [4]byte{G, C, T, A}

var codewords = [8][2]byte{
	{C, A},
	{C, T},
	{G, A},
	{G, T},
	{T, C},
	{T, G},
	{A, C},
	{A, G},
}

// Reverse lookups, 0xff marks an unused entry
var (
	symbols [256]byte
	triples [256][256]byte
)

func init() {
	for i := range symbols {
		symbols[i] = 0xff
	}
	for i := range triples {
		for j := range triples[i] {
			triples[i][j] = 0xff
		}
	}
	for v, n := range nucleotides {
		symbols[n] = byte(v)
	}
	for v, cw := range codewords {
		triples[cw[0]][cw[1]] = byte(v)
	}
}

// Nucleotide returns the nucleotide for the low two bits of v.
func Nucleotide(v byte) byte {
	return nucleotides[v&0x03]
}

// Symbol returns the 2-bit value of nucleotide n.
func Symbol(n byte) (byte, error) {
	if v := symbols[n]; v != 0xff {
		return v, nil
	}
	return 0, ErrInvalidSymbol
}

// Codeword returns the dinucleotide for the low three bits of v.
func Codeword(v byte) [2]byte {
	return codewords[v&0x07]
}

// Triple returns the 3-bit value of the dinucleotide cw.
func Triple(cw []byte) (byte, error) {
	if len(cw) != 2 {
		return 0, ErrInvalidCodeword
	}
	if v := triples[cw[0]][cw[1]]; v != 0xff {
		return v, nil
	}
	return 0, ErrInvalidCodeword
}
