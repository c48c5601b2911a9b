package nucleotide

import "fmt"

const symbolsPerByte = 4

// PackByte writes b as five nucleotides, field order 2|3|3 bits.
func PackByte(b byte) [GroupLength]byte {
	hi := Codeword(b >> 3)
	lo := Codeword(b)
	return [GroupLength]byte{
		Nucleotide(b >> 6),
		hi[0], hi[1],
		lo[0], lo[1],
	}
}

// UnpackGroup is the inverse of PackByte.
func UnpackGroup(g []byte) (byte, error) {
	if len(g) != GroupLength {
		return 0, ErrWrongGroupLength
	}
	a, err := Symbol(g[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedGroup, err)
	}
	b, err := Triple(g[1:3])
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedGroup, err)
	}
	c, err := Triple(g[3:5])
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedGroup, err)
	}
	return a<<6 | b<<3 | c, nil
}

// PackedLength returns the number of nucleotides n 2-bit symbols pack to.
func PackedLength(n int) int {
	return n/symbolsPerByte*GroupLength + n%symbolsPerByte
}

// PackSymbols packs a stream of 2-bit symbols, most significant symbol
// first. Every run of four symbols is packed as a byte and any trailing
// symbols are written one nucleotide each through the 2-bit sub-code.
func PackSymbols(s []byte) []byte {
	out := make([]byte, 0, PackedLength(len(s)))
	full := len(s) - len(s)%symbolsPerByte
	for i := 0; i < full; i += symbolsPerByte {
		g := PackByte(s[i]&0x03<<6 | s[i+1]&0x03<<4 | s[i+2]&0x03<<2 | s[i+3]&0x03)
		out = append(out, g[:]...)
	}
	for _, v := range s[full:] {
		out = append(out, Nucleotide(v))
	}
	return out
}

// UnpackSymbols unpacks n 2-bit symbols from seq. A group that fails to
// unpack is not fatal: its symbols decode as zero and the group is counted
// in bad. The returned error is only set when seq has the wrong length.
func UnpackSymbols(seq []byte, n int) (s []byte, bad int, err error) {
	if len(seq) != PackedLength(n) {
		return nil, 0, fmt.Errorf("%w: %d nucleotides for %d symbols", ErrWrongGroupLength, len(seq), n)
	}
	s = make([]byte, 0, n)
	full := n / symbolsPerByte * GroupLength
	for i := 0; i < full; i += GroupLength {
		b, err := UnpackGroup(seq[i : i+GroupLength])
		if err != nil {
			bad++
		}
		s = append(s, b>>6, b>>4&0x03, b>>2&0x03, b&0x03)
	}
	for _, c := range seq[full:] {
		v, err := Symbol(c)
		if err != nil {
			bad++
		}
		s = append(s, v)
	}
	return s, bad, nil
}
