package address

import (
	"testing"

	"github.com/bodgit/dnaimage/nucleotide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	seen := make(map[string]Coordinate)
	for row := 1; row <= Rows; row++ {
		for col := 1; col <= Columns; col++ {
			c := Coordinate{row, col}
			s, err := Encode(c)
			require.NoError(t, err)
			require.Len(t, s, Length)

			prev, dup := seen[s]
			require.False(t, dup, "%v and %v share address %s", prev, c, s)
			seen[s] = c

			got, err := Decode(s)
			require.NoError(t, err)
			assert.Equal(t, c, got)
		}
	}
}

func TestEncode(t *testing.T) {
	// "0011" -> 0000 0000 0001 0001 -> 0x00 0x11
	s, err := Encode(Coordinate{1, 1})
	require.NoError(t, err)
	hi := nucleotide.PackByte(0x00)
	lo := nucleotide.PackByte(0x11)
	assert.Equal(t, string(hi[:])+string(lo[:]), s)
	assert.Equal(t, "GCACAGGACT", s)

	for _, c := range []Coordinate{{0, 1}, {342, 1}, {1, 0}, {1, 6}} {
		_, err := Encode(c)
		assert.ErrorIs(t, err, ErrOutOfRange, c.String())
	}
}

func TestDecodeErrors(t *testing.T) {
	pack := func(hi, lo byte) string {
		a, b := nucleotide.PackByte(hi), nucleotide.PackByte(lo)
		return string(a[:]) + string(b[:])
	}

	tests := []struct {
		name string
		in   string
		err  error
	}{
		{"short", "GCACAGCAG", ErrInvalidAddress},
		{"bad codeword", "GGGCAGCAGA", ErrInvalidAddress},
		{"bad symbol", "GCACANCAGA", ErrInvalidAddress},
		{"not decimal out of range", pack(0x0f, 0xff), ErrOutOfRange},
		{"row zero", pack(0x00, 0x01), ErrOutOfRange},
		{"row too big", pack(0x34, 0x21), ErrOutOfRange},
		{"column zero", pack(0x00, 0x10), ErrOutOfRange},
		{"column six", pack(0x00, 0x16), ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.in)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := Decode("GGGCAGCAGA")
	assert.ErrorIs(t, err, nucleotide.ErrInvalidCodeword)
}

func TestDecodeNotDecimal(t *testing.T) {
	// Digits 0,10,1,1 weigh in as row 0*100+10*10+1
	a, b := nucleotide.PackByte(0x0a), nucleotide.PackByte(0x11)
	c, err := Decode(string(a[:]) + string(b[:]))
	require.NoError(t, err)
	assert.Equal(t, Coordinate{Row: 101, Column: 1}, c)
}
