package nucleotide

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackByteRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		g := PackByte(byte(i))
		b, err := UnpackGroup(g[:])
		require.NoError(t, err)
		assert.Equal(t, byte(i), b)
	}
}

func TestPackByte(t *testing.T) {
	tests := []struct {
		in   byte
		want string
	}{
		{0x00, "GCACA"},
		{0xff, "AAGAG"},
		// 01 010 011
		{0x53, "CGAGT"},
	}
	for _, tt := range tests {
		g := PackByte(tt.in)
		assert.Equal(t, tt.want, string(g[:]))
	}
}

func TestCodewordClosure(t *testing.T) {
	valid := make(map[string]bool)
	for _, cw := range codewords {
		valid[string(cw[:])] = true
	}
	assert.Len(t, valid, 8)

	for v := byte(0); v < 8; v++ {
		cw := Codeword(v)
		assert.True(t, valid[string(cw[:])])
		got, err := Triple(cw[:])
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	for _, a := range []byte("GCTA") {
		for _, b := range []byte("GCTA") {
			cw := []byte{a, b}
			_, err := Triple(cw)
			if valid[string(cw)] {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidCodeword, string(cw))
			}
		}
	}
}

func TestSymbol(t *testing.T) {
	for v := byte(0); v < 4; v++ {
		got, err := Symbol(Nucleotide(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	_, err := Symbol('N')
	assert.ErrorIs(t, err, ErrInvalidSymbol)
	_, err = Symbol('g')
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestUnpackGroupErrors(t *testing.T) {
	_, err := UnpackGroup([]byte("GCAC"))
	assert.ErrorIs(t, err, ErrWrongGroupLength)

	_, err = UnpackGroup([]byte("GGGCA"))
	assert.ErrorIs(t, err, ErrMalformedGroup)
	assert.ErrorIs(t, err, ErrInvalidCodeword)

	_, err = UnpackGroup([]byte("NCACA"))
	assert.ErrorIs(t, err, ErrMalformedGroup)
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestPackSymbols(t *testing.T) {
	// 350 symbols is 87 whole bytes and two trailing symbols
	s := make([]byte, 350)
	for i := range s {
		s[i] = byte(i*7) & 0x03
	}
	seq := PackSymbols(s)
	assert.Len(t, seq, 437)
	assert.Equal(t, 437, PackedLength(350))
	assert.Equal(t, Nucleotide(s[348]), seq[435])
	assert.Equal(t, Nucleotide(s[349]), seq[436])

	got, bad, err := UnpackSymbols(seq, len(s))
	require.NoError(t, err)
	assert.Zero(t, bad)
	assert.Equal(t, s, got)
}

func TestUnpackSymbolsTolerant(t *testing.T) {
	s := bytes.Repeat([]byte{3}, 6)
	seq := PackSymbols(s)
	require.Len(t, seq, 7)

	// Break the codeword of the only whole group and the final nucleotide
	seq[1], seq[2] = 'G', 'G'
	seq[6] = 'N'

	got, bad, err := UnpackSymbols(seq, len(s))
	require.NoError(t, err)
	assert.Equal(t, 2, bad)
	assert.Equal(t, []byte{0, 0, 0, 0, 3, 0}, got)

	_, _, err = UnpackSymbols(seq[:6], len(s))
	assert.ErrorIs(t, err, ErrWrongGroupLength)
}
