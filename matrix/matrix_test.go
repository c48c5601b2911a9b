package matrix

import (
	"strings"
	"sync"
	"testing"

	"github.com/bodgit/dnaimage/address"
	"github.com/bodgit/dnaimage/strand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(t *testing.T) strand.Pool {
	rows := make([][]byte, address.Rows)
	for y := range rows {
		rows[y] = make([]byte, strand.Width)
		for x := range rows[y] {
			rows[y][x] = byte((x + y*3) & 0x03)
		}
	}
	p, err := strand.AssemblePool(rows)
	require.NoError(t, err)
	return p
}

func reads(p strand.Pool) []string {
	var s []string
	for _, st := range p.Strands() {
		s = append(s, string(st))
	}
	return s
}

func mustAddress(t *testing.T, row, col int) string {
	s, err := address.Encode(address.Coordinate{Row: row, Column: col})
	require.NoError(t, err)
	return s
}

func TestReconstructComplete(t *testing.T) {
	p := testPool(t)
	m := New()
	r := Reconstruct(m, reads(p))

	assert.Equal(t, Report{Reads: 1705, Accepted: 1705}, r)
	assert.True(t, m.Complete())
	assert.Empty(t, m.Fill())

	for y, row := range p {
		for x, s := range row {
			got, ok := m.Get(address.Coordinate{Row: y + 1, Column: x + 1})
			require.True(t, ok)
			assert.Equal(t, s.Payload(), got)
		}
	}
}

func TestReconstructMissing(t *testing.T) {
	p := testPool(t)
	missing := address.Coordinate{Row: 17, Column: 3}

	var in []string
	for _, s := range reads(p) {
		if s == string(p[16][2]) {
			continue
		}
		in = append(in, s)
	}

	m := New()
	r := Reconstruct(m, in)
	assert.Zero(t, r.LengthErrors)
	assert.Zero(t, r.AddressErrors)
	assert.Zero(t, r.Discarded())
	assert.False(t, m.Complete())

	filled := m.Fill()
	assert.Equal(t, []address.Coordinate{missing}, filled)

	got, ok := m.Get(missing)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("G", 90), got)
	assert.True(t, m.Complete())
}

func TestReconstructDuplicate(t *testing.T) {
	first := mustAddress(t, 5, 2) + strings.Repeat("C", 90)
	second := mustAddress(t, 5, 2) + strings.Repeat("A", 90)

	m := New()
	r := Reconstruct(m, []string{first, second})
	assert.Equal(t, 1, r.Accepted)
	assert.Equal(t, 1, r.Duplicates)

	got, _ := m.Get(address.Coordinate{Row: 5, Column: 2})
	assert.Equal(t, strings.Repeat("C", 90), got)

	assert.ErrorIs(t, m.Add(second), ErrDuplicateWrite)
}

func TestReconstructRejects(t *testing.T) {
	tests := []struct {
		name string
		read string
		err  error
		want Report
	}{
		{
			"too short",
			strings.Repeat("N", 99),
			ErrLength,
			Report{Reads: 1, LengthErrors: 1},
		},
		{
			"too long",
			mustAddress(t, 1, 1) + strings.Repeat("G", 91),
			ErrLength,
			Report{Reads: 1, LengthErrors: 1},
		},
		{
			"bad address",
			"GGGGGGGGGG" + strings.Repeat("G", 90),
			address.ErrInvalidAddress,
			Report{Reads: 1, AddressErrors: 1},
		},
		{
			"address out of range",
			mustAddress(t, 341, 5)[:5] + mustAddress(t, 2, 2)[5:] + strings.Repeat("G", 77),
			address.ErrOutOfRange,
			Report{Reads: 1, AddressErrors: 1},
		},
		{
			"long read for column five",
			mustAddress(t, 1, 5) + strings.Repeat("G", 90),
			ErrShape,
			Report{Reads: 1, ShapeErrors: 1},
		},
		{
			"short read for column one",
			mustAddress(t, 1, 1) + strings.Repeat("G", 77),
			ErrShape,
			Report{Reads: 1, ShapeErrors: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			assert.ErrorIs(t, m.Add(tt.read), tt.err)
			assert.Zero(t, m.Length())

			assert.Equal(t, tt.want, Reconstruct(m, []string{tt.read}))
		})
	}
}

func TestSetConcurrent(t *testing.T) {
	m := New()
	c := address.Coordinate{Row: 100, Column: 4}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won []int
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if m.Set(c, strings.Repeat("T", i)) {
				mu.Lock()
				won = append(won, i)
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	require.Len(t, won, 1)
	got, _ := m.Get(c)
	assert.Equal(t, strings.Repeat("T", won[0]), got)
}

func TestFillWrongLength(t *testing.T) {
	m := New()
	for row := 1; row <= address.Rows; row++ {
		for col := 1; col <= address.Columns; col++ {
			m.Set(address.Coordinate{Row: row, Column: col}, strings.Repeat("C", strand.PayloadLength(col)))
		}
	}
	require.True(t, m.Complete())

	bad := address.Coordinate{Row: 200, Column: 5}
	m.cells[index(bad)].Store(func() *string { s := "CCC"; return &s }())

	assert.Equal(t, []address.Coordinate{bad}, m.Fill())
	got, _ := m.Get(bad)
	assert.Equal(t, strings.Repeat("G", 77), got)
	assert.Equal(t, Sentinel(5), got)
}

func TestText(t *testing.T) {
	p := testPool(t)
	m := New()
	Reconstruct(m, reads(p)[10:])

	b, err := m.MarshalText()
	require.NoError(t, err)

	got := New()
	require.NoError(t, got.UnmarshalText(b))
	assert.Equal(t, m.Length(), got.Length())

	for i := 0; i < 10; i++ {
		c := address.Coordinate{Row: i/5 + 1, Column: i%5 + 1}
		_, ok := got.Get(c)
		assert.False(t, ok)
	}
	row, complete := got.Row(3)
	assert.True(t, complete)
	assert.Len(t, row, strand.RowLength)
}

func TestUnmarshalNull(t *testing.T) {
	in := "null," + strings.Repeat("A", 90) + ",,NULL,x\n"
	m := New()
	require.NoError(t, m.UnmarshalText([]byte(in)))
	assert.Equal(t, 2, m.Length())

	filled := m.Fill()
	assert.Len(t, filled, address.Rows*address.Columns-1)
	got, _ := m.Get(address.Coordinate{Row: 1, Column: 2})
	assert.Equal(t, strings.Repeat("A", 90), got)
}
