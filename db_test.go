package dnaimage

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/bodgit/dnaimage/raster"
	"github.com/bodgit/dnaimage/reads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolDB(t *testing.T) {
	dir := t.TempDir()

	db, err := NewPoolDB(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	defer db.Close()

	file := filepath.Join(dir, "picture.png")
	src := makeTestImage(10)
	require.NoError(t, raster.Save(file, src))

	c := New(db, discard, 2, nil)

	p, err := c.Import("picture", file)
	require.NoError(t, err)

	// Importing the same image again is a no-op, under another name an error
	_, err = c.Import("picture", file)
	require.NoError(t, err)
	_, err = c.Import("again", file)
	assert.ErrorIs(t, err, errDuplicatePool)
	assert.ErrorContains(t, err, "picture")
	assert.ErrorIs(t, c.Export("again", new(bytes.Buffer)), errNoPool)

	info, err := db.List()
	require.NoError(t, err)
	require.Len(t, info, 1)
	assert.Equal(t, "picture", info[0].Name)
	assert.Len(t, info[0].SHA1, 40)
	assert.Equal(t, 1705, info[0].Strands)

	got, err := db.Pool("picture")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	b := new(bytes.Buffer)
	require.NoError(t, c.Export("picture", b))

	dst, result, err := c.Decode(reads.NewTextReader(b, reads.Options{SkipHeader: true}))
	require.NoError(t, err)
	assert.Equal(t, 1705, result.Reads.Accepted)
	assert.Equal(t, src.Pix, dst.Pix)

	require.NoError(t, db.Delete("picture"))
	assert.ErrorIs(t, db.Delete("picture"), errNoPool)
	_, err = db.Pool("picture")
	assert.ErrorIs(t, err, errNoPool)
}

func TestNoPoolDB(t *testing.T) {
	c := New(nil, discard, 1, nil)
	_, err := c.Import("picture", "picture.png")
	assert.ErrorIs(t, err, errNoDB)
	assert.ErrorIs(t, c.Export("picture", new(bytes.Buffer)), errNoDB)
}
