package raster

import (
	"errors"
	"image"
	"image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var errUnknownFormat = errors.New("raster: unknown image format")

// Load decodes the image in file, in any registered format.
func Load(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}

// Supported reports whether Save can write files with extension ext.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".gif", ".bmp", ".tif", ".tiff", ".qoi":
		return true
	}
	return false
}

// Write encodes m to w in the format named by ext, e.g. ".png".
func Write(w io.Writer, ext string, m image.Image) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, m)
	case ".gif":
		return gif.Encode(w, m, nil)
	case ".bmp":
		return bmp.Encode(w, m)
	case ".tif", ".tiff":
		return tiff.Encode(w, m, nil)
	case ".qoi":
		return qoi.Encode(w, m)
	default:
		return errUnknownFormat
	}
}

// Save encodes m to file, choosing the format from its extension.
func Save(file string, m image.Image) error {
	if !Supported(filepath.Ext(file)) {
		return errUnknownFormat
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := Write(f, filepath.Ext(file), m); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
