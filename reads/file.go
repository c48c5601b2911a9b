package reads

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const zstdExt = ".zst"

// ReadCloser is a Reader bound to an open file.
type ReadCloser interface {
	Reader
	io.Closer
}

type fileReader struct {
	Reader
	closers []func() error
}

func (f *fileReader) Close() (err error) {
	for i := len(f.closers) - 1; i >= 0; i-- {
		if cerr := f.closers[i](); cerr != nil && err == nil {
			err = cerr
		}
	}
	return
}

func format(file string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(file))
	if ext == zstdExt {
		return strings.ToLower(filepath.Ext(strings.TrimSuffix(file, filepath.Ext(file)))), true
	}
	return ext, false
}

// Open returns a Reader for file. The format is chosen by extension: ".sam"
// and ".bam" are alignment files, anything else is text. A trailing ".zst"
// is decompressed first.
func Open(file string, opts Options) (ReadCloser, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	fr := &fileReader{closers: []func() error{f.Close}}

	var r io.Reader = f
	ext, compressed := format(file)
	if compressed {
		zr, err := zstd.NewReader(f)
		if err != nil {
			fr.Close()
			return nil, err
		}
		fr.closers = append(fr.closers, func() error {
			zr.Close()
			return nil
		})
		r = zr
	}

	switch ext {
	case ".sam":
		fr.Reader, err = NewSAMReader(r)
	case ".bam":
		fr.Reader, err = NewBAMReader(r)
		if err == nil {
			fr.closers = append(fr.closers, fr.Reader.(io.Closer).Close)
		}
	default:
		fr.Reader = NewTextReader(r, opts)
	}
	if err != nil {
		fr.Close()
		return nil, err
	}

	return fr, nil
}

type zstdWriter struct {
	*zstd.Encoder
	f *os.File
}

func (w *zstdWriter) Close() error {
	if err := w.Encoder.Close(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

// Create creates file for writing, compressing with zstd when the name
// ends in ".zst".
func Create(file string) (io.WriteCloser, error) {
	f, err := os.Create(file)
	if err != nil {
		return nil, err
	}

	if _, compressed := format(file); !compressed {
		return f, nil
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &zstdWriter{Encoder: enc, f: f}, nil
}
