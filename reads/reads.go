/*
Package reads implements sources of sequencing reads.

A plain text source yields the first whitespace delimited token of every
non-blank line; anything after it on the line is ignored. SAM and BAM
sources yield the sequence of every primary record. Any of these may be
compressed with zstd.
*/
package reads

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
)

const maxLineLength = 1 << 20

// Reader returns one read per call to Read and io.EOF once exhausted.
type Reader interface {
	Read() (string, error)
}

// Options control how text sources are parsed.
type Options struct {
	// SkipHeader discards the first line of a text source
	SkipHeader bool
}

type textReader struct {
	s          *bufio.Scanner
	skipHeader bool
}

// NewTextReader returns a Reader over line-oriented text.
func NewTextReader(r io.Reader, opts Options) Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &textReader{
		s:          s,
		skipHeader: opts.SkipHeader,
	}
}

func (r *textReader) Read() (string, error) {
	for r.s.Scan() {
		if r.skipHeader {
			r.skipHeader = false
			continue
		}
		if fields := strings.Fields(r.s.Text()); len(fields) > 0 {
			return fields[0], nil
		}
	}
	if err := r.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

type recordReader interface {
	Read() (*sam.Record, error)
}

type alignmentReader struct {
	r recordReader
}

func (r *alignmentReader) Read() (string, error) {
	for {
		rec, err := r.r.Read()
		if err != nil {
			return "", err
		}
		// Secondary and supplementary alignments repeat a primary read
		if rec.Flags&(sam.Secondary|sam.Supplementary) != 0 {
			continue
		}
		return string(rec.Seq.Expand()), nil
	}
}

// NewSAMReader returns a Reader over the records of a SAM stream.
func NewSAMReader(r io.Reader) (Reader, error) {
	sr, err := sam.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &alignmentReader{r: sr}, nil
}

type bamReader struct {
	alignmentReader
	br *bam.Reader
}

func (r *bamReader) Close() error {
	return r.br.Close()
}

// NewBAMReader returns a Reader over the records of a BAM stream. The
// returned Reader also implements io.Closer.
func NewBAMReader(r io.Reader) (Reader, error) {
	br, err := bam.NewReader(r, 1)
	if err != nil {
		return nil, err
	}
	return &bamReader{
		alignmentReader: alignmentReader{r: br},
		br:              br,
	}, nil
}

// ReadAll drains r.
func ReadAll(r Reader) ([]string, error) {
	var out []string
	for {
		s, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
}
