/*
Package dnaimage is a library for storing small four color images as pools
of addressed DNA strands and recovering them from an unordered, lossy
read-back of that pool.
*/
package dnaimage

import (
	"errors"
	"image"
	"io"
	"log"

	"github.com/bodgit/dnaimage/address"
	"github.com/bodgit/dnaimage/matrix"
	"github.com/bodgit/dnaimage/raster"
	"github.com/bodgit/dnaimage/reads"
	"github.com/bodgit/dnaimage/strand"
)

var errNoDB = errors.New("dnaimage: no pool archive")

// Codec runs encodes and decodes, optionally backed by a pool archive.
type Codec struct {
	db       *PoolDB
	logger   *log.Logger
	workers  int
	progress io.Writer
}

// New returns a Codec using workers goroutines. db may be nil if the
// archive is not needed. A non-nil progress receives a progress bar.
func New(db *PoolDB, logger *log.Logger, workers int, progress io.Writer) *Codec {
	if workers < 1 {
		workers = 1
	}
	return &Codec{
		db:       db,
		logger:   logger,
		workers:  workers,
		progress: progress,
	}
}

// Encode converts m to its strand pool. m must already be a valid raster,
// see raster.Prepare.
func (c *Codec) Encode(m image.Image) (strand.Pool, error) {
	plane, err := raster.Encode(m)
	if err != nil {
		return nil, err
	}
	return c.assemble(plane)
}

// Result describes everything a decode had to discard or make up.
type Result struct {
	Reads  matrix.Report
	Filled []address.Coordinate
	Groups raster.DecodeReport
}

// Reconstruct reads every read from r into a new matrix. Bad reads are
// counted, never fatal; the error is only set if r itself fails.
func (c *Codec) Reconstruct(r reads.Reader) (*matrix.Matrix, matrix.Report, error) {
	m := matrix.New()
	report, err := c.reconstruct(r, m)
	if err != nil {
		return nil, matrix.Report{}, err
	}
	c.logger.Println(report)
	return m, report, nil
}

// Render fills any gaps in m and converts it to an image.
func (c *Codec) Render(m *matrix.Matrix) (*image.Paletted, Result, error) {
	var result Result

	result.Filled = m.Fill()
	for _, coord := range result.Filled {
		c.logger.Printf("Filled %v with sentinel payload\n", coord)
	}

	img, groups, err := raster.Decode(m)
	if err != nil {
		return nil, Result{}, err
	}
	result.Groups = groups
	if groups.MalformedGroups > 0 {
		c.logger.Printf("%d malformed groups in rows %v decoded as zero\n", groups.MalformedGroups, groups.Rows)
	}

	return img, result, nil
}

// Decode reconstructs and renders the image held in the reads from r.
func (c *Codec) Decode(r reads.Reader) (*image.Paletted, Result, error) {
	m, report, err := c.Reconstruct(r)
	if err != nil {
		return nil, Result{}, err
	}

	img, result, err := c.Render(m)
	if err != nil {
		return nil, Result{}, err
	}
	result.Reads = report

	return img, result, nil
}
