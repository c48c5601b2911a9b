package dnaimage

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/bodgit/dnaimage/address"
	"github.com/bodgit/dnaimage/matrix"
	"github.com/bodgit/dnaimage/raster"
	"github.com/bodgit/dnaimage/reads"
	"github.com/bodgit/dnaimage/strand"
	"gopkg.in/cheggaaa/pb.v1"
)

var errCancelled = errors.New("pipeline cancelled")

func (c *Codec) newBar(total int) *pb.ProgressBar {
	if c.progress == nil {
		return nil
	}
	bar := pb.New(total)
	bar.Output = c.progress
	return bar.Start()
}

func increment(bar *pb.ProgressBar) {
	if bar != nil {
		bar.Increment()
	}
}

func finish(bar *pb.ProgressBar) {
	if bar != nil {
		bar.Finish()
	}
}

func (c *Codec) findRows(ctx context.Context, rows int) (<-chan int, <-chan error) {
	out := make(chan int)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for y := 0; y < rows; y++ {
			select {
			case out <- y:
			case <-ctx.Done():
				errc <- errCancelled
				return
			}
		}
	}()
	return out, errc
}

func (c *Codec) rowWorker(plane raster.Plane, pool strand.Pool, bar *pb.ProgressBar, in <-chan int) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for y := range in {
			// Each row is only ever handed to one worker
			strands, err := strand.Assemble(y, plane[y])
			if err != nil {
				errc <- err
				return
			}
			pool[y] = strands
			increment(bar)
		}
	}()
	return errc
}

func (c *Codec) assemble(plane raster.Plane) (strand.Pool, error) {
	if len(plane) != address.Rows {
		return strand.AssemblePool(plane)
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	bar := c.newBar(len(plane))
	defer finish(bar)

	pool := make(strand.Pool, len(plane))

	var errcList []<-chan error

	rows, errc := c.findRows(ctx, len(plane))
	errcList = append(errcList, errc)

	for i := 0; i < c.workers; i++ {
		errcList = append(errcList, c.rowWorker(plane, pool, bar, rows))
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}
	return pool, nil
}

type indexedRead struct {
	seq  int
	read string
}

type checkedRead struct {
	seq     int
	coord   address.Coordinate
	payload string
	err     error
}

func (c *Codec) findReads(ctx context.Context, r reads.Reader) (<-chan indexedRead, <-chan error) {
	out := make(chan indexedRead)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for seq := 0; ; seq++ {
			read, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				errc <- err
				return
			}
			select {
			case out <- indexedRead{seq, read}:
			case <-ctx.Done():
				errc <- errCancelled
				return
			}
		}
	}()
	return out, errc
}

func (c *Codec) readWorker(ctx context.Context, wg *sync.WaitGroup, in <-chan indexedRead, out chan<- checkedRead) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer wg.Done()
		for ir := range in {
			coord, payload, err := matrix.Check(ir.read)
			select {
			case out <- checkedRead{ir.seq, coord, payload, err}:
			case <-ctx.Done():
				errc <- errCancelled
				return
			}
		}
	}()
	return errc
}

// commitReads stores checked reads in their input order so the same read
// file always wins the same duplicates, however many workers checked it.
func (c *Codec) commitReads(m *matrix.Matrix, report *matrix.Report, bar *pb.ProgressBar, in <-chan checkedRead) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		pending := make(map[int]checkedRead)
		next := 0
		for cr := range in {
			pending[cr.seq] = cr
			for {
				head, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++

				err := head.err
				if err == nil {
					err = m.Put(head.coord, head.payload)
				}
				if err != nil && !errors.Is(err, matrix.ErrDuplicateWrite) {
					c.logger.Printf("Discarded read %d: %v\n", head.seq+1, err)
				}
				report.Record(err)
				increment(bar)
			}
		}
	}()
	return errc
}

func (c *Codec) reconstruct(r reads.Reader, m *matrix.Matrix) (matrix.Report, error) {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	bar := c.newBar(0)
	defer finish(bar)

	var errcList []<-chan error

	in, errc := c.findReads(ctx, r)
	errcList = append(errcList, errc)

	checked := make(chan checkedRead, c.workers)
	var wg sync.WaitGroup
	wg.Add(c.workers)
	for i := 0; i < c.workers; i++ {
		errcList = append(errcList, c.readWorker(ctx, &wg, in, checked))
	}
	go func() {
		wg.Wait()
		close(checked)
	}()

	var report matrix.Report
	errcList = append(errcList, c.commitReads(m, &report, bar, checked))

	if err := waitForPipeline(errcList...); err != nil {
		return matrix.Report{}, err
	}
	return report, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
