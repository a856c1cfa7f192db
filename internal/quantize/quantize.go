package quantize

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/j031nich0145/pxl8-sub000/internal/ir"
	"github.com/j031nich0145/pxl8-sub000/internal/resample"
)

// ErrInvalidGrid reports a block grid that is empty or larger than the source.
var ErrInvalidGrid = errors.New("invalid block grid")

// Grid is the number of output blocks along each axis. The block size
// (source size / grid size) is derived and may be fractional.
type Grid struct {
	Width  int
	Height int
}

// ProgressFunc receives completion percentages in [0, 100]. Values only
// increase, 100 is always delivered last, and no call happens after
// Quantize returns.
type ProgressFunc func(percent int)

// Options tunes a quantization run.
type Options struct {
	// Multiplier scales the re-expanded output relative to the source size.
	// Values below 1 are treated as 1.
	Multiplier float64
	// Progress is optional.
	Progress ProgressFunc
	// Workers splits the reduction into that many row bands. Output is
	// identical for any worker count.
	Workers int
}

// reducedShare is the progress percentage reached when the reduced grid is
// complete; the remainder covers re-expansion.
const reducedShare = 90

// Quantize reduces src to grid.Width x grid.Height blocks using method and
// re-expands the result with point sampling to
// round(src.Width*multiplier) x round(src.Height*multiplier).
func Quantize(ctx context.Context, src *ir.Bitmap, grid Grid, method Method, opts Options) (*ir.Bitmap, error) {
	rep := &reporter{fn: opts.Progress, last: -1}

	reduced, err := reduce(ctx, src, grid, method, opts.Workers, rep)
	if err != nil {
		return nil, err
	}

	mult := opts.Multiplier
	if mult < 1 || math.IsNaN(mult) || math.IsInf(mult, 0) {
		mult = 1
	}
	out := resample.Scaled(src.Dims(), mult)

	expanded, err := resample.Resize(reduced, out.Width, out.Height, false)
	if err != nil {
		return nil, fmt.Errorf("re-expand: %w", err)
	}

	rep.report(100)
	return expanded, nil
}

// Reduce produces the grid.Width x grid.Height reduced bitmap without
// re-expanding it.
func Reduce(ctx context.Context, src *ir.Bitmap, grid Grid, method Method, workers int) (*ir.Bitmap, error) {
	return reduce(ctx, src, grid, method, workers, &reporter{last: -1})
}

func reduce(ctx context.Context, src *ir.Bitmap, grid Grid, method Method, workers int, rep *reporter) (*ir.Bitmap, error) {
	if src == nil || src.Width <= 0 || src.Height <= 0 {
		return nil, fmt.Errorf("%w: empty source", ErrInvalidGrid)
	}
	if grid.Width <= 0 || grid.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, grid.Width, grid.Height)
	}
	if grid.Width > src.Width || grid.Height > src.Height {
		return nil, fmt.Errorf("%w: %dx%d exceeds source %dx%d",
			ErrInvalidGrid, grid.Width, grid.Height, src.Width, src.Height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var reducer cellReducer
	switch method {
	case Average:
		reducer = averageCell
	case MajorityColor:
		reducer = newMajority().cell
	case NearestSample:
		reduced, err := resample.Resize(src, grid.Width, grid.Height, false)
		if err != nil {
			return nil, err
		}
		rep.report(reducedShare)
		return reduced, nil
	default:
		return nil, fmt.Errorf("unknown pixelation method %d", int(method))
	}

	dst := ir.NewBitmap(grid.Width, grid.Height)
	rep.report(0)

	if workers <= 1 || grid.Height == 1 {
		p := newRowProgress(grid.Height, rep)
		for y := 0; y < grid.Height; y++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			reduceRow(src, dst, y, reducer)
			p.rowDone()
		}
		return dst, nil
	}

	return reduceBands(ctx, src, dst, method, workers, rep)
}

// reduceBands partitions output rows into contiguous bands. Each band reads
// a disjoint horizontal strip of source rows and writes only its own rows of
// dst, so no locking is needed on the raster.
func reduceBands(ctx context.Context, src, dst *ir.Bitmap, method Method, workers int, rep *reporter) (*ir.Bitmap, error) {
	rows := dst.Height
	workers = min(workers, rows)
	band := (rows + workers - 1) / workers
	p := newRowProgress(rows, rep)

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < rows; start += band {
		start, end := start, min(start+band, rows)
		g.Go(func() error {
			reducer := averageCell
			if method == MajorityColor {
				reducer = newMajority().cell
			}
			for y := start; y < end; y++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				reduceRow(src, dst, y, reducer)
				p.rowDone()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}

// cellBounds returns the half-open source span of block i out of n along an
// axis of length size: [floor(i*size/n), min(floor((i+1)*size/n), size)).
// Each edge is floored independently, so neighbouring blocks may differ in
// width by one pixel.
func cellBounds(i, n, size int) (int, int) {
	return i * size / n, min((i+1)*size/n, size)
}

func reduceRow(src, dst *ir.Bitmap, y int, reducer cellReducer) {
	y0, y1 := cellBounds(y, dst.Height, src.Height)
	for x := 0; x < dst.Width; x++ {
		x0, x1 := cellBounds(x, dst.Width, src.Width)
		px := reducer(src, x0, y0, x1, y1)
		dst.Set(x, y, px)
	}
}

type reporter struct {
	mu   sync.Mutex
	fn   ProgressFunc
	last int
}

// report forwards p if it is larger than anything reported so far.
func (r *reporter) report(p int) {
	if r.fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p <= r.last {
		return
	}
	r.last = p
	r.fn(p)
}

// rowProgress reports every ceil(rows/10) completed rows.
type rowProgress struct {
	rows     int
	interval int64
	done     atomic.Int64
	rep      *reporter
}

func newRowProgress(rows int, rep *reporter) *rowProgress {
	return &rowProgress{
		rows:     rows,
		interval: int64(max(1, (rows+9)/10)),
		rep:      rep,
	}
}

func (p *rowProgress) rowDone() {
	n := p.done.Add(1)
	if n%p.interval == 0 || n == int64(p.rows) {
		p.rep.report(int(n * reducedShare / int64(p.rows)))
	}
}
