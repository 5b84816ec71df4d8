package uncharted

import(
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ProcessParallel produces the same bytes as Process, but splits the rows
// into bands and runs them on up to `workers` goroutines (GOMAXPROCS if
// workers<1). Each band writes only its own rows of dst. Cancelling ctx
// stops work at the next band boundary, leaving dst partially written.
func (op *Operator)ProcessParallel(ctx context.Context, img Image, dst []byte, exposure float64, progress *Progress, workers int) error {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	b := img.Bounds()
	progress.Reset()
	if b.Empty() {
		return nil
	}

	pl := op.pipeline()
	delta := 1.0 / float64(b.Dx() * b.Dy())

	// A few bands per worker, so a slow band doesn't hold everything up
	bandHeight := b.Dy() / (workers * 4)
	if bandHeight < 1 {
		bandHeight = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for from:=0; from<b.Dy(); from+=bandHeight {
		to := from + bandHeight
		if to > b.Dy() {
			to = b.Dy()
		}

		from := from
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pl.rows(img, dst, exposure, from, to, progress, delta)
			return nil
		})
	}

	return g.Wait()
}
