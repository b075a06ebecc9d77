package cardsheet

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Worker sizing constants.
const (
	// MinWorkers renders sequentially.
	MinWorkers = 1

	// MaxWorkers caps parallel renders; each holds a full card raster.
	MaxWorkers = 8

	// cpuDivisor leaves headroom for PNG encoding in the page sink.
	cpuDivisor = 2
)

// ResolveWorkers determines the number of parallel card renders.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// renderResult is the outcome of rendering one row.
type renderResult struct {
	card *RenderedCard
	err  error
}

// renderInOrder renders rows and hands each result to place in input
// order as soon as it is ready. With one worker every row is rendered and
// placed before the next is rendered. With more, at most workers cards are
// rendered or rendering but not yet placed.
//
// Per-row errors are passed to place. An error returned by place stops
// the run, cancels renders in flight and is returned; so is cancellation.
func renderInOrder(ctx context.Context, r *CardRenderer, rows []Row, workers int, place func(i int, res renderResult) error) error {
	if workers <= 1 {
		for i, row := range rows {
			if err := ctx.Err(); err != nil {
				return err
			}
			var res renderResult
			res.card, res.err = r.Render(ctx, row.ID)
			if err := place(i, res); err != nil {
				return err
			}
		}
		return nil
	}

	rctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(workers)

	// One buffered slot per row; a worker never blocks on send
	pending := make([]chan renderResult, len(rows))
	launched := 0
	launch := func() {
		i, row := launched, rows[launched]
		pending[i] = make(chan renderResult, 1)
		launched++
		g.Go(func() error {
			var res renderResult
			res.card, res.err = r.Render(rctx, row.ID)
			pending[i] <- res
			return nil
		})
	}
	for launched < min(workers, len(rows)) {
		launch()
	}

	var placeErr error
	for i := range rows {
		res := <-pending[i]
		pending[i] = nil
		if err := ctx.Err(); err != nil {
			placeErr = err
			break
		}
		if err := place(i, res); err != nil {
			placeErr = err
			break
		}
		if launched < len(rows) {
			launch()
		}
	}

	cancel()
	_ = g.Wait()
	if placeErr != nil {
		return placeErr
	}
	return ctx.Err()
}
