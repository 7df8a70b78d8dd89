package rpnsolve

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Strategy decides how a Solver runs its independent units of work, one per
// operator choice.
type Strategy interface {
	// Run calls work once for each i in [0, n) and returns the first error
	// any call returns, or the context's error if it is done first. work
	// must be safe to call concurrently with distinct i. Run returns after
	// every call to work has returned.
	Run(ctx context.Context, n int, work func(ctx context.Context, i int) error) error
	// String names the strategy for diagnostics.
	String() string
}

// Sequential returns a strategy that runs all work in order on the calling
// goroutine.
func Sequential() Strategy {
	return sequential{}
}

type sequential struct{}

func (sequential) Run(ctx context.Context, n int, work func(ctx context.Context, i int) error) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := work(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

func (sequential) String() string {
	return "sequential"
}

// Parallel returns a strategy that runs at most workers calls of work at once.
// The first error cancels the context passed to the remaining calls. If
// workers is not positive, it uses GOMAXPROCS.
func Parallel(workers int) Strategy {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return parallel{workers: workers}
}

type parallel struct {
	workers int
}

func (p parallel) Run(ctx context.Context, n int, work func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error { return work(gctx, i) })
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (p parallel) String() string {
	return "parallel(" + strconv.Itoa(p.workers) + ")"
}
