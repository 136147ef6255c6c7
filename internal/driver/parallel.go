package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"aadc/internal/source"
)

// ProcessPaths corrects several files concurrently. Results come back in
// input order regardless of completion order, and a failure to read one
// file is recorded on its result rather than aborting the rest.
func ProcessPaths(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			emit(opts.Sink, Event{Path: path, Index: i, Total: len(paths), Stage: StageStart})

			doc, err := source.Load(path)
			if err != nil {
				// Index i is unique per goroutine, no mutex needed.
				results[i] = &Result{Path: path, Err: err}
				emit(opts.Sink, Event{Path: path, Index: i, Total: len(paths), Stage: StageFailed, Err: err})
				return nil
			}

			results[i] = Process(doc, opts)
			emit(opts.Sink, Event{Path: path, Index: i, Total: len(paths), Stage: StageDone})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
