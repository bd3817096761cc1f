package resolver

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchResult is one (path, error) pair from ResolveBatch.
type BatchResult struct {
	Path string
	Err  error
}

// ResolveBatch resolves templateName against every context in contexts.
// Items run concurrently (bounded, via golang.org/x/sync/errgroup) since
// each resolution is independent; when stopOnError is true, the first typed
// error cancels resolution of items not yet started and their BatchResult
// carries context.Canceled instead of a partial attempt.
func (r *Resolver) ResolveBatch(templateName string, contexts []map[string]string, opts Options, stopOnError bool) []BatchResult {
	results := make([]BatchResult, len(contexts))

	group, ctx := errgroup.WithContext(context.Background())
	if !stopOnError {
		ctx = context.Background()
	}
	group.SetLimit(8)

	for i, itemContext := range contexts {
		i, itemContext := i, itemContext
		group.Go(func() error {
			if stopOnError {
				select {
				case <-ctx.Done():
					results[i] = BatchResult{Err: ctx.Err()}
					return nil
				default:
				}
			}

			path, err := r.Resolve(templateName, itemContext, opts)
			results[i] = BatchResult{Path: path, Err: err}
			if stopOnError && err != nil {
				return err
			}
			return nil
		})
	}

	_ = group.Wait()
	return results
}
