package scan

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ManyResult is one publish_path's scan outcome from ScanMany.
type ManyResult struct {
	PublishPath string
	Records     []AssetRecord
	Skipped     []SkippedFile
	Err         error
}

// ScanMany walks every publishPath concurrently (bounded, via
// golang.org/x/sync/errgroup) since each tree is read-only and independent;
// results are returned per-path for the caller to fold into a single
// Cache sequentially, keeping mutation of the cache single-owner.
func (s *Scanner) ScanMany(publishPaths []string) []ManyResult {
	results := make([]ManyResult, len(publishPaths))

	group, _ := errgroup.WithContext(context.Background())
	group.SetLimit(8)

	for i, path := range publishPaths {
		i, path := i, path
		group.Go(func() error {
			records, skipped, err := s.Scan(path)
			results[i] = ManyResult{PublishPath: path, Records: records, Skipped: skipped, Err: err}
			return nil
		})
	}

	_ = group.Wait()
	return results
}
