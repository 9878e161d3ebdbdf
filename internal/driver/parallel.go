package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// SourceExt is the file extension of compilable sources.
const SourceExt = ".fn"

// ListSourceFiles returns every *.fn file under dir, sorted for a
// deterministic check order.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckMany checks paths in parallel, bounded by jobs (GOMAXPROCS when
// jobs <= 0). Results come back in input order regardless of completion
// order; each result owns its FileSet and Bag.
func CheckMany(ctx context.Context, paths []string, jobs int, opts *Options) ([]*CheckResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(paths) {
		jobs = len(paths)
	}

	// Indexed writes into a preallocated slice keep the output deterministic
	// without a mutex.
	results := make([]*CheckResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// The shared phase observer would interleave across files; drop
			// it for parallel runs.
			fileOpts := &Options{
				MaxDiagnostics: opts.maxDiags(),
				Cache:          opts.cache(),
			}
			res, err := CheckFile(gctx, path, fileOpts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
