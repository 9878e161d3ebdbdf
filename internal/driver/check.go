// Package driver orchestrates the compiler stages: checking one file,
// checking many in parallel, and compiling a file down to rendered IR.
package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"fern/internal/ast"
	"fern/internal/diag"
	"fern/internal/observ"
	"fern/internal/parser"
	"fern/internal/sema"
	"fern/internal/source"
)

// Options configures a check or compile run.
type Options struct {
	MaxDiagnostics int
	Cache          *DiskCache
	NoCache        bool
	Phase          PhaseFunc
}

func (o *Options) maxDiags() int {
	if o == nil || o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

// CheckResult carries the artifacts of checking one file.
type CheckResult struct {
	Path      string
	FileSet   *source.FileSet
	File      *source.File
	Prog      *ast.Program
	Bag       *diag.Bag
	Timing    observ.Report
	FromCache bool
}

// OK reports whether the file checked without errors.
func (r *CheckResult) OK() bool {
	return r != nil && r.Bag != nil && !r.Bag.HasErrors()
}

// CheckFile loads, parses, and type checks one file. A warm cache entry for
// the same content hash short-circuits everything after loading; cached runs
// carry diagnostics but no AST.
func CheckFile(ctx context.Context, path string, opts *Options) (*CheckResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &CheckResult{
		Path: path,
		Bag:  diag.NewBag(opts.maxDiags()),
	}
	timer := observ.NewTimer()

	opts.phase().emit("load", PhaseStart)
	load := timer.Begin("load")
	res.FileSet = source.NewFileSet()
	id, err := res.FileSet.Load(path)
	timer.End(load, path)
	opts.phase().emit("load", PhaseEnd)
	if err != nil {
		res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
		res.Timing = timer.Report()
		return res, nil
	}
	res.File = res.FileSet.Get(id)

	if cache := opts.cache(); cache != nil {
		var payload CheckPayload
		hit, cacheErr := cache.Get(res.File.Hash, &payload)
		if cacheErr == nil && hit && payload.Schema == cacheSchemaVersion {
			restoreDiagnostics(res.Bag, res.File.ID, &payload)
			res.FromCache = true
			res.Timing = timer.Report()
			return res, nil
		}
	}

	opts.phase().emit("parse", PhaseStart)
	parse := timer.Begin("parse")
	maxErrors, convErr := safecast.Conv[uint](opts.maxDiags())
	if convErr != nil {
		return nil, fmt.Errorf("diagnostics limit overflow: %w", convErr)
	}
	prog, parsedOK := parser.ParseFile(res.File, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  diag.BagReporter{Bag: res.Bag},
	})
	timer.End(parse, "")
	opts.phase().emit("parse", PhaseEnd)
	res.Prog = prog

	if parsedOK {
		opts.phase().emit("check", PhaseStart)
		check := timer.Begin("check")
		sema.Check(prog, sema.Options{Reporter: diag.BagReporter{Bag: res.Bag}})
		timer.End(check, "")
		opts.phase().emit("check", PhaseEnd)
	}

	res.Bag.Sort()
	res.Timing = timer.Report()

	if cache := opts.cache(); cache != nil {
		// A failed cache write never fails the check.
		_ = cache.Put(res.File.Hash, snapshotDiagnostics(res.File.Hash, res.Bag))
	}
	return res, nil
}

func (o *Options) phase() PhaseFunc {
	if o == nil {
		return nil
	}
	return o.Phase
}

func (o *Options) cache() *DiskCache {
	if o == nil || o.NoCache {
		return nil
	}
	return o.Cache
}
