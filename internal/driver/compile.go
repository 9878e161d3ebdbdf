package driver

import (
	"context"
	"fmt"

	"fern/internal/ast"
	"fern/internal/codegen"
	"fern/internal/ir"
	"fern/internal/lift"
	"fern/internal/mono"
	"fern/internal/observ"
)

// CompileResult carries every stage artifact of a full compile: the checked
// program, its lifted and monomorphized forms, and the rendered IR text.
type CompileResult struct {
	Check  *CheckResult
	Lifted *ast.Program
	Mono   *ast.Program
	Module *ir.Module
	IR     string
	Timing observ.Report
}

// CompileFile runs the full pipeline on one file. Check diagnostics abort
// before lowering; anything failing after the check is an internal error.
// The disk cache is bypassed because lowering needs the AST.
func CompileFile(ctx context.Context, path string, opts *Options) (*CompileResult, error) {
	checkOpts := &Options{
		MaxDiagnostics: opts.maxDiags(),
		NoCache:        true,
		Phase:          opts.phase(),
	}
	check, err := CheckFile(ctx, path, checkOpts)
	if err != nil {
		return nil, err
	}
	res := &CompileResult{Check: check, Timing: check.Timing}
	if check.Bag.HasErrors() {
		return res, fmt.Errorf("check failed with %d diagnostics", check.Bag.Len())
	}
	if check.Prog == nil {
		return res, fmt.Errorf("driver: bug: check succeeded without a program")
	}

	timer := observ.NewTimer()

	opts.phase().emit("lift", PhaseStart)
	idx := timer.Begin("lift")
	res.Lifted = lift.Lift(check.Prog)
	timer.End(idx, "")
	opts.phase().emit("lift", PhaseEnd)

	opts.phase().emit("mono", PhaseStart)
	idx = timer.Begin("mono")
	res.Mono, err = mono.Run(res.Lifted)
	timer.End(idx, "")
	opts.phase().emit("mono", PhaseEnd)
	if err != nil {
		return res, err
	}

	opts.phase().emit("codegen", PhaseStart)
	idx = timer.Begin("codegen")
	res.Module, err = codegen.Generate(res.Mono)
	if err == nil {
		res.IR = ir.Render(res.Module)
	}
	timer.End(idx, "")
	opts.phase().emit("codegen", PhaseEnd)
	if err != nil {
		return res, err
	}

	res.Timing = mergeReports(check.Timing, timer.Report())
	return res, nil
}

func mergeReports(a, b observ.Report) observ.Report {
	out := observ.Report{
		TotalMS: a.TotalMS + b.TotalMS,
		Phases:  make([]observ.PhaseReport, 0, len(a.Phases)+len(b.Phases)),
	}
	out.Phases = append(out.Phases, a.Phases...)
	out.Phases = append(out.Phases, b.Phases...)
	return out
}
