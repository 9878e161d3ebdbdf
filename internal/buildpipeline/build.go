package buildpipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fern/internal/ast"
)

// BuildRequest configures output generation for a compilation.
type BuildRequest struct {
	CompileRequest
	OutputPath string
	EmitAST    bool
	EmitLifted bool
	EmitMono   bool
}

// BuildResult captures build artefacts and timings.
type BuildResult struct {
	CompileResult
	OutputPath string
}

// Build compiles the target and writes the rendered IR next to any
// requested stage dumps. Dumps share the output path's base name.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	reqCopy := *req
	req = &reqCopy

	if req.OutputPath == "" {
		req.OutputPath = "out.ll"
	}
	result.OutputPath = req.OutputPath

	compileRes, err := Compile(ctx, &req.CompileRequest)
	result.CompileResult = compileRes
	if err != nil {
		return result, err
	}

	if err := writeDumps(req, compileRes); err != nil {
		emitStage(req.Progress, req.Files, StageWrite, StatusError, err, 0)
		return result, err
	}

	writeStart := time.Now()
	emitStage(req.Progress, req.Files, StageWrite, StatusWorking, nil, 0)
	if dir := filepath.Dir(req.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			err = fmt.Errorf("failed to create output dir: %w", err)
			emitStage(req.Progress, req.Files, StageWrite, StatusError, err, 0)
			return result, err
		}
	}
	if err := os.WriteFile(req.OutputPath, []byte(compileRes.Compile.IR), 0o644); err != nil {
		err = fmt.Errorf("failed to write build output %q: %w", req.OutputPath, err)
		emitStage(req.Progress, req.Files, StageWrite, StatusError, err, 0)
		return result, err
	}
	result.Timings.Set(StageWrite, time.Since(writeStart))

	emitStage(req.Progress, req.Files, StageWrite, StatusDone, nil, result.Timings.Duration(StageWrite))
	return result, nil
}

func writeDumps(req *BuildRequest, res CompileResult) error {
	if res.Compile == nil {
		return nil
	}
	base := req.OutputPath
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	if req.EmitAST && res.Compile.Check != nil && res.Compile.Check.Prog != nil {
		if err := writeDump(base+".ast", res.Compile.Check.Prog); err != nil {
			return err
		}
	}
	if req.EmitLifted && res.Compile.Lifted != nil {
		if err := writeDump(base+".lifted", res.Compile.Lifted); err != nil {
			return err
		}
	}
	if req.EmitMono && res.Compile.Mono != nil {
		if err := writeDump(base+".mono", res.Compile.Mono); err != nil {
			return err
		}
	}
	return nil
}

func writeDump(path string, prog *ast.Program) error {
	if err := os.WriteFile(path, []byte(ast.DumpProgram(prog)), 0o644); err != nil {
		return fmt.Errorf("failed to write stage dump %q: %w", path, err)
	}
	return nil
}
