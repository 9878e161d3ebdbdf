package buildpipeline

import (
	"context"
	"fmt"
	"time"

	"fern/internal/driver"
	"fern/internal/observ"
)

// CompileRequest configures the shared compilation pipeline.
type CompileRequest struct {
	TargetPath     string
	MaxDiagnostics int
	Progress       ProgressSink
	Files          []string
}

// CompileResult captures compilation artefacts and stage timings.
type CompileResult struct {
	Compile *driver.CompileResult
	Timings Timings
}

// Compile runs the full pipeline on the request target, translating driver
// phase events into progress events.
func Compile(ctx context.Context, req *CompileRequest) (CompileResult, error) {
	var result CompileResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing compile request")
	}
	if req.TargetPath == "" {
		return result, fmt.Errorf("missing target path")
	}

	if req.Progress != nil && len(req.Files) > 0 {
		emitQueued(req.Progress, req.Files)
	}
	phases := &phaseObserver{sink: req.Progress, files: req.Files}

	opts := &driver.Options{
		MaxDiagnostics: req.MaxDiagnostics,
		Phase:          phases.OnPhase,
	}
	compileRes, err := driver.CompileFile(ctx, req.TargetPath, opts)
	if compileRes != nil {
		result.Compile = compileRes
		recordTimings(&result, compileRes.Timing)
	}
	if err != nil {
		emitStage(req.Progress, req.Files, phases.current(), StatusError, err, 0)
		return result, err
	}
	emitStage(req.Progress, req.Files, StageEmit, StatusDone, nil, result.Timings.Duration(StageEmit))
	return result, nil
}

// phaseObserver maps fine-grained driver phases onto the coarse stages the
// progress UI shows.
type phaseObserver struct {
	sink  ProgressSink
	files []string
	stage Stage
}

// OnPhase updates the progress UI based on compiler phase events.
func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	if p == nil {
		return
	}
	if ev.Status != driver.PhaseStart {
		return
	}
	stage := stageForPhase(ev.Name)
	if stage == "" || stage == p.stage {
		return
	}
	p.stage = stage
	emitStage(p.sink, p.files, stage, StatusWorking, nil, 0)
}

func (p *phaseObserver) current() Stage {
	if p == nil || p.stage == "" {
		return StageParse
	}
	return p.stage
}

func stageForPhase(name string) Stage {
	switch name {
	case "load", "parse":
		return StageParse
	case "check":
		return StageCheck
	case "lift", "mono":
		return StageLower
	case "codegen":
		return StageEmit
	}
	return ""
}

func recordTimings(result *CompileResult, report observ.Report) {
	if result == nil || len(report.Phases) == 0 {
		return
	}
	result.Timings.Set(StageParse, sumPhases(report, "load", "parse"))
	result.Timings.Set(StageCheck, sumPhases(report, "check"))
	result.Timings.Set(StageLower, sumPhases(report, "lift", "mono"))
	result.Timings.Set(StageEmit, sumPhases(report, "codegen"))
}

func sumPhases(report observ.Report, names ...string) time.Duration {
	nameSet := make(map[string]struct{}, len(names))
	for _, name := range names {
		nameSet[name] = struct{}{}
	}
	var totalMS float64
	for _, phase := range report.Phases {
		if _, ok := nameSet[phase.Name]; ok {
			totalMS += phase.DurationMS
		}
	}
	return time.Duration(totalMS * float64(time.Millisecond))
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}

func emitStage(sink ProgressSink, files []string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	}
}
