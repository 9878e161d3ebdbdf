package buildpipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordSink struct {
	events []Event
}

func (s *recordSink) OnEvent(evt Event) {
	s.events = append(s.events, evt)
}

func writeSource(t *testing.T, dir, src string) string {
	t.Helper()
	path := filepath.Join(dir, "main.fn")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestBuildWritesRenderedIR(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main : Int;\nmain = 1 + 2;\n")
	out := filepath.Join(dir, "out.ll")

	sink := &recordSink{}
	res, err := Build(context.Background(), &BuildRequest{
		CompileRequest: CompileRequest{
			TargetPath: path,
			Progress:   sink,
			Files:      []string{path},
		},
		OutputPath: out,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "define i64 @main()") {
		t.Fatalf("output missing main definition:\n%s", data)
	}
	if !res.Timings.Has(StageWrite) {
		t.Fatal("write stage timing not recorded")
	}

	var sawWorking, sawWriteDone bool
	for _, evt := range sink.events {
		if evt.Status == StatusWorking {
			sawWorking = true
		}
		if evt.Stage == StageWrite && evt.Status == StatusDone {
			sawWriteDone = true
		}
	}
	if !sawWorking || !sawWriteDone {
		t.Fatalf("event stream incomplete: %+v", sink.events)
	}
}

func TestBuildEmitsStageDumps(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main : Int;\nmain = 1;\n")
	out := filepath.Join(dir, "out.ll")

	_, err := Build(context.Background(), &BuildRequest{
		CompileRequest: CompileRequest{TargetPath: path},
		OutputPath:     out,
		EmitAST:        true,
		EmitMono:       true,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, name := range []string{"out.ast", "out.mono"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing dump %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "out.lifted")); err == nil {
		t.Fatal("unrequested lifted dump was written")
	}
}

func TestBuildDumpsCheckedAndLiftedDistinct(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main : Int;\nmain = (\\x -> x + 1) 2;\n")
	out := filepath.Join(dir, "out.ll")

	_, err := Build(context.Background(), &BuildRequest{
		CompileRequest: CompileRequest{TargetPath: path},
		OutputPath:     out,
		EmitAST:        true,
		EmitLifted:     true,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	astDump, err := os.ReadFile(filepath.Join(dir, "out.ast"))
	if err != nil {
		t.Fatalf("read ast dump: %v", err)
	}
	liftedDump, err := os.ReadFile(filepath.Join(dir, "out.lifted"))
	if err != nil {
		t.Fatalf("read lifted dump: %v", err)
	}
	if string(astDump) == string(liftedDump) {
		t.Fatalf("ast dump should show the pre-lift tree, got the lifted one:\n%s", astDump)
	}
	if !strings.Contains(string(liftedDump), "lam0") || strings.Contains(string(astDump), "lam0") {
		t.Fatalf("hoisted lambda placement wrong:\nast:\n%s\nlifted:\n%s", astDump, liftedDump)
	}
}

func TestBuildFailsOnDiagnostics(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main : Int;\nmain = nope;\n")
	out := filepath.Join(dir, "out.ll")

	sink := &recordSink{}
	_, err := Build(context.Background(), &BuildRequest{
		CompileRequest: CompileRequest{TargetPath: path, Progress: sink, Files: []string{path}},
		OutputPath:     out,
	})
	if err == nil {
		t.Fatal("expected build failure")
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Fatal("output written despite failed check")
	}

	sawError := false
	for _, evt := range sink.events {
		if evt.Status == StatusError {
			sawError = true
		}
	}
	if !sawError {
		t.Fatalf("no error event emitted: %+v", sink.events)
	}
}
