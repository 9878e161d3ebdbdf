package main

import (
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"fern/internal/buildpipeline"
	"fern/internal/observ"
	"fern/internal/ui"
)

var (
	buildOutput     string
	buildEmitAST    bool
	buildEmitLifted bool
	buildEmitMono   bool
	buildTimings    bool
	buildUI         bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output path for the rendered IR (default out.ll)")
	buildCmd.Flags().BoolVar(&buildEmitAST, "emit-ast", false, "also write the checked AST dump")
	buildCmd.Flags().BoolVar(&buildEmitLifted, "emit-lifted", false, "also write the lifted program dump")
	buildCmd.Flags().BoolVar(&buildEmitMono, "emit-mono", false, "also write the monomorphized program dump")
	buildCmd.Flags().BoolVar(&buildTimings, "timings", false, "print per-stage timings")
	buildCmd.Flags().BoolVar(&buildUI, "ui", false, "interactive progress (requires a terminal)")
}

var buildCmd = &cobra.Command{
	Use:   "build [file.fn]",
	Short: "Compile a file to textual IR",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := resolveTarget(args)
		if err != nil {
			return err
		}
		if isDir(target) {
			return fmt.Errorf("%q is a directory; build compiles one file (see fern check for directories)", target)
		}

		req := &buildpipeline.BuildRequest{
			CompileRequest: buildpipeline.CompileRequest{
				TargetPath:     target,
				MaxDiagnostics: maxDiagnostics(cmd),
				Files:          []string{target},
			},
			OutputPath: buildOutput,
			EmitAST:    buildEmitAST,
			EmitLifted: buildEmitLifted,
			EmitMono:   buildEmitMono,
		}

		var res buildpipeline.BuildResult
		if buildUI && isTerminal(os.Stdout) {
			res, err = buildWithUI(cmd, req, target)
		} else {
			res, err = buildpipeline.Build(cmd.Context(), req)
		}

		if res.Compile != nil && res.Compile.Check != nil && res.Compile.Check.Bag.Len() > 0 {
			printDiagnostics(cmd, res.Compile.Check.Bag, res.Compile.Check.FileSet)
		}
		if err != nil {
			return err
		}

		if buildTimings {
			fmt.Fprint(cmd.OutOrStdout(), observ.SummaryOf(res.Compile.Timing))
		}
		if !quiet(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", res.OutputPath)
		}
		return nil
	},
}

func buildWithUI(cmd *cobra.Command, req *buildpipeline.BuildRequest, target string) (buildpipeline.BuildResult, error) {
	events := make(chan buildpipeline.Event, 64)
	req.Progress = buildpipeline.ChannelSink{Ch: events}

	var (
		res buildpipeline.BuildResult
		err error
		wg  sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(events)
		res, err = buildpipeline.Build(cmd.Context(), req)
	}()

	model := ui.NewProgressModel("building "+target, req.Files, events)
	if _, uiErr := tea.NewProgram(model).Run(); uiErr != nil {
		// Keep draining so the pipeline goroutine never blocks on the sink.
		go func() {
			for range events {
			}
		}()
	}
	wg.Wait()
	return res, err
}
