package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fern/internal/diag"
	"fern/internal/diagfmt"
	"fern/internal/project"
	"fern/internal/source"
)

func maxDiagnostics(cmd *cobra.Command) int {
	n, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil || n <= 0 {
		return 100
	}
	return n
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}

// resolveTarget picks the file to operate on: an explicit argument, or the
// manifest entry when invoked without one inside a project.
func resolveTarget(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	root, ok, err := project.FindRoot(".")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no target given and no %s found; pass a file or run inside a project", project.ManifestName)
	}
	manifest, err := project.LoadManifest(filepath.Join(root, project.ManifestName))
	if err != nil {
		return "", err
	}
	return manifest.EntryPath(root), nil
}

// isDir reports whether the target is a directory of sources.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	bag.Sort()
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
		Color:     !color.NoColor,
		ShowNotes: true,
	})
}
