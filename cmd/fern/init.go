package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fern/internal/project"
)

const initMainTemplate = `main : Int;
main = 40 + 2;
`

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a new fern project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create project dir: %w", err)
		}

		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		name := filepath.Base(abs)

		manifestPath, err := project.WriteDefaultManifest(dir, name)
		if err != nil {
			return err
		}

		srcDir := filepath.Join(dir, "src")
		if err := os.MkdirAll(srcDir, 0o755); err != nil {
			return fmt.Errorf("failed to create src dir: %w", err)
		}
		mainPath := filepath.Join(srcDir, "main.fn")
		if _, err := os.Stat(mainPath); err == nil {
			return fmt.Errorf("%s already exists", mainPath)
		}
		if err := os.WriteFile(mainPath, []byte(initMainTemplate), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", mainPath, err)
		}

		if !quiet(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\ncreated %s\n", manifestPath, mainPath)
		}
		return nil
	},
}
