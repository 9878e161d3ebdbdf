package main

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"fern/internal/ast"
	"fern/internal/diag"
	"fern/internal/parser"
	"fern/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.fn>",
	Short: "Parse a file and dump its AST",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := source.NewFileSet()
		id, err := fs.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load file: %w", err)
		}

		bag := diag.NewBag(maxDiagnostics(cmd))
		maxErrors, err := safecast.Conv[uint](maxDiagnostics(cmd))
		if err != nil {
			return fmt.Errorf("diagnostics limit overflow: %w", err)
		}
		prog, ok := parser.ParseFile(fs.Get(id), parser.Options{
			MaxErrors: maxErrors,
			Reporter:  diag.BagReporter{Bag: bag},
		})

		if prog != nil {
			fmt.Fprint(cmd.OutOrStdout(), ast.DumpProgram(prog))
		}
		if bag.Len() > 0 {
			printDiagnostics(cmd, bag, fs)
		}
		if !ok {
			return fmt.Errorf("parsing reported errors")
		}
		return nil
	},
}
