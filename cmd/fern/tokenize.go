package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fern/internal/diag"
	"fern/internal/lexer"
	"fern/internal/source"
	"fern/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file.fn>",
	Short: "Dump the token stream of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := source.NewFileSet()
		id, err := fs.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load file: %w", err)
		}
		file := fs.Get(id)

		bag := diag.NewBag(maxDiagnostics(cmd))
		tokens := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		out := cmd.OutOrStdout()
		for _, tok := range tokens {
			start, _ := fs.Resolve(tok.Span)
			if tok.Kind == token.EOF {
				fmt.Fprintf(out, "%d:%d\t%s\n", start.Line, start.Col, tok.Kind)
				continue
			}
			fmt.Fprintf(out, "%d:%d\t%s\t%q\n", start.Line, start.Col, tok.Kind, tok.Text)
		}

		if bag.Len() > 0 {
			printDiagnostics(cmd, bag, fs)
		}
		if bag.HasErrors() {
			return fmt.Errorf("tokenization reported errors")
		}
		return nil
	},
}
