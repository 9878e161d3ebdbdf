package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fern/internal/driver"
)

var checkNoCache bool

func init() {
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "skip the on-disk check cache")
}

var checkCmd = &cobra.Command{
	Use:   "check [file.fn|dir]",
	Short: "Parse and type check without generating code",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := resolveTarget(args)
		if err != nil {
			return err
		}

		opts := &driver.Options{
			MaxDiagnostics: maxDiagnostics(cmd),
			NoCache:        checkNoCache,
		}
		if !checkNoCache {
			// A broken cache dir degrades to uncached checking.
			if cache, cacheErr := driver.OpenDiskCache(driver.CacheAppName); cacheErr == nil {
				opts.Cache = cache
			}
		}

		var results []*driver.CheckResult
		if isDir(target) {
			files, listErr := driver.ListSourceFiles(target)
			if listErr != nil {
				return listErr
			}
			if len(files) == 0 {
				return fmt.Errorf("no %s files under %q", driver.SourceExt, target)
			}
			results, err = driver.CheckMany(cmd.Context(), files, 0, opts)
		} else {
			var res *driver.CheckResult
			res, err = driver.CheckFile(cmd.Context(), target, opts)
			results = []*driver.CheckResult{res}
		}
		if err != nil {
			return err
		}

		failed := 0
		for _, res := range results {
			if res.Bag.Len() > 0 {
				printDiagnostics(cmd, res.Bag, res.FileSet)
			}
			if !res.OK() {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(results))
		}
		if !quiet(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "checked %d files, no errors\n", len(results))
		}
		return nil
	},
}
