package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fern/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop the on-disk check cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := driver.OpenDiskCache(driver.CacheAppName)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to drop cache: %w", err)
		}
		if !quiet(cmd) {
			fmt.Fprintln(cmd.OutOrStdout(), "cache dropped")
		}
		return nil
	},
}
