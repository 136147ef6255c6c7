package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aadc/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the on-disk result cache",
	Long:  "Drop every cached correction result so the next run recomputes from scratch.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("aadc")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to drop cache: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, "cache cleared")
	return nil
}
