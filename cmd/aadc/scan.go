package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aadc/internal/driver"
	"aadc/internal/source"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] [files...]",
	Short: "Detect diagram blocks without correcting them",
	Long:  "Run detection only and report where diagram blocks sit and how confident the detector is.",
	Args:  cobra.ArbitraryArgs,
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().BoolP("all", "a", false, "list blocks even when the quick scan rules the file out")
	scanCmd.Flags().IntP("tab-width", "t", source.DefaultTabWidth, "tab stop width (1-16)")
}

func runScan(cmd *cobra.Command, args []string) error {
	opts := driver.DefaultOptions()
	var err error
	if opts.AllBlocks, err = cmd.Flags().GetBool("all"); err != nil {
		return err
	}
	if opts.TabWidth, err = cmd.Flags().GetInt("tab-width"); err != nil {
		return err
	}
	if opts.TabWidth < 1 || opts.TabWidth > 16 {
		return usageErrorf("--tab-width must be between 1 and 16, got %d", opts.TabWidth)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	if len(args) == 0 {
		doc, err := source.ReadStdin(os.Stdin)
		if err != nil {
			return err
		}
		return printScan(doc, opts, quiet)
	}

	var firstErr error
	for _, path := range args {
		doc, err := source.Load(path)
		if err != nil {
			printError(err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if len(args) > 1 {
			fmt.Printf("==> %s <==\n", path)
		}
		if err := printScan(doc, opts, quiet); err != nil {
			return err
		}
	}
	if firstErr != nil {
		return &reportedError{err: firstErr}
	}
	return nil
}

func printScan(doc *source.Document, opts driver.Options, quiet bool) error {
	rep := driver.Scan(doc, opts)

	if !quiet {
		fmt.Printf("scanned %d line(s), %d with box characters (%.2f%%)\n",
			rep.Scan.LinesScanned, rep.Scan.LinesWithBoxChars, rep.Scan.Ratio*100)
	}
	if !rep.Scan.LikelyHasDiagrams && len(rep.Blocks) == 0 {
		fmt.Println("no diagrams detected")
		return nil
	}
	for _, block := range rep.Blocks {
		label := color.GreenString("candidate")
		if block.Confidence < opts.BlockThreshold {
			label = color.YellowString("low-confidence")
		}
		fmt.Printf("  lines %d-%d  confidence %.2f  %s\n", block.Start+1, block.End, block.Confidence, label)
	}
	return nil
}
