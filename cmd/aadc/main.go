package main

import (
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"aadc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "aadc [flags] [files...]",
	Short: "Auto-align ASCII diagram corrector",
	Long: `aadc detects box-drawn diagrams in text and realigns their right
borders by inserting whitespace. Reads stdin when no files are given.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runCorrect,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cleanCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	cobra.OnInitialize(applyColorMode)
	rootCmd.SetFlagErrorFunc(flagError)

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(exitCodeFor(err))
	}
}

// flagError turns cobra's flag-parse failures into usage errors so
// they exit with the invalid-arguments code.
func flagError(_ *cobra.Command, err error) error {
	return &usageError{msg: err.Error()}
}

func applyColorMode() {
	mode, err := rootCmd.PersistentFlags().GetString("color")
	if err != nil {
		return
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}
	// "auto" keeps the library's terminal detection.
}

func printError(err error) {
	// A dry run with pending changes is not an error, only an exit code.
	if errors.Is(err, errWouldChange) {
		return
	}
	var reported *reportedError
	if errors.As(err, &reported) {
		return
	}
	color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
