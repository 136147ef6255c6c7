package render

import (
	"fmt"
	"io"

	"github.com/pmezard/go-difflib/difflib"
)

const diffContextLines = 3

// WriteDiff emits a unified diff between the original and corrected
// lines. Dry runs label the right side as proposed.
func WriteDiff(w io.Writer, path string, original, corrected []string, dryRun bool) error {
	toName := "b/" + path
	if dryRun {
		toName += " (proposed)"
	}
	diff := difflib.UnifiedDiff{
		A:        appendNewlines(original),
		B:        appendNewlines(corrected),
		FromFile: "a/" + path,
		ToFile:   toName,
		Context:  diffContextLines,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Errorf("diff %s: %w", path, err)
	}
	_, err = io.WriteString(w, text)
	return err
}

// difflib expects each element to end with its line terminator.
func appendNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}
	return out
}
