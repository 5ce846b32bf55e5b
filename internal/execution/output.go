package execution

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// EnsureOutputDir creates dir if it is missing.
// Failures are reported to log and the run continues; later writes then fail per test.
func EnsureOutputDir(dir string, log io.Writer) bool {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return true
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		color.New(color.FgRed).Fprintf(log, "Error creating output directory: %v\n", err)
		return false
	}

	color.New(color.FgWhite).Fprintf(log, "Created output directory: %s\n", dir)
	return true
}
