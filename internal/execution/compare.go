package execution

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"stp/internal/config"
	"stp/internal/diff"
	"stp/internal/domain"
)

// Comparer checks captured output against the expected output file
type Comparer struct {
	config *config.Config
}

// NewComparer creates a new Comparer
func NewComparer(cfg *config.Config) *Comparer {
	return &Comparer{config: cfg}
}

// Compare classifies actual against the file at expectedPath.
// A missing expected file fails the test with an error instead of a diff.
func (c *Comparer) Compare(actual []byte, expectedPath, actualPath string) domain.TestResult {
	expected, err := os.ReadFile(expectedPath)
	if err != nil {
		message := fmt.Sprintf("read expected output: %v", err)
		if errors.Is(err, fs.ErrNotExist) {
			message = fmt.Sprintf("expected output not found: %s", expectedPath)
		}
		return domain.TestResult{Status: domain.StatusFailed, Error: message}
	}

	text := diff.Unified(actual, expected, actualPath, expectedPath, c.config.ContextLines)
	if text == "" {
		return domain.TestResult{Status: domain.StatusPassed}
	}
	return domain.TestResult{Status: domain.StatusFailed, Diff: text}
}
