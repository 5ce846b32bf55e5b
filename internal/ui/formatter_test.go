package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"stp/internal/config"
	"stp/internal/domain"
	"stp/internal/storage"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func plainFormatter(t *testing.T) (*Formatter, *bytes.Buffer) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	return NewFormatter(config.New(), &buf), &buf
}

func mixedResults() []domain.TestResult {
	return []domain.TestResult{
		{Name: "sub", Status: domain.StatusFailed, Diff: "--- my_outputs/sub.out\n+++ test_cases/sub.out\n@@ -1 +1 @@\n-1\n+2\n"},
		{Name: "missing", Status: domain.StatusFailed, Error: "expected output not found: test_cases/missing.out"},
		{Name: "add", Status: domain.StatusPassed},
		{Name: "late", Status: domain.StatusSkipped},
		{Name: "crash", Status: domain.StatusError, Error: "process exited with code 2", ExitCode: 2},
	}
}

func TestFormatter_MixedRun(t *testing.T) {
	f, buf := plainFormatter(t)

	results := mixedResults()
	f.PrintResults(results)
	f.PrintSummary(domain.Summarize(results))

	newGoldie(t).Assert(t, "mixed_run", buf.Bytes())
}

func TestFormatter_AllPassed(t *testing.T) {
	f, buf := plainFormatter(t)

	results := []domain.TestResult{
		{Name: "add", Status: domain.StatusPassed},
		{Name: "mul", Status: domain.StatusPassed, Updated: true},
	}
	f.PrintResults(results)
	f.PrintSummary(domain.Summarize(results))

	newGoldie(t).Assert(t, "all_passed", buf.Bytes())
}

func TestFormatter_SummaryVerdict(t *testing.T) {
	tests := []struct {
		name      string
		summary   domain.RunSummary
		allPassed bool
	}{
		{"all passed", domain.RunSummary{Total: 3, Passed: 3}, true},
		{"one failed", domain.RunSummary{Total: 3, Passed: 2, Failed: 1}, false},
		{"one skipped", domain.RunSummary{Total: 3, Passed: 2, Skipped: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, buf := plainFormatter(t)
			f.PrintSummary(tt.summary)

			assert.Equal(t, tt.allPassed, strings.Contains(buf.String(), "All tests passed"))
			assert.Equal(t, !tt.allPassed, strings.Contains(buf.String(), "Some tests failed"))
		})
	}
}

func TestFormatter_PrintTestList(t *testing.T) {
	f, buf := plainFormatter(t)

	dir := t.TempDir()
	expected := filepath.Join(dir, "add.out")
	if err := os.WriteFile(expected, []byte("5\n"), 0644); err != nil {
		t.Fatalf("failed to write expected file: %v", err)
	}

	cases := []domain.TestCase{
		{Name: "add", ExpectedPath: expected},
		{Name: "sub", ExpectedPath: filepath.Join(dir, "sub.out")},
	}
	f.PrintTestList(cases, map[string]struct{}{"add": {}})

	want := "Found 2 test case(s):\n\n" +
		"├── add [F]\n" +
		"└── sub (no expected output)\n"
	assert.Equal(t, want, buf.String())
}

func TestFormatter_PrintHistory(t *testing.T) {
	f, buf := plainFormatter(t)

	f.PrintHistory(nil)
	assert.Equal(t, "No runs recorded\n", buf.String())

	buf.Reset()
	f.PrintHistory([]storage.RunRecord{{
		RunID:     "run-1",
		StartedAt: "2026-10-19T10:00:00Z",
		Summary:   domain.RunSummary{Total: 4, Passed: 3, Failed: 1},
		Duration:  1500 * time.Millisecond,
		Workers:   4,
	}})

	out := buf.String()
	assert.Contains(t, out, "RUN ID")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "3/4")
	assert.Contains(t, out, "1.5s")
}

func TestFormatFailureDetails(t *testing.T) {
	details := formatFailureDetails(domain.TestFailure{
		TestName:     "sub",
		Message:      "output differs from expected",
		InputPath:    "test_cases/sub.in",
		ExpectedPath: "test_cases/sub.out",
		OutputPath:   "my_outputs/sub.out",
		Diff:         "@@ -1 +1 @@\n-[1]\n+[2]\n",
	})

	assert.Contains(t, details, "[cyan]@@ -1 +1 @@[white]")
	assert.Contains(t, details, "[red]-[1[][white]", "tview tags in the diff must be escaped")
	assert.Contains(t, details, "Actual:[white]   my_outputs/sub.out")
}
