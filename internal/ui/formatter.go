package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"stp/internal/config"
	"stp/internal/domain"
	"stp/internal/storage"
)

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, out io.Writer) *Formatter {
	return &Formatter{
		config: cfg,
		out:    out,
	}
}

// PrintRunInfo prints what is about to run
func (f *Formatter) PrintRunInfo(count int) {
	fmt.Fprintf(f.out, "Found %d test files\n", count)

	timeout := "none"
	if f.config.Timeout > 0 {
		timeout = f.config.Timeout.String()
	}
	color.New(color.FgWhite).Fprintf(f.out, "Subject: %s | Workers: %d | Timeout: %s\n\n",
		f.config.GetCommandLine(), f.config.Processors, timeout)
}

// PrintResults prints every result, sorted by test name
func (f *Formatter) PrintResults(results []domain.TestResult) {
	sorted := make([]domain.TestResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, r := range sorted {
		f.PrintResult(r)
	}
}

// PrintResult prints the outcome line of a single test, followed by its diff
func (f *Formatter) PrintResult(r domain.TestResult) {
	switch r.Status {
	case domain.StatusPassed:
		if r.Updated {
			green.Fprintf(f.out, "✅ Test %s UPDATED\n", r.Name)
			return
		}
		green.Fprintf(f.out, "✅ Test %s PASSED\n", r.Name)
	case domain.StatusFailed:
		if r.Diff == "" {
			red.Fprintf(f.out, "❌ Test %s FAILED: %s\n", r.Name, r.Error)
			return
		}
		red.Fprintf(f.out, "❌ Test %s FAILED: Output differs from expected\n", r.Name)
		f.printDiff(r.Diff)
	case domain.StatusSkipped:
		yellow.Fprintf(f.out, "⏭ Test %s SKIPPED\n", r.Name)
	default:
		red.Fprintf(f.out, "❌ Test %s ERROR: %s\n", r.Name, r.Error)
	}
}

func (f *Formatter) printDiff(diff string) {
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			bold.Fprintln(f.out, line)
		case strings.HasPrefix(line, "@@"):
			cyan.Fprintln(f.out, line)
		case strings.HasPrefix(line, "+"):
			green.Fprintln(f.out, line)
		case strings.HasPrefix(line, "-"):
			red.Fprintln(f.out, line)
		default:
			fmt.Fprintln(f.out, line)
		}
	}
}

// PrintSummary prints the pass/total counts and the final verdict
func (f *Formatter) PrintSummary(summary domain.RunSummary) {
	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, "===== TEST SUMMARY =====")
	fmt.Fprintf(f.out, "Passed: %d/%d\n", summary.Passed, summary.Total)

	if summary.Failed+summary.Errored+summary.Skipped > 0 {
		fmt.Fprintf(f.out, "Failed: %d | Errors: %d | Skipped: %d\n", summary.Failed, summary.Errored, summary.Skipped)
	}

	if summary.AllPassed() {
		green.Fprintln(f.out, "🎉 All tests passed!")
	} else {
		red.Fprintln(f.out, "❌ Some tests failed. Check output above for details.")
	}
}

// PrintDuration prints how long the run took
func (f *Formatter) PrintDuration(d time.Duration) {
	fmt.Fprintf(f.out, "Duration: %s\n", d.Round(time.Millisecond))
}

// PrintTestList prints discovered test cases.
// failed is optional; if set, cases in it are marked with [F] in red (from last run).
func (f *Formatter) PrintTestList(cases []domain.TestCase, failed map[string]struct{}) {
	green.Fprintf(f.out, "Found %d test case(s):\n\n", len(cases))

	for i, tc := range cases {
		connector := "├── "
		if i == len(cases)-1 {
			connector = "└── "
		}

		var markers []string
		if _, ok := failed[tc.Name]; ok {
			markers = append(markers, red.Sprint("[F]"))
		}
		if _, err := os.Stat(tc.ExpectedPath); err != nil {
			markers = append(markers, yellow.Sprint("(no expected output)"))
		}

		line := connector + cyan.Sprint(tc.Name)
		if len(markers) > 0 {
			line += " " + strings.Join(markers, " ")
		}
		fmt.Fprintln(f.out, line)
	}
}

// PrintHistory prints recorded runs as a table
func (f *Formatter) PrintHistory(records []storage.RunRecord) {
	if len(records) == 0 {
		yellow.Fprintln(f.out, "No runs recorded")
		return
	}

	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tSTARTED\tPASSED\tFAILED\tERRORS\tSKIPPED\tDURATION\tWORKERS")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d\t%d\t%d\t%s\t%d\n",
			rec.RunID, rec.StartedAt,
			rec.Summary.Passed, rec.Summary.Total,
			rec.Summary.Failed, rec.Summary.Errored, rec.Summary.Skipped,
			rec.Duration, rec.Workers)
	}
	w.Flush()
}
