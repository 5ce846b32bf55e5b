package domain

import "time"

// Status classifies the outcome of a single test case
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// TestResult represents the result of executing a single test case
type TestResult struct {
	Name       string        // Test case name
	Status     Status        // Outcome classification
	Diff       string        // Unified diff when the output differs
	Error      string        // Error message for execution or comparison problems
	ExitCode   int           // Exit code of the subject (-1 if it never exited normally)
	OutputPath string        // Where the captured output was persisted
	Updated    bool          // Expected output was rewritten instead of compared
	Duration   time.Duration // Time taken to execute
}

// Passed reports whether the test passed
func (r TestResult) Passed() bool {
	return r.Status == StatusPassed
}

// RunSummary is derived from a set of results and never stored on its own
type RunSummary struct {
	Total   int
	Passed  int
	Failed  int
	Errored int
	Skipped int
}

// Summarize folds results into a RunSummary
func Summarize(results []TestResult) RunSummary {
	s := RunSummary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
		default:
			s.Errored++
		}
	}
	return s
}

// AllPassed reports whether every test passed
func (s RunSummary) AllPassed() bool {
	return s.Passed == s.Total
}

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	RunID           string  `json:"run_id"`
	Executable      string  `json:"executable"`
	Total           int     `json:"total"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Errored         int     `json:"errored"`
	Skipped         int     `json:"skipped"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// Summary rebuilds the RunSummary stored in the metadata
func (m TestResultsMeta) Summary() RunSummary {
	return RunSummary{
		Total:   m.Total,
		Passed:  m.Passed,
		Failed:  m.Failed,
		Errored: m.Errored,
		Skipped: m.Skipped,
	}
}

// TestResultsOutput is the complete output structure for a run
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}

// FailedNames returns the names of all non-passing tests in the output
func (o *TestResultsOutput) FailedNames() map[string]struct{} {
	names := make(map[string]struct{}, len(o.Details))
	for _, f := range o.Details {
		names[f.TestName] = struct{}{}
	}
	return names
}
