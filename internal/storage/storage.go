package storage

import (
	"time"

	"stp/internal/config"
	"stp/internal/domain"
)

// Storage persists and loads the last run (e.g. for the fails viewer and --failed)
type Storage interface {
	Save(output *domain.TestResultsOutput) error
	Load() (*domain.TestResultsOutput, error)
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// NewRunOutput assembles the persisted form of a finished run
func NewRunOutput(runID, executable string, results []domain.TestResult, failures []domain.TestFailure, duration time.Duration, workers int) *domain.TestResultsOutput {
	summary := domain.Summarize(results)
	if failures == nil {
		failures = []domain.TestFailure{}
	}

	return &domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{
			RunID:           runID,
			Executable:      executable,
			Total:           summary.Total,
			Passed:          summary.Passed,
			Failed:          summary.Failed,
			Errored:         summary.Errored,
			Skipped:         summary.Skipped,
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Workers:         workers,
			Timestamp:       time.Now().UTC().Format(time.RFC3339),
		},
		Details: failures,
	}
}
