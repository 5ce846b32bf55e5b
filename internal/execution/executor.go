package execution

import (
	"context"
	"time"

	"stp/internal/domain"
)

// Executor executes test cases and returns one result per case
type Executor interface {
	Execute(ctx context.Context, cases []domain.TestCase) ([]domain.TestResult, time.Duration, error)
	SetProgress(progress Progress)
	SetPriority(names map[string]struct{})
}

// TestRunner runs a single test case on behalf of a worker
type TestRunner interface {
	Run(ctx context.Context, tc domain.TestCase, workerID int) domain.TestResult
}

// Progress receives running pass/fail counts
type Progress interface {
	Update(successCount, failCount int)
	Finish()
}
