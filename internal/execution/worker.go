package execution

import (
	"context"
	"sync"
	"time"

	"stp/internal/config"
	"stp/internal/domain"
)

// WorkerPool manages a pool of workers for parallel test execution
type WorkerPool struct {
	config    *config.Config
	runner    TestRunner
	scheduler Scheduler
	progress  Progress
	priority  map[string]struct{}
}

type job struct {
	index int
	tc    domain.TestCase
}

type indexedResult struct {
	index  int
	result domain.TestResult
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner TestRunner, scheduler Scheduler) *WorkerPool {
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// SetPriority marks test names the scheduler should dispatch first
func (wp *WorkerPool) SetPriority(names map[string]struct{}) {
	wp.priority = names
}

// Execute runs every case on at most config.Processors concurrent workers.
// It returns exactly one result per case; with fail-fast enabled, or when ctx
// is canceled, cases that were never dispatched are reported as skipped.
func (wp *WorkerPool) Execute(ctx context.Context, cases []domain.TestCase) ([]domain.TestResult, time.Duration, error) {
	if len(cases) == 0 {
		return nil, 0, nil
	}
	if wp.scheduler != nil {
		cases = wp.scheduler.Order(cases, wp.priority)
	}

	// Stopping dispatch leaves in-flight subjects running to completion
	dispatchCtx, stopDispatch := context.WithCancel(ctx)
	defer stopDispatch()

	queue := make(chan job)
	results := make(chan indexedResult, len(cases))

	go func() {
		defer close(queue)
		for i, tc := range cases {
			if dispatchCtx.Err() != nil {
				return
			}
			select {
			case <-dispatchCtx.Done():
				return
			case queue <- job{index: i, tc: tc}:
			}
		}
	}()

	var mu sync.Mutex
	var passedCount, failedCount int
	startTime := time.Now()

	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(cases) {
		workerCount = len(cases)
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := range queue {
				result := wp.runner.Run(ctx, j.tc, workerID)
				results <- indexedResult{index: j.index, result: result}

				mu.Lock()
				if result.Passed() {
					passedCount++
				} else {
					failedCount++
				}
				if wp.progress != nil {
					wp.progress.Update(passedCount, failedCount)
				}
				if wp.config.Flags.FailFast && !result.Passed() {
					stopDispatch()
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]*domain.TestResult, len(cases))
	for r := range results {
		result := r.result
		collected[r.index] = &result
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}

	allResults := make([]domain.TestResult, 0, len(cases))
	for i, r := range collected {
		if r == nil {
			allResults = append(allResults, domain.TestResult{
				Name:     cases[i].Name,
				Status:   domain.StatusSkipped,
				ExitCode: -1,
			})
			continue
		}
		allResults = append(allResults, *r)
	}

	return allResults, time.Since(startTime), ctx.Err()
}
