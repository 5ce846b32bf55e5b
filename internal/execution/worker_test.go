package execution

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stp/internal/config"
	"stp/internal/domain"
)

type fakeRunner struct {
	delay     time.Duration
	fail      map[string]bool
	active    int32
	maxActive int32
	calls     int32
}

func (f *fakeRunner) Run(ctx context.Context, tc domain.TestCase, workerID int) domain.TestResult {
	n := atomic.AddInt32(&f.active, 1)
	for {
		peak := atomic.LoadInt32(&f.maxActive)
		if n <= peak || atomic.CompareAndSwapInt32(&f.maxActive, peak, n) {
			break
		}
	}
	atomic.AddInt32(&f.calls, 1)
	time.Sleep(f.delay)
	atomic.AddInt32(&f.active, -1)

	if f.fail[tc.Name] {
		return domain.TestResult{Name: tc.Name, Status: domain.StatusFailed, Diff: "-x\n+y\n"}
	}
	return domain.TestResult{Name: tc.Name, Status: domain.StatusPassed}
}

type recordingProgress struct {
	mu       sync.Mutex
	updates  int
	finished bool
	last     [2]int
}

func (p *recordingProgress) Update(successCount, failCount int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates++
	p.last = [2]int{successCount, failCount}
}

func (p *recordingProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished = true
}

func numberedCases(n int) []domain.TestCase {
	cases := make([]domain.TestCase, n)
	for i := range cases {
		cases[i] = domain.TestCase{Name: fmt.Sprintf("case_%02d", i)}
	}
	return cases
}

func TestWorkerPool_OneResultPerCase(t *testing.T) {
	cfg := config.New()
	cfg.Processors = 3
	runner := &fakeRunner{delay: 10 * time.Millisecond, fail: map[string]bool{"case_04": true}}
	progress := &recordingProgress{}

	pool := NewWorkerPool(cfg, runner, NewFailuresFirstScheduler())
	pool.SetProgress(progress)

	results, duration, err := pool.Execute(context.Background(), numberedCases(20))
	require.NoError(t, err)
	assert.Positive(t, duration)

	require.Len(t, results, 20)
	seen := map[string]bool{}
	for _, r := range results {
		assert.False(t, seen[r.Name], "duplicate result for %s", r.Name)
		seen[r.Name] = true
	}

	summary := domain.Summarize(results)
	assert.Equal(t, 19, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.LessOrEqual(t, atomic.LoadInt32(&runner.maxActive), int32(3))

	assert.Equal(t, 20, progress.updates)
	assert.Equal(t, [2]int{19, 1}, progress.last)
	assert.True(t, progress.finished)
}

func TestWorkerPool_Empty(t *testing.T) {
	pool := NewWorkerPool(config.New(), &fakeRunner{}, nil)

	results, _, err := pool.Execute(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestWorkerPool_FailFast(t *testing.T) {
	cfg := config.New()
	cfg.Processors = 1
	cfg.Flags.FailFast = true
	runner := &fakeRunner{fail: map[string]bool{"case_02": true}}

	pool := NewWorkerPool(cfg, runner, NewFailuresFirstScheduler())
	results, _, err := pool.Execute(context.Background(), numberedCases(10))
	require.NoError(t, err)

	require.Len(t, results, 10, "skipped cases still produce a result")
	summary := domain.Summarize(results)
	assert.Equal(t, 1, summary.Failed)
	assert.Positive(t, summary.Skipped)
	assert.Equal(t, int(atomic.LoadInt32(&runner.calls)), summary.Passed+summary.Failed)
}

func TestWorkerPool_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{}
	pool := NewWorkerPool(config.New(), runner, nil)
	results, _, err := pool.Execute(ctx, numberedCases(5))

	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 5)
	for _, r := range results {
		assert.Equal(t, domain.StatusSkipped, r.Status)
	}
	assert.Zero(t, atomic.LoadInt32(&runner.calls))
}

func TestWorkerPool_PriorityDispatchedFirst(t *testing.T) {
	cfg := config.New()
	cfg.Processors = 1
	cfg.Flags.FailFast = true
	runner := &fakeRunner{delay: 5 * time.Millisecond, fail: map[string]bool{"case_07": true}}

	pool := NewWorkerPool(cfg, runner, NewFailuresFirstScheduler())
	pool.SetPriority(map[string]struct{}{"case_07": {}})

	results, _, err := pool.Execute(context.Background(), numberedCases(8))
	require.NoError(t, err)

	assert.Equal(t, "case_07", results[0].Name)
	assert.Equal(t, domain.StatusFailed, results[0].Status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&runner.calls))
}
