package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"stp/internal/config"
	"stp/internal/domain"
)

// waitDelay bounds how long Wait blocks on pipes inherited by a killed subject's children
const waitDelay = 2 * time.Second

// Runner executes the subject program for a single test case
type Runner struct {
	config   *config.Config
	comparer *Comparer
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, comparer *Comparer) *Runner {
	return &Runner{config: cfg, comparer: comparer}
}

// Run feeds the test input to the subject, persists its stdout and compares it
func (r *Runner) Run(ctx context.Context, tc domain.TestCase, workerID int) domain.TestResult {
	start := time.Now()
	result := r.run(ctx, tc, workerID)
	result.Name = tc.Name
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) run(ctx context.Context, tc domain.TestCase, workerID int) domain.TestResult {
	input, err := os.ReadFile(tc.InputPath)
	if err != nil {
		return errorResult(fmt.Sprintf("read input: %v", err), -1)
	}

	output, exitCode, err := r.execute(ctx, tc, input, workerID)
	if err != nil {
		return errorResult(err.Error(), exitCode)
	}

	outputPath := r.config.GetActualOutputPath(tc.Name)
	if err := writeOutput(outputPath, output, strings.Contains(tc.Name, "/")); err != nil {
		return errorResult(fmt.Sprintf("write output: %v", err), 0)
	}

	if r.config.Flags.Update {
		if err := os.WriteFile(tc.ExpectedPath, output, 0644); err != nil {
			return errorResult(fmt.Sprintf("update expected output: %v", err), 0)
		}
		return domain.TestResult{Status: domain.StatusPassed, Updated: true, OutputPath: outputPath}
	}

	result := r.comparer.Compare(output, tc.ExpectedPath, outputPath)
	result.OutputPath = outputPath
	return result
}

// execute runs the subject with input on stdin and returns what it wrote to stdout
func (r *Runner) execute(ctx context.Context, tc domain.TestCase, input []byte, workerID int) ([]byte, int, error) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	cmd := r.command(ctx)
	cmd.Dir = r.config.ProjectPath
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("STP_TEST_NAME=%s", tc.Name),
		fmt.Sprintf("STP_WORKER_ID=%d", workerID),
	)
	cmd.Stdin = bytes.NewReader(input)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	// Stderr is left nil: prompts written there go to the null device
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), 0, nil
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded) && r.config.Timeout > 0:
		return nil, -1, fmt.Errorf("timed out after %s", r.config.Timeout)
	case ctx.Err() != nil:
		return nil, -1, fmt.Errorf("canceled: %w", ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			return nil, code, fmt.Errorf("process terminated: %v", exitErr)
		}
		return nil, code, fmt.Errorf("process exited with code %d", code)
	}

	return nil, -1, fmt.Errorf("start %s: %w", r.config.Executable, err)
}

// command builds the subject invocation, either directly or through the shell
func (r *Runner) command(ctx context.Context) *exec.Cmd {
	if r.config.UseShell {
		line := r.config.GetCommandLine()
		if runtime.GOOS == "windows" {
			return exec.CommandContext(ctx, "cmd", "/C", line)
		}
		return exec.CommandContext(ctx, "/bin/sh", "-c", line)
	}
	return exec.CommandContext(ctx, r.config.Executable, r.config.Args...)
}

// writeOutput persists captured output; nested names get their directories created
func writeOutput(path string, output []byte, nested bool) error {
	if nested {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, output, 0644)
}

func errorResult(message string, exitCode int) domain.TestResult {
	return domain.TestResult{
		Status:   domain.StatusError,
		Error:    message,
		ExitCode: exitCode,
	}
}
