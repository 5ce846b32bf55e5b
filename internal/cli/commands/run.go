package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"stp/internal/cli"
	"stp/internal/config"
	"stp/internal/discovery"
	"stp/internal/domain"
	"stp/internal/execution"
	"stp/internal/parser"
	"stp/internal/storage"
	"stp/internal/ui"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config   *config.Config
	filter   *discovery.Filter
	executor execution.Executor
	parser   parser.Parser
	storage  storage.Storage
	viewer   ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	executor execution.Executor,
	parser parser.Parser,
	st storage.Storage,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:   cfg,
		filter:   filter,
		executor: executor,
		parser:   parser,
		storage:  st,
		viewer:   viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	formatter := ui.NewFormatter(rc.config, out)

	// A failure here is reported and the run goes on; writes then fail per test
	execution.EnsureOutputDir(rc.config.GetOutputDir(), out)

	// Discover tests
	tests, err := discovery.NewScannerFromConfig(rc.config).Scan(rc.config.GetTestDir())
	if err != nil {
		return err
	}

	// Filter tests
	selected := rc.config.Flags.NameFilter != ""
	tests = rc.filter.FilterByName(tests, rc.config.Flags.NameFilter)

	last := rc.loadLastRun(cmd.ErrOrStderr())
	if rc.config.Flags.OnlyFailed {
		if last == nil {
			color.New(color.FgYellow).Fprintln(out, "No previous run found, running all tests")
		} else {
			selected = true
			tests = rc.filter.FilterByNames(tests, last.FailedNames())
		}
	}

	// An empty test directory still ends with a 0/0 summary; an empty selection does not
	if len(tests) == 0 && selected {
		color.New(color.FgYellow).Fprintln(out, "No tests to execute")
		return nil
	}

	// Failures of the last run go first
	if last != nil {
		rc.executor.SetPriority(last.FailedNames())
	} else {
		rc.executor.SetPriority(nil)
	}

	if len(tests) > 0 && ui.ProgressEnabled(rc.config.Flags.NoProgress) {
		rc.executor.SetProgress(ui.NewProgressBar(len(tests)))
	} else {
		rc.executor.SetProgress(nil)
	}

	formatter.PrintRunInfo(len(tests))

	// Execute tests
	results, duration, execErr := rc.executor.Execute(cmd.Context(), tests)

	summary := domain.Summarize(results)
	formatter.PrintResults(results)
	formatter.PrintSummary(summary)
	formatter.PrintDuration(duration)

	// Save results
	failures := rc.parser.ParseFailures(results, tests)
	output := storage.NewRunOutput(uuid.NewString(), rc.config.GetCommandLine(), results, failures, duration, rc.config.Processors)
	if err := rc.storage.Save(output); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	if rc.config.HistoryEnabled() {
		if err := rc.record(cmd, output, results); err != nil {
			color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "Warning: run not recorded in history: %v\n", err)
		}
	}

	if execErr != nil {
		return cli.WrapExitError(cli.ExitCommandError, "run interrupted", execErr)
	}

	if rc.config.Flags.OpenFails && len(output.Details) > 0 {
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}

	if rc.config.Flags.Strict && !summary.AllPassed() {
		return cli.NewExitError(cli.ExitFailure, fmt.Sprintf("%d of %d tests did not pass", summary.Total-summary.Passed, summary.Total))
	}
	return nil
}

// loadLastRun returns the previous run, or nil when there is none
func (rc *RunCommand) loadLastRun(errOut io.Writer) *domain.TestResultsOutput {
	last, err := rc.storage.Load()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			color.New(color.FgYellow).Fprintf(errOut, "Warning: ignoring last run: %v\n", err)
		}
		return nil
	}
	return last
}

func (rc *RunCommand) record(cmd *cobra.Command, output *domain.TestResultsOutput, results []domain.TestResult) error {
	history, err := storage.OpenSQL(rc.config.HistoryDriver, rc.config.HistoryDSN)
	if err != nil {
		return err
	}
	defer history.Close()

	// An interrupted run is still recorded
	return history.Record(context.WithoutCancel(cmd.Context()), output, results)
}
