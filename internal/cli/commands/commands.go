package commands

import (
	"os"

	"stp/internal/cli"
	"stp/internal/config"
	"stp/internal/discovery"
	"stp/internal/execution"
	"stp/internal/migration"
	"stp/internal/parser"
	"stp/internal/storage"
	"stp/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Migrate *MigrateCommand
	Fails   *FailsCommand
	History *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	filter := discovery.NewFilter()
	comparer := execution.NewComparer(cfg)
	runner := execution.NewRunner(cfg, comparer)
	scheduler := execution.NewFailuresFirstScheduler()
	executor := execution.NewWorkerPool(cfg, runner, scheduler)
	diffParser := parser.NewDiffParser()
	jsonStorage := storage.NewJSONStorage(cfg)
	migrator := migration.NewSQLMigrator(cfg, os.Stdout)
	errorViewer := ui.NewErrorViewer(jsonStorage)

	return &Commands{
		Run:     NewRunCommand(cfg, filter, executor, diffParser, jsonStorage, errorViewer),
		List:    NewListCommand(cfg, filter, jsonStorage),
		Migrate: NewMigrateCommand(cfg, migrator),
		Fails:   NewFailsCommand(cfg, jsonStorage, errorViewer),
		History: NewHistoryCommand(cfg),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVarP(&flags.Project, "project", "C", "", "Project directory that relative paths are resolved against")
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Config file (default <project>/"+config.DefaultConfigFile+")")

	// Layers config file, .env and flags over the defaults once flags are parsed
	loadConfig := func(cmd *cobra.Command, args []string) error {
		if flags.Project != "" {
			cfg.ProjectPath = flags.Project
		}
		// Explicit zero values must still override the config file
		flags.ShellSet = cmd.Flags().Changed("shell")
		flags.TimeoutSet = cmd.Flags().Changed("timeout")
		return cfg.Reload(flags.ConfigFile, flags.ToConfigFlags())
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run all test cases against the subject program",
		Long:    "Feed every <name>.in to the subject in parallel, store its stdout in the output directory and compare it with <name>.out",
		Args:    cobra.NoArgs,
		RunE:    c.Run.Execute,
		PreRunE: loadConfig,
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of workers to use (default from config, 4)")
	runCmd.Flags().StringVarP(&flags.TestDir, "test-dir", "t", "", "Directory holding the test cases")
	runCmd.Flags().StringVarP(&flags.OutputDir, "output-dir", "o", "", "Directory receiving the actual outputs")
	runCmd.Flags().StringVarP(&flags.Executable, "executable", "x", "", "Subject program to run")
	runCmd.Flags().StringArrayVar(&flags.Args, "arg", nil, "Argument passed to the subject (repeatable, shell-quoted in --shell mode)")
	runCmd.Flags().BoolVar(&flags.Shell, "shell", false, "Run the subject through the shell instead of executing it directly")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Per-test timeout, 0 disables (default from config, 10s)")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g. 'sub*' or 'edge/*')")
	runCmd.Flags().BoolVarP(&flags.Recursive, "recursive", "r", false, "Discover test cases in subdirectories too")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop dispatching tests after the first failure")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only tests that did not pass in the last run")
	runCmd.Flags().BoolVar(&flags.Update, "update", false, "Write the actual output to the expected files instead of comparing")
	runCmd.Flags().BoolVar(&flags.Strict, "strict", false, "Exit with code 1 unless every test passed")
	runCmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "Do not draw the progress bar")
	runCmd.Flags().BoolVar(&flags.OpenFails, "open-fails", false, "Open the fails viewer when the run finishes with failures")
	runCmd.Flags().StringVar(&flags.HistoryDSN, "history-dsn", "", "Record the run in this SQL history database")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered test cases",
		Long:    "Scan and list all test cases without executing them; cases that failed in the last run are marked [F]",
		Args:    cobra.NoArgs,
		RunE:    c.List.Execute,
		PreRunE: loadConfig,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g. 'sub*' or 'edge/*')")
	listCmd.Flags().StringVarP(&flags.TestDir, "test-dir", "t", "", "Directory holding the test cases")
	listCmd.Flags().BoolVarP(&flags.Recursive, "recursive", "r", false, "Discover test cases in subdirectories too")
	rootCmd.AddCommand(listCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:     "migrate",
		Short:   "Create the run history database and tables",
		Long:    "Provision the SQL history store configured by history_dsn (creating the MySQL database if needed)",
		Args:    cobra.NoArgs,
		RunE:    c.Migrate.Execute,
		PreRunE: loadConfig,
	}
	migrateCmd.Flags().StringVar(&flags.HistoryDSN, "history-dsn", "", "SQL history database to provision")
	rootCmd.AddCommand(migrateCmd)

	// Fails command
	failsCmd := &cobra.Command{
		Use:     "fails",
		Short:   "View test failures interactively",
		Long:    "Display test failures from the last run in an interactive viewer",
		Args:    cobra.NoArgs,
		RunE:    c.Fails.Execute,
		PreRunE: loadConfig,
	}
	rootCmd.AddCommand(failsCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:     "history [run-id]",
		Short:   "Show recorded runs",
		Long:    "List the latest runs from the SQL history, or the per-test results of one run",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.History.Execute,
		PreRunE: loadConfig,
	}
	historyCmd.Flags().IntVarP(&flags.HistoryRuns, "runs", "n", 10, "Number of runs to show")
	historyCmd.Flags().StringVar(&flags.HistoryDSN, "history-dsn", "", "SQL history database to read")
	rootCmd.AddCommand(historyCmd)
}
