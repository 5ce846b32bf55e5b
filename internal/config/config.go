package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string `yaml:"-"`

	// Subject settings
	Executable string        `yaml:"executable"`
	Args       []string      `yaml:"args"`
	UseShell   bool          `yaml:"shell"`
	Timeout    time.Duration `yaml:"timeout"`

	// Test case layout
	TestDir      string `yaml:"test_dir"`
	OutputDir    string `yaml:"output_dir"`
	InputSuffix  string `yaml:"input_suffix"`
	OutputSuffix string `yaml:"output_suffix"`
	Recursive    bool   `yaml:"recursive"`

	// Output settings
	ResultsFile  string `yaml:"results_file"`
	ContextLines int    `yaml:"context_lines"`

	// Execution settings
	Processors int `yaml:"processors"`

	// Run history (disabled when HistoryDSN is empty)
	HistoryDriver string `yaml:"history_driver"`
	HistoryDSN    string `yaml:"history_dsn"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Flags holds command-line flags
type Flags struct {
	Processors  int
	TestDir     string
	OutputDir   string
	Executable  string
	Args        []string
	Shell       bool
	ShellSet    bool // --shell given explicitly, so false overrides the config
	Timeout     time.Duration
	TimeoutSet  bool // --timeout given explicitly, so 0 overrides the config
	NameFilter  string
	Recursive   bool
	FailFast    bool
	OnlyFailed  bool
	Update      bool
	Strict      bool
	NoProgress  bool
	OpenFails   bool
	HistoryDSN  string
	HistoryRuns int
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:   DefaultProjectPath,
		Executable:    DefaultExecutable,
		Timeout:       DefaultTimeout,
		TestDir:       DefaultTestDir,
		OutputDir:     DefaultOutputDir,
		InputSuffix:   DefaultInputSuffix,
		OutputSuffix:  DefaultOutputSuffix,
		ResultsFile:   DefaultResultsFile,
		ContextLines:  DefaultContextLines,
		Processors:    DefaultProcessors,
		HistoryDriver: DefaultHistoryDriver,
		Flags:         Flags{Processors: DefaultProcessors},
	}
}

// ApplyFlags copies explicitly set flag values over the loaded configuration
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags

	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.TestDir != "" {
		c.TestDir = flags.TestDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Executable != "" {
		c.Executable = flags.Executable
	}
	if len(flags.Args) > 0 {
		c.Args = flags.Args
	}
	if flags.Shell || flags.ShellSet {
		c.UseShell = flags.Shell
	}
	// An explicit --timeout 0 disables the timeout
	if flags.Timeout > 0 || flags.TimeoutSet {
		c.Timeout = flags.Timeout
	}
	if flags.Recursive {
		c.Recursive = true
	}
	if flags.HistoryDSN != "" {
		c.HistoryDSN = flags.HistoryDSN
	}
}

// resolve makes p relative to the project path unless it is absolute
func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectPath, p)
}

// GetTestDir returns the directory holding the test cases
func (c *Config) GetTestDir() string {
	return c.resolve(c.TestDir)
}

// GetOutputDir returns the directory receiving the actual outputs
func (c *Config) GetOutputDir() string {
	return c.resolve(c.OutputDir)
}

// GetOutputPath returns the full path to the last-run JSON file.
// Resolves to an absolute path so run and fails always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.GetOutputDir(), c.ResultsFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetActualOutputPath returns where the captured output of a test is written
func (c *Config) GetActualOutputPath(name string) string {
	return filepath.Join(c.GetOutputDir(), filepath.FromSlash(name)+c.OutputSuffix)
}

// GetCommandLine returns the subject invocation as a single shell command line.
// Args are shell-quoted; the executable is kept verbatim so shell mode may use shell syntax in it.
func (c *Config) GetCommandLine() string {
	return strings.TrimSpace(c.Executable + " " + shellquote.Join(c.Args...))
}

// HistoryEnabled reports whether runs should be recorded in the SQL history
func (c *Config) HistoryEnabled() bool {
	return c.HistoryDSN != ""
}
