package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultExecutable is the subject program under test
	DefaultExecutable = "./main"
	// DefaultTestDir holds the input and expected output files
	DefaultTestDir = "./test_cases"
	// DefaultOutputDir receives the captured output of every run
	DefaultOutputDir = "./my_outputs"
	// DefaultInputSuffix marks input files
	DefaultInputSuffix = ".in"
	// DefaultOutputSuffix marks expected and actual output files
	DefaultOutputSuffix = ".out"
	// DefaultResultsFile is the last-run JSON file name, stored in the output dir
	DefaultResultsFile = "stp-results.json"
	// DefaultProcessors is the default number of concurrent subjects
	DefaultProcessors = 4
	// DefaultTimeout bounds a single subject run
	DefaultTimeout = 10 * time.Second
	// DefaultContextLines is the unified diff context size
	DefaultContextLines = 3
	// DefaultConfigFile is looked up in the project path
	DefaultConfigFile = "stp.yaml"
	// DefaultHistoryDriver is used when a history DSN is set without a driver
	DefaultHistoryDriver = "sqlite3"
)
