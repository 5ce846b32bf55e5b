package cli

import (
	"time"

	"stp/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	// Persistent
	Project    string
	ConfigFile string

	Processors  int
	TestDir     string
	OutputDir   string
	Executable  string
	Args        []string
	Shell       bool
	ShellSet    bool
	Timeout     time.Duration
	TimeoutSet  bool
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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:  f.Processors,
		TestDir:     f.TestDir,
		OutputDir:   f.OutputDir,
		Executable:  f.Executable,
		Args:        f.Args,
		Shell:       f.Shell,
		ShellSet:    f.ShellSet,
		Timeout:     f.Timeout,
		TimeoutSet:  f.TimeoutSet,
		NameFilter:  f.NameFilter,
		Recursive:   f.Recursive,
		FailFast:    f.FailFast,
		OnlyFailed:  f.OnlyFailed,
		Update:      f.Update,
		Strict:      f.Strict,
		NoProgress:  f.NoProgress,
		OpenFails:   f.OpenFails,
		HistoryDSN:  f.HistoryDSN,
		HistoryRuns: f.HistoryRuns,
	}
}
