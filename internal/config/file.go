package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables recognised by LoadEnv
const (
	EnvExecutable    = "STP_EXECUTABLE"
	EnvTestDir       = "STP_TEST_DIR"
	EnvOutputDir     = "STP_OUTPUT_DIR"
	EnvProcessors    = "STP_PROCESSORS"
	EnvTimeout       = "STP_TIMEOUT"
	EnvShell         = "STP_SHELL"
	EnvHistoryDriver = "STP_HISTORY_DRIVER"
	EnvHistoryDSN    = "STP_HISTORY_DSN"
)

// LoadFile merges a YAML config file into c.
// A missing file is not an error unless it was asked for explicitly.
func (c *Config) LoadFile(path string, explicit bool) error {
	if path == "" {
		path = filepath.Join(c.ProjectPath, DefaultConfigFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadEnv loads the project's .env file (if any) and applies STP_* overrides
func (c *Config) LoadEnv() error {
	envPath := filepath.Join(c.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envPath, err)
	}

	if v := os.Getenv(EnvExecutable); v != "" {
		c.Executable = v
	}
	if v := os.Getenv(EnvTestDir); v != "" {
		c.TestDir = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvProcessors); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvProcessors, err)
		}
		c.Processors = n
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvShell); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvShell, err)
		}
		c.UseShell = b
	}
	if v := os.Getenv(EnvHistoryDriver); v != "" {
		c.HistoryDriver = v
	}
	if v := os.Getenv(EnvHistoryDSN); v != "" {
		c.HistoryDSN = v
	}
	return nil
}

// Load builds the effective configuration: defaults, config file, environment, flags
func Load(projectPath, configFile string, flags Flags) (*Config, error) {
	cfg := New()
	if projectPath != "" {
		cfg.ProjectPath = projectPath
	}
	if err := cfg.Reload(configFile, flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Reload re-applies every layer on top of the defaults, keeping the project path
func (c *Config) Reload(configFile string, flags Flags) error {
	project := c.ProjectPath
	*c = *New()
	c.ProjectPath = project

	if err := c.LoadFile(configFile, configFile != ""); err != nil {
		return err
	}
	if err := c.LoadEnv(); err != nil {
		return err
	}
	c.ApplyFlags(flags)
	return c.Validate()
}

// Validate rejects configurations the runner cannot work with
func (c *Config) Validate() error {
	if c.Executable == "" {
		return errors.New("executable must not be empty")
	}
	if c.InputSuffix == "" || c.OutputSuffix == "" {
		return errors.New("input and output suffixes must not be empty")
	}
	if c.InputSuffix == c.OutputSuffix {
		return fmt.Errorf("input and output suffix are both %q", c.InputSuffix)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	if samePath(c.GetTestDir(), c.GetOutputDir()) {
		return fmt.Errorf("output directory %s must differ from the test directory", c.GetOutputDir())
	}
	if c.Processors <= 0 {
		c.Processors = 1
	}
	if c.ContextLines < 0 {
		c.ContextLines = DefaultContextLines
	}
	switch c.HistoryDriver {
	case "sqlite3", "mysql":
	default:
		return fmt.Errorf("unsupported history driver %q (want sqlite3 or mysql)", c.HistoryDriver)
	}
	return nil
}

// samePath reports whether a and b name the same directory after cleaning
func samePath(a, b string) bool {
	if absA, err := filepath.Abs(a); err == nil {
		a = absA
	}
	if absB, err := filepath.Abs(b); err == nil {
		b = absB
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
