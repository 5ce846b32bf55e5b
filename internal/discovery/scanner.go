package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"stp/internal/config"
	"stp/internal/domain"
)

// Scanner finds test cases in a test directory
type Scanner struct {
	inputSuffix  string
	outputSuffix string
	recursive    bool
}

// NewScanner creates a new Scanner
func NewScanner(inputSuffix, outputSuffix string, recursive bool) *Scanner {
	return &Scanner{
		inputSuffix:  inputSuffix,
		outputSuffix: outputSuffix,
		recursive:    recursive,
	}
}

// NewScannerFromConfig creates a Scanner using the configured suffixes
func NewScannerFromConfig(cfg *config.Config) *Scanner {
	return NewScanner(cfg.InputSuffix, cfg.OutputSuffix, cfg.Recursive)
}

// Scan finds all test cases in the given directory.
// Any failure to list the directory is returned and no cases are reported.
func (s *Scanner) Scan(root string) ([]domain.TestCase, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("test directory does not exist: %w", err)
		}
		return nil, fmt.Errorf("test directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test directory is not a directory: %s", root)
	}

	var cases []domain.TestCase
	if s.recursive {
		cases, err = s.walk(root)
	} else {
		cases, err = s.list(root)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })
	return cases, nil
}

func (s *Scanner) list(root string) ([]domain.TestCase, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read test directory %s: %w", root, err)
	}

	var cases []domain.TestCase
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), s.inputSuffix) || !isRegular(filepath.Join(root, entry.Name()), entry) {
			continue
		}
		cases = append(cases, s.newCase(root, entry.Name()))
	}
	return cases, nil
}

func (s *Scanner) walk(root string) ([]domain.TestCase, error) {
	var cases []domain.TestCase

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			// Skip hidden directories (starting with .)
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), s.inputSuffix) || !isRegular(path, d) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		cases = append(cases, s.newCase(root, rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan test directory %s: %w", root, err)
	}

	return cases, nil
}

// isRegular reports whether entry is a regular file, following symlinks
func isRegular(path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// newCase builds a test case from a path relative to root
func (s *Scanner) newCase(root, rel string) domain.TestCase {
	base := strings.TrimSuffix(rel, s.inputSuffix)
	return domain.TestCase{
		Name:         filepath.ToSlash(base),
		InputPath:    filepath.Join(root, rel),
		ExpectedPath: filepath.Join(root, base+s.outputSuffix),
	}
}
