package discovery

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"stp/internal/testutil"
)

const layout = `
-- cases/add.in --
2 3
-- cases/add.out --
5
-- cases/sub.in --
5 3
-- cases/sub.out --
2
-- cases/README.md --
not a test
-- cases/deeper/mul.in --
2 4
-- cases/.hidden/skip.in --
1
`

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.WriteArchive(t, tmpDir, layout)
	root := filepath.Join(tmpDir, "cases")

	t.Run("lists input files in the directory", func(t *testing.T) {
		scanner := NewScanner(".in", ".out", false)
		cases, err := scanner.Scan(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cases) != 2 {
			t.Fatalf("expected 2 test cases, got %d: %v", len(cases), cases)
		}
		if cases[0].Name != "add" || cases[1].Name != "sub" {
			t.Errorf("unexpected names %s, %s", cases[0].Name, cases[1].Name)
		}
		if cases[0].ExpectedPath != filepath.Join(root, "add.out") {
			t.Errorf("unexpected expected path %s", cases[0].ExpectedPath)
		}
		if cases[0].InputPath != filepath.Join(root, "add.in") {
			t.Errorf("unexpected input path %s", cases[0].InputPath)
		}
	})

	t.Run("recursive mode descends and skips hidden dirs", func(t *testing.T) {
		scanner := NewScanner(".in", ".out", true)
		cases, err := scanner.Scan(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cases) != 3 {
			t.Fatalf("expected 3 test cases, got %d: %v", len(cases), cases)
		}
		names := map[string]bool{}
		for _, tc := range cases {
			names[tc.Name] = true
		}
		if !names["deeper/mul"] {
			t.Errorf("expected nested case deeper/mul, got %v", names)
		}
		if names[".hidden/skip"] {
			t.Error("hidden directory should be skipped")
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := NewScanner(".in", ".out", false).Scan("/non/existent/path")
		if err == nil {
			t.Fatal("expected error for non-existent directory")
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected the stat error to be wrapped, got %v", err)
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "testfile.txt")
		if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		_, err := NewScanner(".in", ".out", false).Scan(testFile)
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}

func TestScanner_SkipsNonRegularInputs(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.WriteArchive(t, tmpDir, `
-- cases/add.in --
2 3
-- inputs/shared.txt --
1 1
-- elsewhere/dir/keep --
`)
	root := filepath.Join(tmpDir, "cases")

	if err := os.Symlink(filepath.Join(tmpDir, "elsewhere", "dir"), filepath.Join(root, "linkdir.in")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(filepath.Join(tmpDir, "inputs", "shared.txt"), filepath.Join(root, "linked.in")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(tmpDir, "gone"), filepath.Join(root, "dangling.in")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	for _, recursive := range []bool{false, true} {
		cases, err := NewScanner(".in", ".out", recursive).Scan(root)
		if err != nil {
			t.Fatalf("recursive=%v: unexpected error: %v", recursive, err)
		}

		var names []string
		for _, tc := range cases {
			names = append(names, tc.Name)
		}
		if len(names) != 2 || names[0] != "add" || names[1] != "linked" {
			t.Errorf("recursive=%v: expected [add linked], got %v", recursive, names)
		}
	}
}
