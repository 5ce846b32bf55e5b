// Package diff computes line-level unified diffs of captured and expected output.
package diff

import (
	"bytes"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// NoNewlineMarker follows a final line that lacks a trailing newline
const NoNewlineMarker = `\ No newline at end of file`

// Unified returns a unified diff turning actual into expected.
// The result is empty iff the two inputs are byte-identical.
func Unified(actual, expected []byte, fromName, toName string, context int) string {
	if bytes.Equal(actual, expected) {
		return ""
	}

	ud := difflib.UnifiedDiff{
		A:        splitLines(actual),
		B:        splitLines(expected),
		FromFile: fromName,
		ToFile:   toName,
		Context:  context,
	}

	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		// GetUnifiedDiffString writes to memory and only fails on writer errors
		return err.Error()
	}
	return text
}

// splitLines splits data into newline-terminated lines.
// A final line without newline carries the marker so it differs from its terminated twin.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}

	lines := strings.SplitAfter(string(data), "\n")
	last := len(lines) - 1
	if lines[last] == "" {
		return lines[:last]
	}
	lines[last] += "\n" + NoNewlineMarker + "\n"
	return lines
}

// Stat counts the added and removed lines of a unified diff
func Stat(unified string) (added, removed int) {
	inHunk := false
	for _, line := range strings.Split(unified, "\n") {
		if strings.HasPrefix(line, "@@") {
			inHunk = true
			continue
		}
		if !inHunk {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}
