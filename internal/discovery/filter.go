package discovery

import (
	"path"
	"strings"

	"stp/internal/domain"
)

// Filter filters test cases by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test cases by name pattern using wildcard matching.
// Supports patterns like "add*" or "*overflow*"; a pattern without
// wildcards matches any name containing it.
func (f *Filter) FilterByName(cases []domain.TestCase, pattern string) []domain.TestCase {
	if pattern == "" {
		return cases
	}

	var filtered []domain.TestCase
	for _, tc := range cases {
		if f.matches(tc.Name, pattern) {
			filtered = append(filtered, tc)
		}
	}
	return filtered
}

// FilterByNames keeps only the cases whose name is in names
func (f *Filter) FilterByNames(cases []domain.TestCase, names map[string]struct{}) []domain.TestCase {
	var filtered []domain.TestCase
	for _, tc := range cases {
		if _, ok := names[tc.Name]; ok {
			filtered = append(filtered, tc)
		}
	}
	return filtered
}

func (f *Filter) matches(name, pattern string) bool {
	// Match against the full name and against its last element for nested cases
	for _, candidate := range []string{name, path.Base(name)} {
		if matched, err := path.Match(pattern, candidate); err == nil && matched {
			return true
		}
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// Flexible fallback for patterns like "*over*flow*": every part must appear in order
	parts := strings.Split(pattern, "*")
	rest := name
	matchedAny := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		if strings.Contains(part, "?") {
			return false
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
		matchedAny = true
	}
	return matchedAny
}
