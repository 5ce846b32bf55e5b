package parser

import (
	"stp/internal/diff"
	"stp/internal/domain"
)

// Messages used when a result carries no error text of its own
const (
	MessageDiffers = "output differs from expected"
	MessageSkipped = "not run"
)

// DiffParser builds failure records from runner results
type DiffParser struct{}

var _ Parser = (*DiffParser)(nil)

// NewDiffParser creates a new DiffParser
func NewDiffParser() *DiffParser {
	return &DiffParser{}
}

// ParseFailure describes a single non-passing result
func (p *DiffParser) ParseFailure(result domain.TestResult, tc domain.TestCase) domain.TestFailure {
	failure := domain.TestFailure{
		TestName:     result.Name,
		Status:       result.Status,
		Message:      result.Error,
		Diff:         result.Diff,
		InputPath:    tc.InputPath,
		ExpectedPath: tc.ExpectedPath,
		OutputPath:   result.OutputPath,
	}

	if result.Diff != "" {
		failure.Added, failure.Removed = diff.Stat(result.Diff)
	}

	if failure.Message == "" {
		switch result.Status {
		case domain.StatusSkipped:
			failure.Message = MessageSkipped
		default:
			failure.Message = MessageDiffers
		}
	}

	return failure
}

// ParseFailures collects failure records for every non-passing result.
// Cases are matched to results by name.
func (p *DiffParser) ParseFailures(results []domain.TestResult, cases []domain.TestCase) []domain.TestFailure {
	byName := make(map[string]domain.TestCase, len(cases))
	for _, tc := range cases {
		byName[tc.Name] = tc
	}

	failures := []domain.TestFailure{}
	for _, result := range results {
		if result.Passed() {
			continue
		}
		failures = append(failures, p.ParseFailure(result, byName[result.Name]))
	}
	return failures
}
