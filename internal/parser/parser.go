package parser

import "stp/internal/domain"

// Parser turns non-passing results into persisted failure records
type Parser interface {
	ParseFailure(result domain.TestResult, tc domain.TestCase) domain.TestFailure
	ParseFailures(results []domain.TestResult, cases []domain.TestCase) []domain.TestFailure
}
