package execution

import (
	"sort"

	"stp/internal/domain"
)

// Scheduler decides the dispatch order of test cases
type Scheduler interface {
	Order(cases []domain.TestCase, priority map[string]struct{}) []domain.TestCase
}

// FailuresFirstScheduler dispatches previously failing cases first, then the rest by name
type FailuresFirstScheduler struct{}

// NewFailuresFirstScheduler creates a new FailuresFirstScheduler
func NewFailuresFirstScheduler() *FailuresFirstScheduler {
	return &FailuresFirstScheduler{}
}

// Order returns a reordered copy of cases
func (s *FailuresFirstScheduler) Order(cases []domain.TestCase, priority map[string]struct{}) []domain.TestCase {
	ordered := make([]domain.TestCase, len(cases))
	copy(ordered, cases)

	sort.SliceStable(ordered, func(i, j int) bool {
		_, pi := priority[ordered[i].Name]
		_, pj := priority[ordered[j].Name]
		if pi != pj {
			return pi
		}
		return ordered[i].Name < ordered[j].Name
	})

	return ordered
}
