package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"stp/internal/domain"
)

func TestDiffParser_ParseFailures(t *testing.T) {
	cases := []domain.TestCase{
		{Name: "add", InputPath: "t/add.in", ExpectedPath: "t/add.out"},
		{Name: "sub", InputPath: "t/sub.in", ExpectedPath: "t/sub.out"},
		{Name: "crash", InputPath: "t/crash.in", ExpectedPath: "t/crash.out"},
		{Name: "late", InputPath: "t/late.in", ExpectedPath: "t/late.out"},
	}
	results := []domain.TestResult{
		{Name: "add", Status: domain.StatusPassed},
		{Name: "sub", Status: domain.StatusFailed, OutputPath: "o/sub.out", Diff: "--- o/sub.out\n+++ t/sub.out\n@@ -1 +1 @@\n-1\n+2\n"},
		{Name: "crash", Status: domain.StatusError, Error: "process exited with code 2", ExitCode: 2},
		{Name: "late", Status: domain.StatusSkipped},
	}

	got := NewDiffParser().ParseFailures(results, cases)

	want := []domain.TestFailure{
		{
			TestName:     "sub",
			Status:       domain.StatusFailed,
			Message:      MessageDiffers,
			Diff:         results[1].Diff,
			InputPath:    "t/sub.in",
			ExpectedPath: "t/sub.out",
			OutputPath:   "o/sub.out",
			Added:        1,
			Removed:      1,
		},
		{
			TestName:     "crash",
			Status:       domain.StatusError,
			Message:      "process exited with code 2",
			InputPath:    "t/crash.in",
			ExpectedPath: "t/crash.out",
		},
		{
			TestName:     "late",
			Status:       domain.StatusSkipped,
			Message:      MessageSkipped,
			InputPath:    "t/late.in",
			ExpectedPath: "t/late.out",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected failures (-want +got):\n%s", diff)
	}
}

func TestDiffParser_AllPassed(t *testing.T) {
	got := NewDiffParser().ParseFailures([]domain.TestResult{{Name: "add", Status: domain.StatusPassed}}, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
