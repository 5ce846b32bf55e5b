package execution

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"stp/internal/domain"
)

func TestFailuresFirstScheduler_Order(t *testing.T) {
	cases := []domain.TestCase{{Name: "mul"}, {Name: "add"}, {Name: "sub"}, {Name: "div"}}
	priority := map[string]struct{}{"sub": {}, "div": {}}

	ordered := NewFailuresFirstScheduler().Order(cases, priority)

	var got []string
	for _, tc := range ordered {
		got = append(got, tc.Name)
	}
	want := []string{"div", "sub", "add", "mul"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
	if cases[0].Name != "mul" {
		t.Error("input slice must not be reordered")
	}
}
