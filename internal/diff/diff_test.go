package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnified_Identical(t *testing.T) {
	assert.Empty(t, Unified([]byte("5\n"), []byte("5\n"), "actual", "expected", 3))
	assert.Empty(t, Unified(nil, []byte{}, "actual", "expected", 3))
}

func TestUnified_SingleLineChange(t *testing.T) {
	got := Unified([]byte("1\n"), []byte("2\n"), "my_outputs/sub.out", "test_cases/sub.out", 3)

	want := "--- my_outputs/sub.out\n" +
		"+++ test_cases/sub.out\n" +
		"@@ -1 +1 @@\n" +
		"-1\n" +
		"+2\n"
	assert.Equal(t, want, got)
}

func TestUnified_Context(t *testing.T) {
	actual := []byte("a\nb\nc\nd\ne\nf\ng\n")
	expected := []byte("a\nb\nc\nX\ne\nf\ng\n")

	got := Unified(actual, expected, "a", "b", 1)
	require.NotEmpty(t, got)
	assert.Contains(t, got, "@@ -3,3 +3,3 @@\n c\n-d\n+X\n e\n")
	assert.NotContains(t, got, " a\n")
}

func TestUnified_TrailingNewline(t *testing.T) {
	got := Unified([]byte("5"), []byte("5\n"), "actual", "expected", 3)

	require.NotEmpty(t, got, "byte difference must produce a diff")
	assert.Contains(t, got, "-5\n"+NoNewlineMarker+"\n+5\n")
}

func TestUnified_CarriageReturn(t *testing.T) {
	got := Unified([]byte("5\r\n"), []byte("5\n"), "actual", "expected", 3)
	assert.NotEmpty(t, got)
}

func TestStat(t *testing.T) {
	unified := Unified([]byte("1\n2\n3\n"), []byte("1\n4\n5\n3\n"), "actual", "expected", 3)

	added, removed := Stat(unified)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
}

func TestStat_IgnoresHeaders(t *testing.T) {
	unified := "--- a\n+++ b\n@@ -1 +1 @@\n--- dashes\n+++ pluses\n"

	added, removed := Stat(unified)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
}
