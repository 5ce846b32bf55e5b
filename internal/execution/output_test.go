package execution

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my_outputs")

	var log bytes.Buffer
	assert.True(t, EnsureOutputDir(dir, &log))
	assert.Contains(t, log.String(), "Created output directory")

	log.Reset()
	assert.True(t, EnsureOutputDir(dir, &log), "second call is a no-op")
	assert.Empty(t, log.String())
}

func TestEnsureOutputDir_Failure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	assert.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	var log bytes.Buffer
	assert.False(t, EnsureOutputDir(filepath.Join(blocker, "out"), &log))
	assert.Contains(t, log.String(), "Error creating output directory")
}
