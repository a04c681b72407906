package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRepositorySnapshotNormalizesPaths(t *testing.T) {
	snap := NewRepositorySnapshot(
		[]string{"README.md", "/src/App.py", "src/app.py", "  ", "tests/"},
		nil, "", "", false, nil,
	)

	assert.Len(t, snap.Paths, 3)
	assert.True(t, snap.HasPath("readme.md"))
	assert.True(t, snap.HasPath("src/app.py"))
	assert.True(t, snap.HasPath("tests"))
	assert.False(t, snap.HasPath(""))
}

func TestHasPathIsCaseInsensitive(t *testing.T) {
	snap := NewRepositorySnapshot([]string{"Makefile"}, nil, "", "", false, nil)

	assert.True(t, snap.HasPath("makefile"))
	assert.True(t, snap.HasPath("Makefile"))
	assert.False(t, snap.HasPath("makefile.am"))
}

func TestNewRepositorySnapshotNormalizesTopics(t *testing.T) {
	snap := NewRepositorySnapshot(nil, nil, "", "", false, []string{"Go", " CLI ", "", "go"})

	assert.Len(t, snap.Topics, 2)
	_, hasGo := snap.Topics["go"]
	_, hasCLI := snap.Topics["cli"]
	assert.True(t, hasGo)
	assert.True(t, hasCLI)
}
