package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repogauge/repogauge/internal/types"
)

func emptySnapshot() types.RepositorySnapshot {
	return types.NewRepositorySnapshot(nil, nil, "", "", false, nil)
}

func matureSnapshot() types.RepositorySnapshot {
	readme := strings.Repeat("word ", 400) + "\n## Install\npip install app\n## Usage\napp --help"
	return types.NewRepositorySnapshot(
		[]string{"tests/unit_test.py", ".github/workflows/ci.yml", "src/app.py", ".gitignore", "readme.md"},
		commitHistory(50),
		readme,
		"A small service with a properly engineered repository",
		true,
		[]string{"python", "testing"},
	)
}

func TestScoreEmptyRepository(t *testing.T) {
	report, err := Score(emptySnapshot())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Total)
	assert.Equal(t, TierBronze, report.Tier)
	assert.Equal(t, LevelBeginner, report.Level)

	require.Len(t, report.Dimensions, 5)
	for _, dim := range report.Dimensions {
		assert.Zero(t, dim.Score, "dimension %s should score zero on an empty snapshot", dim.Name)
		assert.Empty(t, dim.SignalsFound)
	}

	// The highest weight gaps come first: layout, then testing, then hygiene.
	require.NotEmpty(t, report.Roadmap)
	assert.Equal(t, remediationFor(DimArchitecture, SignalSourceLayout), report.Roadmap[0])
	assert.Equal(t, remediationFor(DimTesting, SignalTestSuite), report.Roadmap[1])
}

func TestScoreMatureRepository(t *testing.T) {
	report, err := Score(matureSnapshot())
	require.NoError(t, err)

	// Per the point table: testing 20 (no linter config), architecture 12
	// (no dependency manifest), hygiene 20, documentation 20, metadata 15.
	expected := map[Dimension]int{
		DimTesting:       20,
		DimArchitecture:  12,
		DimGitHygiene:    20,
		DimDocumentation: 20,
		DimMetadata:      15,
	}
	for _, dim := range report.Dimensions {
		assert.Equal(t, expected[dim.Name], dim.Score, "dimension %s", dim.Name)
	}

	assert.Equal(t, 87, report.Total)
	assert.GreaterOrEqual(t, report.Total, silverThreshold)
	assert.Equal(t, TierSilver, report.Tier)
	assert.Equal(t, LevelIntermediate, report.Level)

	// Only the linter and manifest gaps remain.
	assert.Contains(t, report.Roadmap, remediationFor(DimTesting, SignalLinterConfig))
	assert.Contains(t, report.Roadmap, remediationFor(DimArchitecture, SignalDependencyManifest))
}

func TestScoreIsDeterministic(t *testing.T) {
	snap := matureSnapshot()

	first, err := Score(snap)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := Score(snap)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestScoreTotalAlwaysInRange(t *testing.T) {
	snapshots := []types.RepositorySnapshot{
		emptySnapshot(),
		matureSnapshot(),
		snapshotWithPaths("main.py"),
		snapshotWithPaths("src/a.go", "go.mod", ".gitignore"),
		types.NewRepositorySnapshot(nil, commitHistory(1000), strings.Repeat("docs ", 5000), "desc long enough here", true, nil),
	}

	for _, snap := range snapshots {
		report, err := Score(snap)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, report.Total, 0)
		assert.LessOrEqual(t, report.Total, 100)
	}
}

func TestBuildMentorPrompt(t *testing.T) {
	snap := matureSnapshot()
	report, err := Score(snap)
	require.NoError(t, err)

	prompt := BuildMentorPrompt("octocat/hello-world", report, snap)

	assert.Contains(t, prompt, "octocat/hello-world")
	assert.Contains(t, prompt, "87/100")
	assert.Contains(t, prompt, "Silver")
	assert.Contains(t, prompt, "Testing & Quality: 20/25")
	for _, step := range report.Roadmap {
		assert.Contains(t, prompt, step)
	}
	assert.Contains(t, prompt, "valid JSON")

	// Pure formatting: same inputs, same prompt.
	assert.Equal(t, prompt, BuildMentorPrompt("octocat/hello-world", report, snap))
}
