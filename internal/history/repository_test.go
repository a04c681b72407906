package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveAndRecentForRepo(t *testing.T) {
	repo := NewRepository(testDB(t))

	first := NewAnalysis("octocat", "demo", 42, "Bronze", "Beginner", `[]`)
	first.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := NewAnalysis("octocat", "demo", 87, "Silver", "Intermediate", `[]`)
	second.CreatedAt = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	other := NewAnalysis("someone", "else", 10, "Bronze", "Beginner", `[]`)

	require.NoError(t, repo.Save(first))
	require.NoError(t, repo.Save(second))
	require.NoError(t, repo.Save(other))

	recent, err := repo.RecentForRepo("octocat", "demo", 10)
	require.NoError(t, err)

	require.Len(t, recent, 2)
	assert.Equal(t, 87, recent[0].Total, "newest first")
	assert.Equal(t, 42, recent[1].Total)

	count, err := repo.CountAnalyses()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestLeaderboardRanksByBestTotal(t *testing.T) {
	repo := NewRepository(testDB(t))

	require.NoError(t, repo.Save(NewAnalysis("a", "low", 30, "Bronze", "Beginner", "")))
	require.NoError(t, repo.Save(NewAnalysis("b", "high", 95, "Gold", "Advanced", "")))
	require.NoError(t, repo.Save(NewAnalysis("b", "high", 60, "Bronze", "Beginner", "")))
	require.NoError(t, repo.Save(NewAnalysis("c", "mid", 80, "Silver", "Intermediate", "")))

	entries, err := repo.Leaderboard(10)
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, "high", entries[0].Repo)
	assert.Equal(t, 95, entries[0].BestTotal, "best score wins, not latest")
	assert.Equal(t, 2, entries[0].Analyses)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "mid", entries[1].Repo)
	assert.Equal(t, "low", entries[2].Repo)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestRecentForRepoEmpty(t *testing.T) {
	repo := NewRepository(testDB(t))

	recent, err := repo.RecentForRepo("ghost", "nothing", 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
