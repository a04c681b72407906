package history

import (
	"time"

	"github.com/google/uuid"
)

// Analysis is one persisted scoring run for a repository.
type Analysis struct {
	ID        string    `json:"id" db:"id"`
	Owner     string    `json:"owner" db:"owner"`
	Repo      string    `json:"repo" db:"repo"`
	Total     int       `json:"total" db:"total"`
	Tier      string    `json:"tier" db:"tier"`
	Level     string    `json:"level" db:"level"`
	Breakdown string    `json:"breakdown,omitempty" db:"breakdown"` // JSON dimension results
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LeaderboardEntry ranks a repository by its best recorded score.
type LeaderboardEntry struct {
	Rank       int       `json:"rank"`
	Owner      string    `json:"owner"`
	Repo       string    `json:"repo"`
	BestTotal  int       `json:"best_total"`
	Tier       string    `json:"tier"`
	Level      string    `json:"level"`
	Analyses   int       `json:"analyses"`
	LastScored time.Time `json:"last_scored"`
}

// NewAnalysis creates an analysis record with a generated ID.
func NewAnalysis(owner, repo string, total int, tier, level, breakdown string) *Analysis {
	return &Analysis{
		ID:        uuid.New().String(),
		Owner:     owner,
		Repo:      repo,
		Total:     total,
		Tier:      tier,
		Level:     level,
		Breakdown: breakdown,
		CreatedAt: time.Now().UTC(),
	}
}
