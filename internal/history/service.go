package history

import (
	"encoding/json"
	"log/slog"

	"github.com/repogauge/repogauge/internal/scoring"
)

// Service records score reports and serves history and leaderboard queries.
type Service struct {
	repo *Repository
}

// NewService creates a new history service
func NewService(db *DB) *Service {
	return &Service{repo: NewRepository(db)}
}

// Record persists one score report. Called asynchronously after an
// analysis; a storage failure is logged, never surfaced to the caller.
func (s *Service) Record(owner, repo string, report scoring.ScoreReport) {
	breakdown, err := json.Marshal(report.Dimensions)
	if err != nil {
		slog.Error("Failed to encode breakdown", "error", err, "repo", owner+"/"+repo)
		breakdown = nil
	}

	analysis := NewAnalysis(owner, repo, report.Total, string(report.Tier), string(report.Level), string(breakdown))
	if err := s.repo.Save(analysis); err != nil {
		slog.Error("Failed to record analysis", "error", err, "repo", owner+"/"+repo)
		return
	}

	slog.Info("Analysis recorded", "repo", owner+"/"+repo, "total", report.Total, "tier", report.Tier)
}

// Recent returns the latest analyses for a repository, newest first.
func (s *Service) Recent(owner, repo string, limit int) ([]Analysis, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.RecentForRepo(owner, repo, limit)
}

// Leaderboard ranks analyzed repositories by best total. Tier and level are
// classified from the best total so they always agree with the engine.
func (s *Service) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	entries, err := s.repo.Leaderboard(limit)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		tier, level := scoring.ClassifyTier(entries[i].BestTotal)
		entries[i].Tier = string(tier)
		entries[i].Level = string(level)
	}
	return entries, nil
}

// Count returns how many analyses have been stored.
func (s *Service) Count() (int, error) {
	return s.repo.CountAnalyses()
}
