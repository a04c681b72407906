package history

import (
	"database/sql"
	"fmt"
	"time"
)

// Repository provides data access for analysis history.
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Save persists one analysis record.
func (r *Repository) Save(a *Analysis) error {
	_, err := r.db.Exec(
		`INSERT INTO analyses (id, owner, repo, total, tier, level, breakdown, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Owner, a.Repo, a.Total, a.Tier, a.Level, a.Breakdown, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// RecentForRepo returns the most recent analyses for one repository, newest
// first.
func (r *Repository) RecentForRepo(owner, repo string, limit int) ([]Analysis, error) {
	rows, err := r.db.Query(
		`SELECT id, owner, repo, total, tier, level, breakdown, created_at
		 FROM analyses
		 WHERE owner = ? AND repo = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		owner, repo, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	return scanAnalyses(rows)
}

// Leaderboard returns repositories ranked by their best recorded total.
func (r *Repository) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	rows, err := r.db.Query(
		`SELECT owner, repo, MAX(total) AS best_total, COUNT(*) AS analyses, MAX(created_at) AS last_scored
		 FROM analyses
		 GROUP BY owner, repo
		 ORDER BY best_total DESC, last_scored DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]LeaderboardEntry, 0, limit)
	for rows.Next() {
		var entry LeaderboardEntry
		var lastScored string
		if err := rows.Scan(&entry.Owner, &entry.Repo, &entry.BestTotal, &entry.Analyses, &lastScored); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		// MAX() strips the column's DATETIME affinity, so the driver hands
		// the timestamp back as text.
		entry.LastScored = parseStoredTime(lastScored)
		entry.Rank = len(entries) + 1
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func parseStoredTime(value string) time.Time {
	layouts := []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05-07:00",
		time.RFC3339Nano,
		time.RFC3339,
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// CountAnalyses returns the total number of stored analyses.
func (r *Repository) CountAnalyses() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM analyses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return count, nil
}

func scanAnalyses(rows *sql.Rows) ([]Analysis, error) {
	var analyses []Analysis
	for rows.Next() {
		var a Analysis
		if err := rows.Scan(&a.ID, &a.Owner, &a.Repo, &a.Total, &a.Tier, &a.Level, &a.Breakdown, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}
