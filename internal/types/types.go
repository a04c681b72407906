package types

import (
	"strings"
	"time"
)

// Commit is a single entry from the repository's commit history.
type Commit struct {
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
}

// RepositorySnapshot is the normalized, immutable view of a repository's
// structure and metadata. It is built once per analysis request and is the
// only input the scoring engine sees. Absent fields are represented by zero
// values ("" / empty slice), never by errors.
type RepositorySnapshot struct {
	// Paths holds every file and directory path, lowercased, using "/"
	// separators and no leading slash.
	Paths map[string]struct{} `json:"paths"`

	// Commits is the commit history in chronological order.
	Commits []Commit `json:"commits"`

	ReadmeText  string              `json:"readme_text"`
	Description string              `json:"description"`
	HasLicense  bool                `json:"has_license"`
	Topics      map[string]struct{} `json:"topics"`
}

// NewRepositorySnapshot normalizes raw listing data into a snapshot. Paths
// are lowercased and deduplicated so scorers never depend on listing order
// or case.
func NewRepositorySnapshot(paths []string, commits []Commit, readme, description string, hasLicense bool, topics []string) RepositorySnapshot {
	snap := RepositorySnapshot{
		Paths:       make(map[string]struct{}, len(paths)),
		Commits:     commits,
		ReadmeText:  readme,
		Description: description,
		HasLicense:  hasLicense,
		Topics:      make(map[string]struct{}, len(topics)),
	}

	for _, p := range paths {
		p = strings.ToLower(strings.Trim(strings.TrimSpace(p), "/"))
		if p != "" {
			snap.Paths[p] = struct{}{}
		}
	}

	for _, t := range topics {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			snap.Topics[t] = struct{}{}
		}
	}

	return snap
}

// HasPath reports whether the exact normalized path exists in the snapshot.
func (s RepositorySnapshot) HasPath(path string) bool {
	_, ok := s.Paths[strings.ToLower(path)]
	return ok
}

// AnalyzeRequest represents the request structure for the analyze endpoint
type AnalyzeRequest struct {
	Repo string `json:"repo" binding:"required"`
}
