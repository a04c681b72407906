package adapters

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/repogauge/repogauge/internal/errors"
	"github.com/repogauge/repogauge/internal/types"
)

const (
	defaultBaseURL = "https://api.github.com"
	commitPageSize = 100
)

// githubRepo is the subset of the repository metadata payload we consume.
type githubRepo struct {
	Name          string   `json:"name"`
	FullName      string   `json:"full_name"`
	Description   string   `json:"description"`
	DefaultBranch string   `json:"default_branch"`
	Topics        []string `json:"topics"`
	License       *struct {
		Key string `json:"key"`
	} `json:"license"`
}

// githubTree is the recursive git tree listing.
type githubTree struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
	} `json:"tree"`
	Truncated bool `json:"truncated"`
}

// githubCommit is one entry of the commit listing.
type githubCommit struct {
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// githubReadme is the readme payload with base64 content.
type githubReadme struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// GitHubAdapter fetches repository metadata from the GitHub REST API and
// normalizes it into a RepositorySnapshot. It never inspects file contents
// beyond the README.
type GitHubAdapter struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewGitHubAdapter creates a new GitHub adapter. The token is optional;
// unauthenticated requests just hit lower rate limits.
func NewGitHubAdapter(token string) *GitHubAdapter {
	return &GitHubAdapter{
		token:   token,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}

// NewGitHubAdapterWithBaseURL creates an adapter pointed at a custom API
// host, used by tests.
func NewGitHubAdapterWithBaseURL(token, baseURL string) *GitHubAdapter {
	a := NewGitHubAdapter(token)
	a.baseURL = strings.TrimRight(baseURL, "/")
	return a
}

// BuildSnapshot fetches everything the scoring engine needs for one
// repository. The repository metadata call must succeed; tree, commits, and
// readme are fetched concurrently and degrade to absent data on failure,
// because absence of data is a scoreable state, not an error.
func (g *GitHubAdapter) BuildSnapshot(ctx context.Context, owner, repo string) (types.RepositorySnapshot, error) {
	meta, err := g.fetchRepo(ctx, owner, repo)
	if err != nil {
		return types.RepositorySnapshot{}, err
	}

	var (
		paths   []string
		commits []types.Commit
		readme  string
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		paths = g.fetchTree(egCtx, owner, repo, meta.DefaultBranch)
		return nil
	})
	eg.Go(func() error {
		commits = g.fetchCommits(egCtx, owner, repo)
		return nil
	})
	eg.Go(func() error {
		readme = g.fetchReadme(egCtx, owner, repo)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return types.RepositorySnapshot{}, err
	}

	return types.NewRepositorySnapshot(
		paths,
		commits,
		readme,
		meta.Description,
		meta.License != nil,
		meta.Topics,
	), nil
}

// fetchRepo fetches the repository metadata. This is the only call whose
// failure aborts snapshot construction.
func (g *GitHubAdapter) fetchRepo(ctx context.Context, owner, repo string) (*githubRepo, error) {
	resp, err := g.get(ctx, fmt.Sprintf("%s/repos/%s/%s", g.baseURL, owner, repo))
	if err != nil {
		return nil, errors.NewExternalAPIError("GitHub", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NewNotFoundError(fmt.Sprintf("repository %s/%s not found", owner, repo))
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.NewExternalAPIError("GitHub",
			fmt.Errorf("status %d fetching repo metadata: %s", resp.StatusCode, string(body)))
	}

	var meta githubRepo
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, errors.NewExternalAPIError("GitHub", fmt.Errorf("failed to decode repo metadata: %w", err))
	}
	if meta.DefaultBranch == "" {
		meta.DefaultBranch = "main"
	}

	return &meta, nil
}

// fetchTree fetches the recursive file tree of the default branch. Any
// failure yields an empty listing.
func (g *GitHubAdapter) fetchTree(ctx context.Context, owner, repo, branch string) []string {
	u := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1", g.baseURL, owner, repo, url.PathEscape(branch))

	var tree githubTree
	if !g.getJSON(ctx, u, &tree) {
		return nil
	}

	paths := make([]string, 0, len(tree.Tree))
	for _, entry := range tree.Tree {
		paths = append(paths, entry.Path)
	}
	return paths
}

// fetchCommits fetches up to one page of the commit history and returns it
// in chronological order. The API lists newest first; an empty repository
// answers 409, which we treat as no history.
func (g *GitHubAdapter) fetchCommits(ctx context.Context, owner, repo string) []types.Commit {
	u := fmt.Sprintf("%s/repos/%s/%s/commits?per_page=%d", g.baseURL, owner, repo, commitPageSize)

	var listing []githubCommit
	if !g.getJSON(ctx, u, &listing) {
		return nil
	}

	commits := make([]types.Commit, 0, len(listing))
	for _, c := range listing {
		commits = append(commits, types.Commit{
			Date:    c.Commit.Author.Date,
			Message: c.Commit.Message,
		})
	}
	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Date.Before(commits[j].Date)
	})
	return commits
}

// fetchReadme fetches and decodes the README; absence yields "".
func (g *GitHubAdapter) fetchReadme(ctx context.Context, owner, repo string) string {
	var payload githubReadme
	if !g.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s/readme", g.baseURL, owner, repo), &payload) {
		return ""
	}

	if payload.Encoding == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
		if err != nil {
			return ""
		}
		return string(decoded)
	}
	return payload.Content
}

// getJSON performs a GET and decodes a 200 response, reporting success.
// Non-200 responses and transport errors are absorbed: callers treat them
// as absent data.
func (g *GitHubAdapter) getJSON(ctx context.Context, url string, out interface{}) bool {
	resp, err := g.get(ctx, url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	return json.NewDecoder(resp.Body).Decode(out) == nil
}

func (g *GitHubAdapter) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "RepoGauge/1.0")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	return g.client.Do(req)
}

// ParseRepoInput accepts "owner/repo" or a full GitHub URL and returns the
// owner and repository name.
func ParseRepoInput(input string) (owner, repo string, err error) {
	input = strings.TrimSpace(input)
	input = strings.TrimSuffix(input, "/")
	input = strings.TrimSuffix(input, ".git")

	if strings.Contains(input, "://") || strings.HasPrefix(input, "github.com/") {
		if i := strings.Index(input, "github.com/"); i >= 0 {
			input = input[i+len("github.com/"):]
		} else {
			return "", "", errors.NewValidationError("only github.com repositories are supported")
		}
	}

	parts := strings.Split(input, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.NewValidationError("repository must be given as owner/repo or a GitHub URL")
	}

	return parts[0], parts[1], nil
}
