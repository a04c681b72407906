package mentor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/repogauge/repogauge/internal/monitoring"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-flash-latest"
)

// Feedback is the mentor's contribution to an analysis response. Generated
// reports whether it came from the AI collaborator or from the rule-based
// fallback; either way the deterministic score report is unaffected.
type Feedback struct {
	Summary   string `json:"summary"`
	Advice    string `json:"advice"`
	Generated bool   `json:"generated"`
}

// Client calls the Gemini API to turn a score breakdown into coaching prose.
// It is strictly best-effort: every failure mode degrades to the fallback.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	metrics *monitoring.Metrics
}

// NewClient creates a mentor client. An empty API key disables the remote
// call entirely; the client then always answers with the fallback.
func NewClient(apiKey string, metrics *monitoring.Metrics) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		metrics: metrics,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// NewClientWithBaseURL creates a client pointed at a custom API host, used
// by tests.
func NewClientWithBaseURL(apiKey, baseURL string, metrics *monitoring.Metrics) *Client {
	c := NewClient(apiKey, metrics)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// IsEnabled reports whether the remote mentor is configured.
func (c *Client) IsEnabled() bool {
	return c.apiKey != ""
}

// Mentor generates feedback for the given prompt. total is the overall
// score, used only to pick a fallback branch when the remote call is
// disabled or fails.
func (c *Client) Mentor(ctx context.Context, prompt string, total int) Feedback {
	if !c.IsEnabled() {
		return fallbackFeedback(total)
	}

	if c.metrics != nil {
		c.metrics.IncrementMentorCalls()
	}

	feedback, err := c.generate(ctx, prompt)
	if err != nil {
		slog.Warn("Mentor generation failed, using fallback", "error", err)
		if c.metrics != nil {
			c.metrics.IncrementMentorFailures()
		}
		return fallbackFeedback(total)
	}

	feedback.Generated = true
	return feedback
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) (Feedback, error) {
	reqBody := generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Feedback{}, fmt.Errorf("failed to encode mentor request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Feedback{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Feedback{}, fmt.Errorf("mentor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Feedback{}, fmt.Errorf("mentor API answered status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Feedback{}, fmt.Errorf("failed to decode mentor response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return Feedback{}, fmt.Errorf("mentor response contained no candidates")
	}

	return parseFeedback(decoded.Candidates[0].Content.Parts[0].Text)
}

// parseFeedback extracts the summary/advice JSON the prompt asks for,
// tolerating markdown code fences around it.
func parseFeedback(text string) (Feedback, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var feedback Feedback
	if err := json.Unmarshal([]byte(text), &feedback); err != nil {
		return Feedback{}, fmt.Errorf("mentor response was not valid JSON: %w", err)
	}
	if feedback.Summary == "" {
		return Feedback{}, fmt.Errorf("mentor response missing summary")
	}
	return feedback, nil
}

// fallbackFeedback mirrors the remote mentor's evaluative tone with fixed
// rules keyed off the total score.
func fallbackFeedback(total int) Feedback {
	switch {
	case total >= 80:
		return Feedback{
			Summary: "Excellent project depth and a clean, well-organized codebase.",
			Advice:  "Keep the momentum: grow the automated test suite, track issues openly, and consider inviting outside contributors.",
		}
	case total >= 50:
		return Feedback{
			Summary: "Strong structure and consistency; testing and documentation need attention.",
			Advice:  "Add unit tests for the core paths, flesh out the README with setup and usage instructions, and wire up CI with GitHub Actions.",
		}
	default:
		return Feedback{
			Summary: "A basic starting point with gaps in documentation and repository hygiene.",
			Advice:  "Start with a README that explains setup, organize source files into directories, and commit regularly with meaningful messages.",
		}
	}
}
