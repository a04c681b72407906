package scoring

import (
	"fmt"
	"strings"

	"github.com/repogauge/repogauge/internal/types"
)

// maxPromptPaths bounds how much of the file listing is quoted in the
// mentor prompt.
const maxPromptPaths = 15

// BuildMentorPrompt serializes a score report and a few snapshot facts into
// the textual payload handed to the AI mentor. Purely formatting, no I/O;
// the mentor's output never feeds back into the score.
func BuildMentorPrompt(repo string, report ScoreReport, snap types.RepositorySnapshot) string {
	var b strings.Builder

	b.WriteString("You are an AI coding mentor reviewing a public repository for an engineer growing their SDET fundamentals.\n\n")
	fmt.Fprintf(&b, "Repository: %s\n", repo)
	fmt.Fprintf(&b, "Overall score: %d/100 (%s medal, %s level)\n\n", report.Total, report.Tier, report.Level)

	b.WriteString("Dimension breakdown:\n")
	for _, dim := range report.Dimensions {
		fmt.Fprintf(&b, "- %s: %d/%d (signals found: %s)\n", dim.Label, dim.Score, dim.Max, joinOrNone(dim.SignalsFound))
	}

	if len(report.Roadmap) > 0 {
		b.WriteString("\nPrioritized gaps:\n")
		for i, step := range report.Roadmap {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
	}

	paths := sortedPaths(snap)
	if len(paths) > maxPromptPaths {
		paths = paths[:maxPromptPaths]
	}
	if len(paths) > 0 {
		fmt.Fprintf(&b, "\nFile listing (truncated): %s\n", strings.Join(paths, ", "))
	}
	fmt.Fprintf(&b, "Commits analyzed: %d\n", len(snap.Commits))

	b.WriteString("\nRespond with JSON containing:\n")
	b.WriteString(`1. "summary": one encouraging but honest sentence evaluating the engineering maturity.` + "\n")
	b.WriteString(`2. "advice": a short paragraph of specific, actionable mentorship focused on the prioritized gaps.` + "\n")
	b.WriteString("Ensure the response is valid JSON.\n")

	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
