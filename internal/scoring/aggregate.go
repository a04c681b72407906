package scoring

import (
	"fmt"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
)

// Tier is the medal classification derived from the total score.
type Tier string

// Level is the skill classification paired with each tier.
type Level string

const (
	TierBronze Tier = "Bronze"
	TierSilver Tier = "Silver"
	TierGold   Tier = "Gold"

	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Tier thresholds; boundaries are inclusive-lower, so a score exactly on a
// boundary belongs to the higher band.
const (
	goldThreshold   = 90
	silverThreshold = 75
)

// Aggregate sums the five dimension scores into a total clamped to [0,100].
// The input must contain exactly one result per dimension with each score
// inside [0, max]; anything else is a scorer bug and is surfaced as an
// internal contract-violation error rather than a recoverable failure.
func Aggregate(results []DimensionResult) (int, error) {
	if len(results) != len(dimensionOrder) {
		return 0, contractViolation(fmt.Sprintf("expected %d dimension results, got %d", len(dimensionOrder), len(results)))
	}

	seen := make(map[Dimension]bool, len(results))
	total := 0
	for _, res := range results {
		if _, known := dimensionLabels[res.Name]; !known {
			return 0, contractViolation(fmt.Sprintf("unknown dimension %q", res.Name))
		}
		if seen[res.Name] {
			return 0, contractViolation(fmt.Sprintf("duplicate dimension %q", res.Name))
		}
		seen[res.Name] = true

		if res.Max != DimensionWeight(res.Name) {
			return 0, contractViolation(fmt.Sprintf("dimension %q reports max %d, weight table says %d", res.Name, res.Max, DimensionWeight(res.Name)))
		}
		if res.Score < 0 || res.Score > res.Max {
			return 0, contractViolation(fmt.Sprintf("dimension %q score %d outside [0,%d]", res.Name, res.Score, res.Max))
		}
		total += res.Score
	}

	// Safety net; with weights summing to 100 the total is already in range.
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	return total, nil
}

// ClassifyTier maps a total score to its tier and level. It is total over
// 0..100 and monotonic: a higher score never yields a lower tier.
func ClassifyTier(total int) (Tier, Level) {
	switch {
	case total >= goldThreshold:
		return TierGold, LevelAdvanced
	case total >= silverThreshold:
		return TierSilver, LevelIntermediate
	default:
		return TierBronze, LevelBeginner
	}
}

func contractViolation(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("scoring contract violation: " + msg)
}
