package scoring

import "github.com/repogauge/repogauge/internal/types"

// ScoreReport is the complete deterministic output of one analysis: total
// score, tier classification, the five dimension breakdowns in fixed order,
// and the rule-based remediation roadmap. It is created fresh per analysis
// and never mutated afterwards.
type ScoreReport struct {
	Total      int               `json:"total"`
	Tier       Tier              `json:"tier"`
	Level      Level             `json:"level"`
	Dimensions []DimensionResult `json:"dimensions"`
	Roadmap    []string          `json:"roadmap"`
}

// Score runs the full engine over a snapshot: five dimension scorers,
// aggregation, tier classification, and roadmap selection. It performs no
// I/O and is deterministic; the only error it can return is a contract
// violation from the aggregator, which indicates a scorer bug.
func Score(snap types.RepositorySnapshot) (ScoreReport, error) {
	results := ScoreAll(snap)

	total, err := Aggregate(results)
	if err != nil {
		return ScoreReport{}, err
	}

	tier, level := ClassifyTier(total)

	return ScoreReport{
		Total:      total,
		Tier:       tier,
		Level:      level,
		Dimensions: results,
		Roadmap:    BuildRoadmap(results),
	}, nil
}
