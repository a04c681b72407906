package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResults() []DimensionResult {
	results := make([]DimensionResult, 0, len(dimensionOrder))
	for _, dim := range dimensionOrder {
		results = append(results, DimensionResult{
			Name:           dim,
			Label:          dimensionLabels[dim],
			Score:          DimensionWeight(dim) / 2,
			Max:            DimensionWeight(dim),
			SignalsFound:   []string{},
			SignalsMissing: []string{},
		})
	}
	return results
}

func TestAggregate(t *testing.T) {
	t.Run("sums valid dimension scores", func(t *testing.T) {
		results := validResults()
		expected := 0
		for _, res := range results {
			expected += res.Score
		}

		total, err := Aggregate(results)
		require.NoError(t, err)
		assert.Equal(t, expected, total)
	})

	t.Run("full marks reach exactly one hundred", func(t *testing.T) {
		results := validResults()
		for i := range results {
			results[i].Score = results[i].Max
		}

		total, err := Aggregate(results)
		require.NoError(t, err)
		assert.Equal(t, 100, total)
	})

	t.Run("rejects wrong result count", func(t *testing.T) {
		_, err := Aggregate(validResults()[:4])
		assert.Error(t, err)
	})

	t.Run("rejects duplicate dimensions", func(t *testing.T) {
		results := validResults()
		results[1] = results[0]

		_, err := Aggregate(results)
		assert.Error(t, err)
	})

	t.Run("rejects unknown dimension", func(t *testing.T) {
		results := validResults()
		results[0].Name = Dimension("vibes")

		_, err := Aggregate(results)
		assert.Error(t, err)
	})

	t.Run("rejects score above dimension max", func(t *testing.T) {
		results := validResults()
		results[0].Score = results[0].Max + 1

		_, err := Aggregate(results)
		assert.Error(t, err)
	})

	t.Run("rejects negative score", func(t *testing.T) {
		results := validResults()
		results[2].Score = -1

		_, err := Aggregate(results)
		assert.Error(t, err)
	})

	t.Run("rejects max that disagrees with the weight table", func(t *testing.T) {
		results := validResults()
		results[3].Max = 99

		_, err := Aggregate(results)
		assert.Error(t, err)
	})

	t.Run("accepts results in any order", func(t *testing.T) {
		results := validResults()
		results[0], results[4] = results[4], results[0]

		_, err := Aggregate(results)
		assert.NoError(t, err)
	})
}

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		name          string
		total         int
		expectedTier  Tier
		expectedLevel Level
	}{
		{"zero is bronze", 0, TierBronze, LevelBeginner},
		{"just under silver stays bronze", 74, TierBronze, LevelBeginner},
		{"silver boundary is inclusive", 75, TierSilver, LevelIntermediate},
		{"mid silver band", 87, TierSilver, LevelIntermediate},
		{"just under gold stays silver", 89, TierSilver, LevelIntermediate},
		{"gold boundary is inclusive", 90, TierGold, LevelAdvanced},
		{"perfect score is gold", 100, TierGold, LevelAdvanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, level := ClassifyTier(tt.total)
			assert.Equal(t, tt.expectedTier, tier)
			assert.Equal(t, tt.expectedLevel, level)
		})
	}
}

// Every integer in 0..100 must map to exactly one tier/level pair, and a
// higher total must never yield a lower tier.
func TestClassifyTierTotalAndMonotonic(t *testing.T) {
	rank := map[Tier]int{TierBronze: 0, TierSilver: 1, TierGold: 2}
	levelFor := map[Tier]Level{
		TierBronze: LevelBeginner,
		TierSilver: LevelIntermediate,
		TierGold:   LevelAdvanced,
	}

	prev := -1
	for total := 0; total <= 100; total++ {
		tier, level := ClassifyTier(total)

		r, known := rank[tier]
		require.True(t, known, "score %d mapped to unknown tier %q", total, tier)
		assert.Equal(t, levelFor[tier], level, "tier/level pairing broken at %d", total)
		assert.GreaterOrEqual(t, r, prev, "tier regressed at score %d", total)
		prev = r
	}
}
