package rank

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datastory/domain/canonical"
	"datastory/domain/insight"
)

func headline(category insight.Category, tier insight.Tier, magnitude float64, features ...canonical.Feature) insight.Insight {
	return insight.Insight{
		Candidate: insight.Candidate{
			Category:  category,
			Scope:     insight.ScopeHeadline,
			Title:     fmt.Sprintf("%s %.3f", category, magnitude),
			Magnitude: magnitude,
			Features:  features,
		},
		Tier: tier,
	}
}

func supporting(category insight.Category, title string) insight.Insight {
	return insight.Insight{
		Candidate: insight.Candidate{
			Category: category,
			Scope:    insight.ScopeSupporting,
			Title:    title,
		},
		Tier: insight.TierLow,
	}
}

func TestRankOrdersByTierThenMagnitude(t *testing.T) {
	r := New(4)
	set := r.Rank([]insight.Insight{
		headline(insight.CategoryDistribution, insight.TierHigh, 2.345, "A"),
		headline(insight.CategoryCorrelation, insight.TierCritical, 0.980, "B", "C"),
		headline(insight.CategoryDifferentiation, insight.TierHigh, 100.0, "D"),
	})

	require.Len(t, set.Main, 3)
	assert.Equal(t, insight.TierCritical, set.Main[0].Tier)
	assert.Equal(t, 100.0, set.Main[1].Magnitude)
	assert.Equal(t, 2.345, set.Main[2].Magnitude)
	for i, ins := range set.Main {
		assert.Equal(t, i+1, ins.Rank)
	}
}

func TestRankCategoryPriorityBreaksTies(t *testing.T) {
	r := New(4)
	set := r.Rank([]insight.Insight{
		headline(insight.CategoryDistribution, insight.TierHigh, 1.0, "A"),
		headline(insight.CategoryCorrelation, insight.TierHigh, 1.0, "B", "C"),
	})

	require.Len(t, set.Main, 2)
	assert.Equal(t, insight.CategoryCorrelation, set.Main[0].Category)
	assert.Equal(t, insight.CategoryDistribution, set.Main[1].Category)
}

func TestRankDeduplicatesSameFeatureSet(t *testing.T) {
	r := New(4)
	set := r.Rank([]insight.Insight{
		headline(insight.CategoryCorrelation, insight.TierHigh, 0.75, "A", "B"),
		headline(insight.CategoryCorrelation, insight.TierCritical, 0.95, "B", "A"),
	})

	require.Len(t, set.Main, 1)
	assert.Equal(t, 0.95, set.Main[0].Magnitude)
}

func TestRankDeduplicatesCategoryWideFindings(t *testing.T) {
	r := New(4)
	set := r.Rank([]insight.Insight{
		headline(insight.CategoryDataQuality, insight.TierMedium, 0),
		headline(insight.CategoryDataQuality, insight.TierMedium, 0),
	})
	assert.Len(t, set.Main, 1)
}

func TestRankOverflowInvariantForAllK(t *testing.T) {
	var insights []insight.Insight
	for i := 0; i < 8; i++ {
		tier := insight.TierHigh
		if i >= 6 {
			tier = insight.TierMedium
		}
		insights = append(insights, headline(
			insight.CategoryCorrelation, tier, float64(100-i),
			canonical.Feature(fmt.Sprintf("F%d", i)), canonical.Feature(fmt.Sprintf("G%d", i))))
	}

	for k := 1; k <= 10; k++ {
		set := New(k).Rank(insights)

		qualifying := 0
		shown := 0
		for _, ins := range insights {
			if ins.Tier.Rank() >= insight.TierHigh.Rank() {
				qualifying++
			}
		}
		for _, ins := range set.Main {
			if ins.Tier.Rank() >= insight.TierHigh.Rank() {
				shown++
			}
		}
		assert.Equal(t, qualifying-shown, set.Overflow, "K=%d", k)
	}
}

func TestRankSupportingBypassesRanking(t *testing.T) {
	r := New(1)
	set := r.Rank([]insight.Insight{
		headline(insight.CategoryCorrelation, insight.TierCritical, 0.98, "A", "B"),
		headline(insight.CategoryDistribution, insight.TierHigh, 2.0, "C"),
		supporting(insight.CategoryDistribution, "Variability Patterns Across Features"),
		supporting(insight.CategoryCorrelation, "Overall Feature Interconnectedness"),
	})

	assert.Len(t, set.Main, 1)
	require.Len(t, set.Supporting, 2)
	// Supporting order follows category priority, not rank.
	assert.Equal(t, insight.CategoryCorrelation, set.Supporting[0].Category)
	for _, ins := range set.Supporting {
		assert.Zero(t, ins.Rank)
	}
}

func TestRankMinimumK(t *testing.T) {
	set := New(0).Rank([]insight.Insight{
		headline(insight.CategoryCorrelation, insight.TierHigh, 0.8, "A", "B"),
	})
	assert.Len(t, set.Main, 1)
}

func TestFeatureNamesSorted(t *testing.T) {
	names := FeatureNames([]canonical.Feature{"B", "A"})
	assert.Equal(t, []string{"A", "B"}, names)
}
