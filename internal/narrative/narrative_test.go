package narrative

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datastory/domain/canonical"
	"datastory/domain/insight"
	"datastory/internal/config"
	"datastory/internal/rank"
)

func formatter() Formatter {
	return Formatter{ValueDecimals: 3, PercentDecimals: 1}
}

func correlationInsight() insight.Insight {
	return insight.Insight{
		Candidate: insight.Candidate{
			Category:  insight.CategoryCorrelation,
			Scope:     insight.ScopeHeadline,
			Title:     "Strong Positive Relationship Between PetalLengthCm and PetalWidthCm",
			Magnitude: 0.980,
			Evidence: insight.Ev(
				insight.F("correlation_coefficient", 0.980),
				insight.F("feature_pair", canonical.NewPairKey("PetalLengthCm", "PetalWidthCm")),
				insight.F("total_strong_correlations", 1),
			),
			Features: []canonical.Feature{"PetalLengthCm", "PetalWidthCm"},
		},
		Tier: insight.TierCritical,
		Rank: 1,
	}
}

func importanceInsight() insight.Insight {
	return insight.Insight{
		Candidate: insight.Candidate{
			Category:  insight.CategoryImportance,
			Scope:     insight.ScopeHeadline,
			Title:     "Primary Predictive Feature: PetalLengthCm",
			Magnitude: 0.1549,
			Evidence: insight.Ev(
				insight.F("top_feature", "PetalLengthCm"),
				insight.F("top_score", 0.1549),
				insight.F("top_3_share", 0.4393),
			),
			Features: []canonical.Feature{"PetalLengthCm"},
		},
		Tier: insight.TierHigh,
		Rank: 2,
	}
}

func skewInsight() insight.Insight {
	return insight.Insight{
		Candidate: insight.Candidate{
			Category:  insight.CategoryDistribution,
			Scope:     insight.ScopeHeadline,
			Title:     "Asymmetric Distribution in PetalRatio",
			Magnitude: 2.345,
			Evidence: insight.Ev(
				insight.F("skewness", 2.345),
				insight.F("feature", "PetalRatio"),
				insight.F("tail_side", "right"),
			),
			Features: []canonical.Feature{"PetalRatio"},
		},
		Tier: insight.TierHigh,
		Rank: 3,
	}
}

func cleanQualityInsight() insight.Insight {
	return insight.Insight{
		Candidate: insight.Candidate{
			Category:  insight.CategoryDataQuality,
			Scope:     insight.ScopeHeadline,
			Title:     "Clean Dataset with No Outliers",
			Magnitude: 0,
			Evidence: insight.Ev(
				insight.F("total_outliers", 0),
				insight.F("outlier_rate", 0.0),
				insight.F("affected_feature_count", 0),
			),
		},
		Tier: insight.TierMedium,
		Rank: 4,
	}
}

func composedStory() insight.Story {
	ranked := rank.RankedSet{
		Main: []insight.Insight{
			correlationInsight(), importanceInsight(), skewInsight(), cleanQualityInsight(),
		},
	}
	return Compose(config.Default().Report, ranked, insight.Counts{FeaturesAnalyzed: 8})
}

func TestDescribeCorrelationPrecision(t *testing.T) {
	described := Describe(correlationInsight(), formatter())

	assert.Contains(t, described.Description, "0.980")
	assert.Contains(t, described.Description, "positive correlation")
	assert.Contains(t, described.TechnicalDetail, "0.980")
	assert.NotEmpty(t, described.BusinessImpact)
	assert.NotEmpty(t, described.PlainSummary)
	require.Len(t, described.Recommendations, 1)
}

func TestDescribeSkewnessRightTail(t *testing.T) {
	described := Describe(skewInsight(), formatter())

	assert.Contains(t, described.Description, "2.345")
	assert.Contains(t, described.Description, "right skewness")
	assert.Contains(t, described.Description, "longer tail on the right side")
}

func TestDescribeImportanceCarriesShare(t *testing.T) {
	described := Describe(importanceInsight(), formatter())

	first := firstSentence(described.Description)
	assert.Contains(t, first, "PetalLengthCm")
	assert.Contains(t, first, "43.9%")
}

func TestDescribeCleanDataQuality(t *testing.T) {
	described := Describe(cleanQualityInsight(), formatter())
	assert.Contains(t, described.Description, "No outliers were detected")
}

func TestComposeExecutiveSummaryQuotesAllMainFindings(t *testing.T) {
	story := composedStory()

	assert.Contains(t, story.ExecutiveSummary, "0.980")
	assert.Contains(t, story.ExecutiveSummary, "43.9%")
	assert.Contains(t, story.ExecutiveSummary, "PetalLengthCm")
	assert.NotContains(t, story.ExecutiveSummary, "additional")
}

func TestComposeOverflowSentence(t *testing.T) {
	ranked := rank.RankedSet{
		Main:     []insight.Insight{correlationInsight()},
		Overflow: 2,
	}
	story := Compose(config.Default().Report, ranked, insight.Counts{})

	assert.Contains(t, story.ExecutiveSummary, "An additional 2 high-significance findings")
}

func TestComposeEmptyMainFallback(t *testing.T) {
	story := Compose(config.Default().Report, rank.RankedSet{}, insight.Counts{})

	assert.Contains(t, story.ExecutiveSummary, "clean, well-structured dataset")
	// The fixed general tail still applies with zero data-driven findings.
	assert.Len(t, story.Recommendations, 3)
}

func TestComposeRecommendationsDedupedWithFixedTail(t *testing.T) {
	story := composedStory()

	require.GreaterOrEqual(t, len(story.Recommendations), 3)
	tail := story.Recommendations[len(story.Recommendations)-3:]
	assert.Contains(t, tail[0], "cross-validation")
	assert.Contains(t, tail[1], "ensemble methods")
	assert.Contains(t, tail[2], "reproducibility")

	seen := map[string]bool{}
	for _, rec := range story.Recommendations {
		assert.False(t, seen[rec], "duplicate recommendation: %s", rec)
		seen[rec] = true
	}
}

func TestRenderSectionGrammar(t *testing.T) {
	story := composedStory()

	technical := RenderDocument(story, insight.AudienceTechnical)
	assert.True(t, strings.HasPrefix(technical, "# "))
	assert.Contains(t, technical, "## Executive Summary")
	assert.Contains(t, technical, "## Methodology")
	assert.Contains(t, technical, "## Key Findings")
	assert.Contains(t, technical, "### 1. Strong Positive Relationship Between PetalLengthCm and PetalWidthCm")
	assert.Contains(t, technical, "**Technical Details:**")
	assert.Contains(t, technical, "```json")
	assert.Contains(t, technical, "## Recommendations")
	assert.Contains(t, technical, "## Limitations")

	business := RenderDocument(story, insight.AudienceBusiness)
	assert.Contains(t, business, "**Business Impact:**")
	assert.Contains(t, business, "## Considerations")
	assert.NotContains(t, business, "```json")

	general := RenderDocument(story, insight.AudienceGeneral)
	assert.Contains(t, general, "## What We Discovered")
	assert.Contains(t, general, "**Why This Matters:**")
	assert.Contains(t, general, "## What This Means")
	assert.Contains(t, general, "## Next Steps")
}

func TestRenderNumericFactsIdenticalAcrossAudiences(t *testing.T) {
	story := composedStory()

	for _, audience := range insight.Audiences {
		doc := RenderDocument(story, audience)
		assert.Contains(t, doc, "0.980", "audience %s", audience)
		assert.Contains(t, doc, "2.345", "audience %s", audience)
		assert.Contains(t, doc, "43.9%", "audience %s", audience)
	}
}

func TestRenderGeneralAvoidsJargon(t *testing.T) {
	story := composedStory()
	general := RenderDocument(story, insight.AudienceGeneral)

	assert.NotContains(t, general, "correlation of")
	assert.Contains(t, general, "relationship of")
}

func TestRenderDeterministic(t *testing.T) {
	story := composedStory()

	first := RenderDocument(story, insight.AudienceTechnical)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, RenderDocument(story, insight.AudienceTechnical))
	}
}

func TestFormatterPrecision(t *testing.T) {
	f := formatter()
	assert.Equal(t, "0.980", f.Num(0.98))
	assert.Equal(t, "2.345", f.Num(2.3451))
	assert.Equal(t, "43.9%", f.Pct(0.4393))
	assert.Equal(t, "100.000", f.Num(100.0))
}
