package classify

import (
	"datastory/domain/insight"
	"datastory/internal/config"
)

// Classifier maps (category, magnitude) to a significance tier using the
// configured category-specific thresholds. Classification is a deterministic
// pure function and is total: every magnitude maps to a tier.
type Classifier struct {
	thresholds config.Thresholds
}

// New creates a classifier with the given thresholds.
func New(thresholds config.Thresholds) *Classifier {
	return &Classifier{thresholds: thresholds}
}

// Classify returns the tier for a candidate's category and magnitude. The
// sample size contextualizes outlier counts as a rate; it is ignored for the
// other categories.
func (c *Classifier) Classify(category insight.Category, magnitude float64, sampleSize int) insight.Tier {
	switch category {
	case insight.CategoryCorrelation:
		return c.classifyCorrelation(magnitude)
	case insight.CategoryDistribution:
		return c.classifyDistribution(magnitude)
	case insight.CategoryDifferentiation:
		return overrideOr(c.thresholds.DifferentiationTier, insight.TierHigh)
	case insight.CategoryImportance:
		return overrideOr(c.thresholds.ImportanceTier, insight.TierHigh)
	case insight.CategoryDataQuality:
		return c.classifyOutliers(magnitude, sampleSize)
	default:
		return insight.TierLow
	}
}

// ClassifyAll converts candidates into tier-bearing insights.
func (c *Classifier) ClassifyAll(candidates []insight.Candidate, sampleSize int) []insight.Insight {
	insights := make([]insight.Insight, len(candidates))
	for i, cand := range candidates {
		insights[i] = insight.Insight{
			Candidate: cand,
			Tier:      c.Classify(cand.Category, cand.Magnitude, sampleSize),
		}
	}
	return insights
}

func (c *Classifier) classifyCorrelation(magnitude float64) insight.Tier {
	t := c.thresholds.Correlation
	switch {
	case magnitude > t.Critical:
		return insight.TierCritical
	case magnitude > t.Strong:
		return insight.TierHigh
	case magnitude > t.Medium:
		return insight.TierMedium
	default:
		return insight.TierLow
	}
}

func (c *Classifier) classifyDistribution(magnitude float64) insight.Tier {
	t := c.thresholds.Skewness
	switch {
	case magnitude > t.High:
		return insight.TierHigh
	case magnitude > t.Notable:
		return insight.TierMedium
	default:
		return insight.TierLow
	}
}

// classifyOutliers treats a clean dataset as an informational medium-tier
// finding; it is rendered, never suppressed.
func (c *Classifier) classifyOutliers(count float64, sampleSize int) insight.Tier {
	if count == 0 {
		return insight.TierMedium
	}
	if sampleSize <= 0 {
		return insight.TierLow
	}
	rate := count / float64(sampleSize)
	t := c.thresholds.OutlierRate
	switch {
	case rate >= t.Critical:
		return insight.TierCritical
	case rate >= t.High:
		return insight.TierHigh
	case rate >= t.Medium:
		return insight.TierMedium
	default:
		return insight.TierLow
	}
}

func overrideOr(override string, fallback insight.Tier) insight.Tier {
	switch insight.Tier(override) {
	case insight.TierCritical, insight.TierHigh, insight.TierMedium, insight.TierLow:
		return insight.Tier(override)
	default:
		return fallback
	}
}
