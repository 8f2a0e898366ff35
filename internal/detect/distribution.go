package detect

import (
	"fmt"
	"math"

	"datastory/domain/canonical"
	"datastory/domain/insight"
	"datastory/internal/config"
)

// DistributionDetector flags asymmetric feature distributions and reports
// the variance leaders across features.
type DistributionDetector struct {
	thresholds config.SkewnessThresholds
}

// NewDistributionDetector creates a distribution-shape detector.
func NewDistributionDetector(thresholds config.SkewnessThresholds) *DistributionDetector {
	return &DistributionDetector{thresholds: thresholds}
}

func (d *DistributionDetector) Name() string { return "distribution" }

func (d *DistributionDetector) Description() string {
	return "Detects skewed feature distributions and variance extremes"
}

// Detect emits one headline candidate per feature whose |skewness| exceeds
// the notable threshold, plus a supporting candidate naming the highest- and
// lowest-variance features.
func (d *DistributionDetector) Detect(st canonical.Statistics) []insight.Candidate {
	var candidates []insight.Candidate

	if st.HasDistribution {
		for _, f := range st.Features {
			skew, ok := st.Skewness[f]
			if !ok || math.Abs(skew) <= d.thresholds.Notable {
				continue
			}
			side := "right"
			if skew < 0 {
				side = "left"
			}
			candidates = append(candidates, insight.Candidate{
				Category:  insight.CategoryDistribution,
				Scope:     insight.ScopeHeadline,
				Title:     fmt.Sprintf("Asymmetric Distribution in %s", f),
				Magnitude: math.Abs(skew),
				Evidence: insight.Ev(
					insight.F("skewness", skew),
					insight.F("feature", string(f)),
					insight.F("tail_side", side),
				),
				Features: []canonical.Feature{f},
			})
		}
	}

	if highest, lowest, ok := varianceLeaders(st); ok {
		candidates = append(candidates, insight.Candidate{
			Category:  insight.CategoryDistribution,
			Scope:     insight.ScopeSupporting,
			Title:     "Variability Patterns Across Features",
			Magnitude: st.Variance[highest],
			Evidence: insight.Ev(
				insight.F("highest_variance_feature", string(highest)),
				insight.F("highest_variance", st.Variance[highest]),
				insight.F("lowest_variance_feature", string(lowest)),
				insight.F("lowest_variance", st.Variance[lowest]),
			),
			Features: []canonical.Feature{highest, lowest},
		})
	}

	return candidates
}

func varianceLeaders(st canonical.Statistics) (highest, lowest canonical.Feature, ok bool) {
	if len(st.Variance) < 2 {
		return "", "", false
	}
	first := true
	for _, f := range st.Features {
		v, present := st.Variance[f]
		if !present {
			continue
		}
		if first {
			highest, lowest = f, f
			first = false
			continue
		}
		if v > st.Variance[highest] {
			highest = f
		}
		if v < st.Variance[lowest] {
			lowest = f
		}
	}
	return highest, lowest, !first && highest != lowest
}
