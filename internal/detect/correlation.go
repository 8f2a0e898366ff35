package detect

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"datastory/domain/canonical"
	"datastory/domain/insight"
	"datastory/internal/config"
)

// CorrelationDetector scans the feature-pair correlation mapping for strong
// relationships and summarizes overall feature interconnectedness.
type CorrelationDetector struct {
	thresholds config.CorrelationThresholds
}

// NewCorrelationDetector creates a correlation detector.
func NewCorrelationDetector(thresholds config.CorrelationThresholds) *CorrelationDetector {
	return &CorrelationDetector{thresholds: thresholds}
}

func (d *CorrelationDetector) Name() string { return "correlation" }

func (d *CorrelationDetector) Description() string {
	return "Detects strong pairwise relationships between features"
}

// Detect emits one headline candidate per feature pair whose |coefficient|
// exceeds the strong threshold, plus a supporting candidate for the overall
// average correlation. Each unordered pair is emitted once.
func (d *CorrelationDetector) Detect(st canonical.Statistics) []insight.Candidate {
	if !st.HasCorrelations {
		return nil
	}

	var candidates []insight.Candidate
	pairs := st.SortedPairs()

	strongCount := 0
	for _, key := range pairs {
		if math.Abs(st.Correlations[key]) > d.thresholds.Strong {
			strongCount++
		}
	}

	for _, key := range pairs {
		coeff := st.Correlations[key]
		if math.Abs(coeff) <= d.thresholds.Strong {
			continue
		}
		direction := "Positive"
		if coeff < 0 {
			direction = "Negative"
		}
		candidates = append(candidates, insight.Candidate{
			Category:  insight.CategoryCorrelation,
			Scope:     insight.ScopeHeadline,
			Title:     fmt.Sprintf("Strong %s Relationship Between %s and %s", direction, key.X, key.Y),
			Magnitude: math.Abs(coeff),
			Evidence: insight.Ev(
				insight.F("correlation_coefficient", coeff),
				insight.F("feature_pair", key),
				insight.F("total_strong_correlations", strongCount),
			),
			Features: []canonical.Feature{key.X, key.Y},
		})
	}

	if avg, ok := averageAbsCorrelation(st, pairs); ok {
		candidates = append(candidates, insight.Candidate{
			Category:  insight.CategoryCorrelation,
			Scope:     insight.ScopeSupporting,
			Title:     "Overall Feature Interconnectedness",
			Magnitude: avg,
			Evidence: insight.Ev(
				insight.F("average_correlation", avg),
				insight.F("pair_count", len(pairs)),
				insight.F("total_strong_correlations", strongCount),
			),
		})
	}

	return candidates
}

func averageAbsCorrelation(st canonical.Statistics, pairs []canonical.PairKey) (float64, bool) {
	if len(pairs) == 0 {
		return 0, false
	}
	values := make([]float64, len(pairs))
	for i, key := range pairs {
		values[i] = math.Abs(st.Correlations[key])
	}
	avg, err := stats.Mean(values)
	if err != nil {
		return 0, false
	}
	return avg, true
}
