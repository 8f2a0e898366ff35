package detect

import (
	"fmt"

	"datastory/domain/canonical"
	"datastory/domain/insight"
)

// DifferentiationDetector finds the feature whose per-class means spread the
// widest, the best single discriminator between classes.
type DifferentiationDetector struct{}

// NewDifferentiationDetector creates a class-differentiation detector.
func NewDifferentiationDetector() *DifferentiationDetector {
	return &DifferentiationDetector{}
}

func (d *DifferentiationDetector) Name() string { return "differentiation" }

func (d *DifferentiationDetector) Description() string {
	return "Identifies the feature that best separates the classes"
}

// Detect emits a single headline candidate for the feature with the globally
// largest inter-class mean range, plus a supporting candidate for dataset
// balance. Features tie-break lexically so re-runs pick the same winner.
func (d *DifferentiationDetector) Detect(st canonical.Statistics) []insight.Candidate {
	if !st.HasClassAnalysis {
		return nil
	}

	var candidates []insight.Candidate

	var winner canonical.Feature
	maxRange := 0.0
	found := false
	for _, f := range st.Features {
		means, ok := st.ClassMeans[f]
		if !ok || len(means) < 2 {
			continue
		}
		r := st.MeanRange(f)
		if !found || r > maxRange {
			winner = f
			maxRange = r
			found = true
		}
	}

	if found {
		candidates = append(candidates, insight.Candidate{
			Category:  insight.CategoryDifferentiation,
			Scope:     insight.ScopeHeadline,
			Title:     fmt.Sprintf("Key Discriminating Feature: %s", winner),
			Magnitude: maxRange,
			Evidence: insight.Ev(
				insight.F("discriminator", string(winner)),
				insight.F("mean_range", maxRange),
				insight.F("class_means", st.ClassMeans[winner]),
			),
			Features: []canonical.Feature{winner},
		})
	}

	if len(st.ClassCounts) > 1 {
		ratio := st.BalanceRatio()
		candidates = append(candidates, insight.Candidate{
			Category:  insight.CategoryDifferentiation,
			Scope:     insight.ScopeSupporting,
			Title:     "Class Distribution Balance",
			Magnitude: ratio,
			Evidence: insight.Ev(
				insight.F("balance_ratio", ratio),
				insight.F("class_counts", st.ClassCounts),
				insight.F("class_count", len(st.ClassCounts)),
			),
		})
	}

	return candidates
}
