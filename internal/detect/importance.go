package detect

import (
	"fmt"

	"datastory/domain/canonical"
	"datastory/domain/insight"
)

// lowImportanceScore flags features whose score marks them as candidates for
// removal in the redundancy supporting insight.
const lowImportanceScore = 0.1

// ImportanceDetector reports the top predictive feature and flags potential
// feature redundancy at the bottom of the ranking.
type ImportanceDetector struct{}

// NewImportanceDetector creates a feature-importance detector.
func NewImportanceDetector() *ImportanceDetector {
	return &ImportanceDetector{}
}

func (d *ImportanceDetector) Name() string { return "importance" }

func (d *ImportanceDetector) Description() string {
	return "Reports the dominant predictive feature and redundancy signals"
}

// Detect emits a single headline candidate for the top-ranked feature with
// the full ranking and top-3 cumulative share as evidence. When more than
// three features are ranked and the tail scores below the low-importance
// cutoff, a supporting redundancy candidate is emitted as well.
func (d *ImportanceDetector) Detect(st canonical.Statistics) []insight.Candidate {
	if !st.HasImportance || len(st.Importance) == 0 {
		return nil
	}

	top := st.Importance[0]
	topShare := st.TopShare(3)

	candidates := []insight.Candidate{{
		Category:  insight.CategoryImportance,
		Scope:     insight.ScopeHeadline,
		Title:     fmt.Sprintf("Primary Predictive Feature: %s", top.Feature),
		Magnitude: top.Score,
		Evidence: insight.Ev(
			insight.F("top_feature", string(top.Feature)),
			insight.F("top_score", top.Score),
			insight.F("top_3_share", topShare),
			insight.F("feature_ranking", st.Importance),
		),
		Features: []canonical.Feature{top.Feature},
	}}

	if len(st.Importance) > 3 {
		tail := st.Importance[len(st.Importance)-3:]
		minScore := tail[len(tail)-1].Score
		if minScore < lowImportanceScore {
			lowFeatures := make([]canonical.Feature, len(tail))
			for i, fs := range tail {
				lowFeatures[i] = fs.Feature
			}
			candidates = append(candidates, insight.Candidate{
				Category:  insight.CategoryImportance,
				Scope:     insight.ScopeSupporting,
				Title:     "Potential Feature Redundancy Identified",
				Magnitude: minScore,
				Evidence: insight.Ev(
					insight.F("low_importance_features", lowFeatures),
					insight.F("min_importance", minScore),
					insight.F("cutoff", lowImportanceScore),
				),
				Features: lowFeatures,
			})
		}
	}

	return candidates
}
