package detect

import (
	"datastory/domain/canonical"
	"datastory/domain/insight"
)

// DataQualityDetector summarizes outlier prevalence. A clean dataset is a
// reportable finding, so this detector always emits exactly one candidate
// when the outlier section was supplied.
type DataQualityDetector struct{}

// NewDataQualityDetector creates a data-quality detector.
func NewDataQualityDetector() *DataQualityDetector {
	return &DataQualityDetector{}
}

func (d *DataQualityDetector) Name() string { return "data_quality" }

func (d *DataQualityDetector) Description() string {
	return "Summarizes outlier prevalence across features"
}

// Detect emits one headline candidate: either the outlier summary or the
// clean-dataset finding at zero outliers. Never zero candidates.
func (d *DataQualityDetector) Detect(st canonical.Statistics) []insight.Candidate {
	if !st.HasOutliers {
		return nil
	}

	rate := 0.0
	if st.SampleSize > 0 {
		rate = float64(st.TotalOutliers) / float64(st.SampleSize)
	}

	affected := make(map[canonical.Feature]int)
	for f, n := range st.Outliers {
		if n > 0 {
			affected[f] = n
		}
	}

	title := "Outlier Detection Results"
	if st.TotalOutliers == 0 {
		title = "Clean Dataset with No Outliers"
	}

	return []insight.Candidate{{
		Category:  insight.CategoryDataQuality,
		Scope:     insight.ScopeHeadline,
		Title:     title,
		Magnitude: float64(st.TotalOutliers),
		Evidence: insight.Ev(
			insight.F("total_outliers", st.TotalOutliers),
			insight.F("outlier_rate", rate),
			insight.F("affected_feature_count", len(affected)),
			insight.F("affected_features", affected),
		),
	}}
}
