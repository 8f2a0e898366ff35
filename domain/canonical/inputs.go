package canonical

// Raw analysis result records as supplied by upstream collaborators. Each
// record mirrors the shape its producer emits; the intake layer is the only
// place that knows how to fold them into Statistics.

// SummaryResults carries descriptive statistics and per-class breakdowns.
type SummaryResults struct {
	SampleSize      int                           `json:"sample_size"`
	FeatureVariance map[Feature]float64           `json:"feature_variance,omitempty"`
	ClassCounts     map[Class]int                 `json:"class_counts,omitempty"`
	ClassMeans      map[Feature]map[Class]float64 `json:"class_means,omitempty"`
}

// PairCorrelation is one entry of a correlation scan.
type PairCorrelation struct {
	FeatureX    Feature `json:"feature_x"`
	FeatureY    Feature `json:"feature_y"`
	Coefficient float64 `json:"coefficient"`
}

// PatternResults carries correlation and distribution-shape findings.
type PatternResults struct {
	Correlations []PairCorrelation   `json:"correlations,omitempty"`
	Skewness     map[Feature]float64 `json:"skewness,omitempty"`
}

// OutlierResults carries per-feature outlier counts from upstream detection
// (IQR, Z-score, Isolation Forest - whichever methods the collaborator ran).
type OutlierResults struct {
	Counts map[Feature]int `json:"counts"`
}

// ImportanceResults carries feature-importance scores. Scores are expected to
// sum to 1.0 across the full feature set.
type ImportanceResults struct {
	Scores map[Feature]float64 `json:"scores"`
}
