package canonical

import (
	"sort"
)

// Feature identifies a numeric measurement column (e.g. "PetalLengthCm").
type Feature string

func (f Feature) String() string { return string(f) }

// Class identifies a category label the dataset is partitioned by (e.g. a species).
type Class string

func (c Class) String() string { return string(c) }

// PairKey identifies an unordered feature pair. NewPairKey canonicalizes the
// order so (A,B) and (B,A) map to the same key.
type PairKey struct {
	X Feature `json:"feature_x"`
	Y Feature `json:"feature_y"`
}

// NewPairKey builds a canonical pair key with lexically ordered features.
func NewPairKey(a, b Feature) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{X: a, Y: b}
}

// FeatureScore pairs a feature with its importance score.
type FeatureScore struct {
	Feature Feature `json:"feature"`
	Score   float64 `json:"score"`
}

// Statistics is the normalized internal representation of all upstream
// numeric analysis results. It is built once by the intake layer, validated,
// and then read concurrently by the detectors.
//
// INVARIANTS (enforced by intake):
// - every numeric field is finite
// - correlation coefficients lie in [-1, 1]
// - importance scores sum to 1.0 within tolerance across the full ranking
type Statistics struct {
	SampleSize int       `json:"sample_size"`
	Features   []Feature `json:"features"` // all analyzed features, lexically ordered

	// Correlation section (optional)
	HasCorrelations bool                `json:"has_correlations"`
	Correlations    map[PairKey]float64 `json:"-"`

	// Distribution section (optional)
	HasDistribution bool                `json:"has_distribution"`
	Skewness        map[Feature]float64 `json:"skewness,omitempty"`
	Variance        map[Feature]float64 `json:"variance,omitempty"`

	// Class section (optional)
	HasClassAnalysis bool                          `json:"has_class_analysis"`
	ClassMeans       map[Feature]map[Class]float64 `json:"class_means,omitempty"`
	ClassCounts      map[Class]int                 `json:"class_counts,omitempty"`

	// Importance section (optional); ordered by score descending
	HasImportance bool           `json:"has_importance"`
	Importance    []FeatureScore `json:"importance,omitempty"`

	// Outlier section (optional)
	HasOutliers   bool            `json:"has_outliers"`
	Outliers      map[Feature]int `json:"outliers,omitempty"`
	TotalOutliers int             `json:"total_outliers"`
}

// SortedPairs returns the correlation pair keys in deterministic lexical order.
func (s Statistics) SortedPairs() []PairKey {
	pairs := make([]PairKey, 0, len(s.Correlations))
	for k := range s.Correlations {
		pairs = append(pairs, k)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].X != pairs[j].X {
			return pairs[i].X < pairs[j].X
		}
		return pairs[i].Y < pairs[j].Y
	})
	return pairs
}

// SortedClasses returns the class labels in deterministic lexical order.
func (s Statistics) SortedClasses() []Class {
	classes := make([]Class, 0, len(s.ClassCounts))
	for c := range s.ClassCounts {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	return classes
}

// MeanRange returns the spread of per-class means for a feature: the
// difference between the largest and smallest class mean.
func (s Statistics) MeanRange(f Feature) float64 {
	means, ok := s.ClassMeans[f]
	if !ok || len(means) == 0 {
		return 0
	}
	first := true
	var lo, hi float64
	for _, m := range means {
		if first {
			lo, hi = m, m
			first = false
			continue
		}
		if m < lo {
			lo = m
		}
		if m > hi {
			hi = m
		}
	}
	return hi - lo
}

// TopShare returns the cumulative importance share of the top n ranked features.
func (s Statistics) TopShare(n int) float64 {
	if n > len(s.Importance) {
		n = len(s.Importance)
	}
	sum := 0.0
	for _, fs := range s.Importance[:n] {
		sum += fs.Score
	}
	return sum
}

// BalanceRatio returns min(class count) / max(class count), the dataset
// balance measure used by the differentiation detector's supporting insight.
func (s Statistics) BalanceRatio() float64 {
	if len(s.ClassCounts) == 0 {
		return 0
	}
	first := true
	var lo, hi int
	for _, n := range s.ClassCounts {
		if first {
			lo, hi = n, n
			first = false
			continue
		}
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	if hi == 0 {
		return 0
	}
	return float64(lo) / float64(hi)
}
