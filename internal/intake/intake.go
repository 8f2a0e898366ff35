package intake

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"datastory/domain/canonical"
	"datastory/domain/core"
)

// importanceTolerance is the allowed deviation of the importance score sum
// from 1.0 across the full feature set.
const importanceTolerance = 0.01

// Request bundles the four independently-shaped analysis result records.
// Summary statistics are required; the other sections are optional and
// degrade to zero candidates for their detector category when absent.
type Request struct {
	Summary    *canonical.SummaryResults    `json:"summary"`
	Patterns   *canonical.PatternResults    `json:"patterns,omitempty"`
	Outliers   *canonical.OutlierResults    `json:"outliers,omitempty"`
	Importance *canonical.ImportanceResults `json:"importance,omitempty"`
}

// Normalize folds the raw records into one validated canonical Statistics
// value. It fails with a core.ErrMalformedInput-wrapped error when a required
// numeric field is absent, non-finite, or out of its valid range. Absent
// optional sections are reported as warnings, never as errors.
func Normalize(req Request) (canonical.Statistics, []string, error) {
	var warnings []string

	if req.Summary == nil {
		return canonical.Statistics{}, nil, core.NewMalformedInputError("summary", "summary statistics are required")
	}
	if req.Summary.SampleSize <= 0 {
		return canonical.Statistics{}, nil, core.NewMalformedInputError("summary.sample_size",
			fmt.Sprintf("must be positive, got %d", req.Summary.SampleSize))
	}

	stats := canonical.Statistics{
		SampleSize: req.Summary.SampleSize,
	}
	features := map[canonical.Feature]bool{}

	if err := foldSummary(req.Summary, &stats, features); err != nil {
		return canonical.Statistics{}, nil, err
	}

	if req.Patterns == nil {
		warnings = append(warnings, core.NewEmptySectionError("patterns").Error())
	} else {
		if err := foldPatterns(req.Patterns, &stats, features); err != nil {
			return canonical.Statistics{}, nil, err
		}
	}

	if req.Outliers == nil {
		warnings = append(warnings, core.NewEmptySectionError("outliers").Error())
	} else {
		if err := foldOutliers(req.Outliers, &stats, features); err != nil {
			return canonical.Statistics{}, nil, err
		}
	}

	if req.Importance == nil {
		warnings = append(warnings, core.NewEmptySectionError("importance").Error())
	} else {
		if err := foldImportance(req.Importance, &stats, features); err != nil {
			return canonical.Statistics{}, nil, err
		}
	}

	stats.Features = sortedFeatures(features)
	return stats, warnings, nil
}

func foldSummary(in *canonical.SummaryResults, out *canonical.Statistics, features map[canonical.Feature]bool) error {
	if len(in.FeatureVariance) > 0 {
		out.Variance = make(map[canonical.Feature]float64, len(in.FeatureVariance))
		for f, v := range in.FeatureVariance {
			if err := requireFinite(fmt.Sprintf("summary.feature_variance[%s]", f), v); err != nil {
				return err
			}
			if v < 0 {
				return core.NewMalformedInputError(fmt.Sprintf("summary.feature_variance[%s]", f), "variance cannot be negative")
			}
			out.Variance[f] = v
			features[f] = true
		}
	}

	if len(in.ClassMeans) > 0 {
		out.HasClassAnalysis = true
		out.ClassMeans = make(map[canonical.Feature]map[canonical.Class]float64, len(in.ClassMeans))
		for f, means := range in.ClassMeans {
			copied := make(map[canonical.Class]float64, len(means))
			for class, m := range means {
				if err := requireFinite(fmt.Sprintf("summary.class_means[%s][%s]", f, class), m); err != nil {
					return err
				}
				copied[class] = m
			}
			out.ClassMeans[f] = copied
			features[f] = true
		}
	}

	if len(in.ClassCounts) > 0 {
		out.ClassCounts = make(map[canonical.Class]int, len(in.ClassCounts))
		for class, n := range in.ClassCounts {
			if n < 0 {
				return core.NewMalformedInputError(fmt.Sprintf("summary.class_counts[%s]", class), "count cannot be negative")
			}
			out.ClassCounts[class] = n
		}
	}
	return nil
}

func foldPatterns(in *canonical.PatternResults, out *canonical.Statistics, features map[canonical.Feature]bool) error {
	if len(in.Correlations) > 0 {
		out.HasCorrelations = true
		out.Correlations = make(map[canonical.PairKey]float64, len(in.Correlations))
		for _, pc := range in.Correlations {
			field := fmt.Sprintf("patterns.correlations[%s,%s]", pc.FeatureX, pc.FeatureY)
			if pc.FeatureX == pc.FeatureY {
				return core.NewMalformedInputError(field, "self-correlation pair")
			}
			if err := requireFinite(field, pc.Coefficient); err != nil {
				return err
			}
			if pc.Coefficient < -1.0 || pc.Coefficient > 1.0 {
				return core.NewMalformedInputError(field,
					fmt.Sprintf("coefficient %.4f outside [-1, 1]", pc.Coefficient))
			}
			key := canonical.NewPairKey(pc.FeatureX, pc.FeatureY)
			if prev, dup := out.Correlations[key]; dup && prev != pc.Coefficient {
				return core.NewMalformedInputError(field, "conflicting duplicate pair")
			}
			out.Correlations[key] = pc.Coefficient
			features[pc.FeatureX] = true
			features[pc.FeatureY] = true
		}
	}

	if len(in.Skewness) > 0 {
		out.HasDistribution = true
		out.Skewness = make(map[canonical.Feature]float64, len(in.Skewness))
		for f, skew := range in.Skewness {
			if err := requireFinite(fmt.Sprintf("patterns.skewness[%s]", f), skew); err != nil {
				return err
			}
			out.Skewness[f] = skew
			features[f] = true
		}
	}
	return nil
}

func foldOutliers(in *canonical.OutlierResults, out *canonical.Statistics, features map[canonical.Feature]bool) error {
	out.HasOutliers = true
	out.Outliers = make(map[canonical.Feature]int, len(in.Counts))
	for f, n := range in.Counts {
		if n < 0 {
			return core.NewMalformedInputError(fmt.Sprintf("outliers.counts[%s]", f), "count cannot be negative")
		}
		out.Outliers[f] = n
		out.TotalOutliers += n
		features[f] = true
	}
	return nil
}

func foldImportance(in *canonical.ImportanceResults, out *canonical.Statistics, features map[canonical.Feature]bool) error {
	if len(in.Scores) == 0 {
		return core.NewMalformedInputError("importance.scores", "importance section supplied but empty")
	}

	ranking := make([]canonical.FeatureScore, 0, len(in.Scores))
	scores := make([]float64, 0, len(in.Scores))
	for f, score := range in.Scores {
		if err := requireFinite(fmt.Sprintf("importance.scores[%s]", f), score); err != nil {
			return err
		}
		if score < 0 {
			return core.NewMalformedInputError(fmt.Sprintf("importance.scores[%s]", f), "score cannot be negative")
		}
		ranking = append(ranking, canonical.FeatureScore{Feature: f, Score: score})
		scores = append(scores, score)
		features[f] = true
	}

	if sum := floats.Sum(scores); math.Abs(sum-1.0) > importanceTolerance {
		return core.NewMalformedInputError("importance.scores",
			fmt.Sprintf("scores sum to %.4f, expected 1.0", sum))
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].Feature < ranking[j].Feature
	})

	out.HasImportance = true
	out.Importance = ranking
	return nil
}

func requireFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return core.NewMalformedInputError(field, "value is not finite")
	}
	return nil
}

func sortedFeatures(set map[canonical.Feature]bool) []canonical.Feature {
	features := make([]canonical.Feature, 0, len(set))
	for f := range set {
		features = append(features, f)
	}
	sort.Slice(features, func(i, j int) bool { return features[i] < features[j] })
	return features
}
