package testkit

import (
	"datastory/domain/canonical"
	"datastory/internal/config"
	"datastory/internal/intake"
)

// The fixtures model a 150-sample iris-style classification dataset with
// engineered ratio features. Values are fixed so tests can assert exact
// rendered digits.

// IrisRequest returns a complete intake request covering all four sections.
// Notable fixed points: a 0.980 petal correlation, 2.345 skewness on the
// petal ratio, a 100.0 inter-class mean range on Id, a 0.1549 top importance
// score with a 0.4393 top-3 share, and zero outliers.
func IrisRequest() intake.Request {
	return intake.Request{
		Summary:    summary(),
		Patterns:   patterns(),
		Outliers:   &canonical.OutlierResults{Counts: zeroOutliers()},
		Importance: importance(),
	}
}

// MinimalRequest returns a request carrying only the required summary
// section.
func MinimalRequest() intake.Request {
	return intake.Request{Summary: summary()}
}

// RequestWithOutliers returns the full fixture with the given per-feature
// outlier counts in place of the clean zero map.
func RequestWithOutliers(counts map[canonical.Feature]int) intake.Request {
	req := IrisRequest()
	req.Outliers = &canonical.OutlierResults{Counts: counts}
	return req
}

// Config returns the default configuration used by fixture-driven tests.
func Config() *config.Config {
	return config.Default()
}

func summary() *canonical.SummaryResults {
	return &canonical.SummaryResults{
		SampleSize: 150,
		FeatureVariance: map[canonical.Feature]float64{
			"Id":            1887.5,
			"SepalLengthCm": 0.686,
			"SepalWidthCm":  0.188,
			"PetalLengthCm": 3.113,
			"PetalWidthCm":  0.582,
		},
		ClassCounts: map[canonical.Class]int{
			"Iris-setosa":     50,
			"Iris-versicolor": 50,
			"Iris-virginica":  50,
		},
		ClassMeans: map[canonical.Feature]map[canonical.Class]float64{
			"Id": {
				"Iris-setosa":     25.5,
				"Iris-versicolor": 75.5,
				"Iris-virginica":  125.5,
			},
			"PetalLengthCm": {
				"Iris-setosa":     1.464,
				"Iris-versicolor": 4.260,
				"Iris-virginica":  5.552,
			},
			"PetalWidthCm": {
				"Iris-setosa":     0.244,
				"Iris-versicolor": 1.326,
				"Iris-virginica":  2.026,
			},
		},
	}
}

func patterns() *canonical.PatternResults {
	return &canonical.PatternResults{
		Correlations: []canonical.PairCorrelation{
			{FeatureX: "PetalLengthCm", FeatureY: "PetalWidthCm", Coefficient: 0.980},
			{FeatureX: "SepalLengthCm", FeatureY: "PetalLengthCm", Coefficient: 0.580},
			{FeatureX: "SepalLengthCm", FeatureY: "PetalWidthCm", Coefficient: 0.518},
			{FeatureX: "SepalWidthCm", FeatureY: "PetalLengthCm", Coefficient: -0.421},
			{FeatureX: "SepalLengthCm", FeatureY: "SepalWidthCm", Coefficient: -0.109},
		},
		Skewness: map[canonical.Feature]float64{
			"PetalRatio":    2.345,
			"SepalWidthCm":  0.335,
			"PetalLengthCm": -0.272,
			"SepalLengthCm": 0.315,
		},
	}
}

func importance() *canonical.ImportanceResults {
	// Scores sum to exactly 1.0; the top three sum to 0.4393.
	return &canonical.ImportanceResults{
		Scores: map[canonical.Feature]float64{
			"PetalLengthCm": 0.1549,
			"PetalWidthCm":  0.1488,
			"PetalArea":     0.1356,
			"SepalLengthCm": 0.1320,
			"PetalRatio":    0.1250,
			"SepalRatio":    0.1150,
			"SepalWidthCm":  0.1000,
			"Id":            0.0887,
		},
	}
}

func zeroOutliers() map[canonical.Feature]int {
	return map[canonical.Feature]int{
		"SepalLengthCm": 0,
		"SepalWidthCm":  0,
		"PetalLengthCm": 0,
		"PetalWidthCm":  0,
	}
}
