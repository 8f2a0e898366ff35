package narrative

import (
	"fmt"
	"sort"
	"strings"

	"datastory/domain/canonical"
	"datastory/domain/insight"
)

// Describe returns a copy of the insight with its description, the three
// audience text blocks, and its recommendation filled in. It is a pure
// function of the insight's evidence, so wording is unit-testable without
// running the pipeline.
func Describe(ins insight.Insight, f Formatter) insight.Insight {
	switch ins.Category {
	case insight.CategoryCorrelation:
		describeCorrelation(&ins, f)
	case insight.CategoryDistribution:
		describeDistribution(&ins, f)
	case insight.CategoryDifferentiation:
		describeDifferentiation(&ins, f)
	case insight.CategoryImportance:
		describeImportance(&ins, f)
	case insight.CategoryDataQuality:
		describeDataQuality(&ins, f)
	}
	return ins
}

func describeCorrelation(ins *insight.Insight, f Formatter) {
	if ins.Scope == insight.ScopeSupporting {
		avg := ins.Evidence.Float("average_correlation")
		strength := "low"
		if avg > 0.5 {
			strength = "moderate"
		}
		ins.Description = fmt.Sprintf(
			"The average absolute correlation between features is %s, indicating %s interconnectedness in the dataset.",
			f.Num(avg), strength)
		ins.BusinessImpact = "High feature correlation suggests some measurements might be redundant for classification purposes, potentially allowing for simpler models."
		return
	}

	coeff := ins.Evidence.Float("correlation_coefficient")
	pair, _ := ins.Evidence.Get("feature_pair").(canonical.PairKey)
	direction := "positive"
	if coeff < 0 {
		direction = "negative"
	}

	ins.Description = fmt.Sprintf(
		"We discovered a %s correlation of %s between %s and %s. These features move together in a predictable pattern.",
		direction, f.Num(coeff), pair.X, pair.Y)
	ins.TechnicalDetail = fmt.Sprintf(
		"Pearson correlation coefficient: %s. A relationship of this strength is unlikely to be due to chance.",
		f.Num(coeff))
	ins.BusinessImpact = correlationImpact(pair.X, pair.Y, coeff)
	if coeff > 0 {
		ins.PlainSummary = fmt.Sprintf(
			"When %s is larger, %s tends to be larger too, much like taller people usually having longer arms.",
			pair.X, pair.Y)
	} else {
		ins.PlainSummary = fmt.Sprintf(
			"When %s is larger, %s tends to be smaller. The two measurements move in opposite directions.",
			pair.X, pair.Y)
	}
	ins.Recommendations = []string{fmt.Sprintf(
		"Consider feature selection techniques to reduce redundancy between %s and %s, which could improve model efficiency and interpretability.",
		pair.X, pair.Y)}
}

func correlationImpact(x, y canonical.Feature, coeff float64) string {
	abs := coeff
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs > 0.8:
		return fmt.Sprintf("Strong correlation between %s and %s suggests these measurements are highly related, potentially allowing for cost-effective single-feature measurement strategies.", x, y)
	case abs > 0.5:
		return fmt.Sprintf("Moderate correlation between %s and %s indicates a relationship that could be useful for predictive modeling.", x, y)
	default:
		return fmt.Sprintf("Weak correlation between %s and %s suggests these features provide independent information for classification.", x, y)
	}
}

func describeDistribution(ins *insight.Insight, f Formatter) {
	if ins.Scope == insight.ScopeSupporting {
		highest, _ := ins.Evidence.Get("highest_variance_feature").(string)
		lowest, _ := ins.Evidence.Get("lowest_variance_feature").(string)
		ins.Description = fmt.Sprintf(
			"Feature variability analysis reveals %s has the highest variance while %s shows the most consistent values across samples.",
			highest, lowest)
		ins.BusinessImpact = "Understanding feature variability helps in feature selection and model interpretability."
		return
	}

	skew := ins.Evidence.Float("skewness")
	feature, _ := ins.Evidence.Get("feature").(string)
	side := "right"
	if skew < 0 {
		side = "left"
	}

	ins.Description = fmt.Sprintf(
		"The %s feature shows significant %s skewness (%s), an asymmetric distribution with a longer tail on the %s side.",
		feature, side, f.Num(skew), side)
	ins.TechnicalDetail = fmt.Sprintf(
		"Skewness coefficient: %s. Values above 1 or below -1 indicate moderate to high skewness.",
		f.Num(skew))
	ins.BusinessImpact = "Skewed distributions may require data transformation for optimal model performance and can reflect natural variation patterns."
	if skew > 0 {
		ins.PlainSummary = fmt.Sprintf(
			"Most values of %s cluster at the low end with a few much larger ones, similar to how household incomes spread in a town.",
			feature)
	} else {
		ins.PlainSummary = fmt.Sprintf(
			"Most values of %s cluster at the high end with a few much smaller ones trailing below.",
			feature)
	}
	ins.Recommendations = []string{fmt.Sprintf(
		"Apply appropriate data transformations (e.g. log transformation) to handle the skewed distribution of %s.",
		feature)}
}

func describeDifferentiation(ins *insight.Insight, f Formatter) {
	if ins.Scope == insight.ScopeSupporting {
		ratio := ins.Evidence.Float("balance_ratio")
		classCount := int(ins.Evidence.Float("class_count"))
		verdict := "This suggests some imbalance between classes."
		if ratio > 0.8 {
			verdict = "This indicates a well-balanced dataset."
		}
		ins.Description = fmt.Sprintf(
			"The dataset contains %d classes with a balance ratio of %s. %s",
			classCount, f.Num(ratio), verdict)
		ins.BusinessImpact = "Dataset balance affects model performance and bias. Balanced datasets typically lead to more robust classification models."
		return
	}

	feature, _ := ins.Evidence.Get("discriminator").(string)
	meanRange := ins.Evidence.Float("mean_range")

	ins.Description = fmt.Sprintf(
		"%s shows the largest variation between classes (range: %s), making it a key feature for class identification.",
		feature, f.Num(meanRange))
	ins.TechnicalDetail = fmt.Sprintf(
		"Inter-class mean range: %s for %s. Per-class means are reproduced verbatim in the evidence payload.",
		f.Num(meanRange), feature)
	ins.BusinessImpact = "Identifying key discriminating features helps develop efficient classification models and understand real differences between the classes."
	ins.PlainSummary = fmt.Sprintf(
		"The classes differ most in %s, so checking that measurement is the quickest way to tell them apart.",
		feature)
	ins.Recommendations = []string{fmt.Sprintf(
		"Leverage %s as a primary discriminating feature for efficient class identification, and account for dataset balance in model evaluation.",
		feature)}
}

func describeImportance(ins *insight.Insight, f Formatter) {
	if ins.Scope == insight.ScopeSupporting {
		lowFeatures, _ := ins.Evidence.Get("low_importance_features").([]canonical.Feature)
		minScore := ins.Evidence.Float("min_importance")
		ins.Description = fmt.Sprintf(
			"Features %s show low importance (below %s), suggesting they may be redundant for classification purposes.",
			joinFeatures(lowFeatures), f.Num(ins.Evidence.Float("cutoff")))
		ins.BusinessImpact = fmt.Sprintf(
			"Removing low-importance features (lowest observed: %s) can simplify models, reduce measurement costs, and improve interpretability without sacrificing accuracy.",
			f.Num(minScore))
		return
	}

	feature, _ := ins.Evidence.Get("top_feature").(string)
	score := ins.Evidence.Float("top_score")
	share := ins.Evidence.Float("top_3_share")

	ins.Description = fmt.Sprintf(
		"%s leads the predictive ranking with an importance score of %s, and the top 3 features account for %s of total predictive power. Measurement effort is best focused there.",
		feature, f.Num(score), f.Pct(share))
	ins.TechnicalDetail = fmt.Sprintf(
		"Importance calculated from variance and correlation-based metrics. Top score: %s; top-3 cumulative share: %s.",
		f.Num(score), f.Pct(share))
	ins.BusinessImpact = "Understanding feature importance guides model simplification and helps focus measurement efforts on the most informative characteristics."
	ins.PlainSummary = fmt.Sprintf(
		"Of everything measured, %s tells us the most. Just three measurements carry %s of the predictive signal.",
		feature, f.Pct(share))
	ins.Recommendations = []string{fmt.Sprintf(
		"Focus model development on %s and the other top-ranked features, and consider removing low-importance features to simplify the model.",
		feature)}
}

func describeDataQuality(ins *insight.Insight, f Formatter) {
	total := int(ins.Evidence.Float("total_outliers"))
	rate := ins.Evidence.Float("outlier_rate")
	affectedCount := int(ins.Evidence.Float("affected_feature_count"))

	if total == 0 {
		ins.Description = "No outliers were detected in any feature, indicating high data quality and consistency in measurements."
		ins.TechnicalDetail = "Upstream detection combined IQR, Z-score and Isolation Forest methods; none flagged a sample."
		ins.BusinessImpact = "Clean data suggests reliable measurement processes and reduces the need for extensive data preprocessing."
		ins.PlainSummary = "Every measurement falls within the expected range, a sign of careful data collection."
		ins.Recommendations = []string{
			"The clean dataset provides an excellent foundation for machine learning models without extensive preprocessing."}
		return
	}

	verdict := "This suggests good data quality."
	if rate >= 0.05 {
		verdict = "This indicates potential data quality issues."
	}
	ins.Description = fmt.Sprintf(
		"Detected %d outliers across %d features (%s of total data points). %s",
		total, affectedCount, f.Pct(rate), verdict)
	ins.TechnicalDetail = fmt.Sprintf(
		"Upstream detection combined IQR, Z-score and Isolation Forest methods. Outlier rate: %s.",
		f.Pct(rate))
	ins.BusinessImpact = "Outliers can indicate measurement errors, rare variants, or genuine extremes. Understanding their nature is crucial for model accuracy."
	ins.PlainSummary = "A few measurements stand out from the rest. They may be recording mistakes or genuinely unusual samples worth a closer look."
	ins.Recommendations = []string{
		"Investigate outliers to determine whether they represent measurement errors or genuine variation, and consider robust modeling techniques."}
}

func joinFeatures(features []canonical.Feature) string {
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = string(f)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
