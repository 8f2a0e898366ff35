package narrative

import (
	"fmt"
	"strings"

	"datastory/domain/insight"
	"datastory/internal/config"
	"datastory/internal/rank"
)

// generalRecommendations is the fixed tail appended to every recommendation
// list, even when no data-driven recommendation fires.
var generalRecommendations = []string{
	"Validate findings with cross-validation to ensure robustness across different data splits.",
	"Consider ensemble methods to combine multiple weak learners for improved classification accuracy.",
	"Document the analysis methodology and maintain data lineage for reproducibility.",
}

var methodology = strings.TrimSpace(`
This analysis employed a multi-stage approach:
1. Statistical Analysis: descriptive statistics, distribution shape, and correlations supplied by upstream computation
2. Pattern Detection: correlation scanning, variance assessment, and feature importance ranking
3. Outlier Assessment: counts from multiple upstream methods (IQR, Z-score, Isolation Forest)
4. Class-specific Analysis: inter-class differences and dataset balance
5. Insight Synthesis: deterministic rule evaluation, significance classification, and ranking
`)

var limitations = []string{
	"Analysis is based on a single dataset; findings may not generalize to other populations.",
	"Correlation does not imply causation; observed relationships may be influenced by unmeasured factors.",
	"Outlier detection methods assume specific distributions; results may vary with different assumptions.",
	"Feature importance is relative to this specific dataset and may change with different samples.",
}

// Compose assembles the ranked set into a complete story: annotated findings,
// executive summary, and the deduplicated recommendation list with its fixed
// general tail.
func Compose(report config.ReportConfig, ranked rank.RankedSet, counts insight.Counts) insight.Story {
	f := Formatter{ValueDecimals: report.ValueDecimals, PercentDecimals: report.PercentDecimals}

	main := make([]insight.Insight, len(ranked.Main))
	for i, ins := range ranked.Main {
		main[i] = Describe(ins, f)
	}
	supporting := make([]insight.Insight, len(ranked.Supporting))
	for i, ins := range ranked.Supporting {
		supporting[i] = Describe(ins, f)
	}

	return insight.Story{
		Title:            report.Title,
		ExecutiveSummary: executiveSummary(main, ranked.Overflow),
		Main:             main,
		Supporting:       supporting,
		Overflow:         ranked.Overflow,
		Recommendations:  recommendations(main),
		Methodology:      methodology,
		Limitations:      limitations,
		Counts:           counts,
	}
}

// executiveSummary concatenates the abbreviated titles and lead numeric facts
// of the main findings plus the overflow count sentence.
func executiveSummary(main []insight.Insight, overflow int) string {
	if len(main) == 0 {
		return "Analysis reveals a clean, well-structured dataset suitable for classification modeling with no critical issues identified."
	}

	parts := []string{"Analysis of the dataset reveals several key insights:"}
	for _, finding := range main {
		parts = append(parts, fmt.Sprintf("• %s: %s", finding.Title, firstSentence(finding.Description)))
	}
	if overflow > 0 {
		parts = append(parts, fmt.Sprintf("An additional %d high-significance findings support these conclusions.", overflow))
	}
	parts = append(parts, "These findings provide a strong foundation for developing accurate classification models.")
	return strings.Join(parts, " ")
}

// recommendations collects one recommendation per rendered main finding,
// deduplicates them, and appends the fixed general tail.
func recommendations(main []insight.Insight) []string {
	seen := make(map[string]bool)
	var recs []string
	for _, finding := range main {
		for _, rec := range finding.Recommendations {
			if !seen[rec] {
				seen[rec] = true
				recs = append(recs, rec)
			}
		}
	}
	return append(recs, generalRecommendations...)
}
