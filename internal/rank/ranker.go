package rank

import (
	"sort"
	"strings"

	"datastory/domain/canonical"
	"datastory/domain/insight"
)

// RankedSet is the ordered reporting set produced from classified insights.
type RankedSet struct {
	// Main holds the top K headline findings, rank 1..K.
	Main []insight.Insight
	// Overflow counts headline findings of tier >= high beyond the top K.
	// They are surfaced as an aggregate figure, not narrated individually.
	Overflow int
	// Supporting holds the aggregate insights that bypass ranking.
	Supporting []insight.Insight
}

// Ranker deduplicates, orders and truncates classified insights.
type Ranker struct {
	topK int
}

// New creates a ranker selecting the top K main findings.
func New(topK int) *Ranker {
	if topK < 1 {
		topK = 1
	}
	return &Ranker{topK: topK}
}

// Rank splits insights by scope, deduplicates headline findings, orders them
// by (tier desc, magnitude desc, category priority, feature name), assigns
// sequential ranks and cuts the main set at K.
func (r *Ranker) Rank(insights []insight.Insight) RankedSet {
	var headline, supporting []insight.Insight
	for _, ins := range insights {
		if ins.Scope == insight.ScopeSupporting {
			supporting = append(supporting, ins)
		} else {
			headline = append(headline, ins)
		}
	}

	headline = dedupe(headline)
	sort.SliceStable(headline, func(i, j int) bool { return insight.Less(headline[i], headline[j]) })
	for i := range headline {
		headline[i].Rank = i + 1
	}

	cut := r.topK
	if cut > len(headline) {
		cut = len(headline)
	}
	main := headline[:cut]

	overflow := 0
	for _, ins := range headline[cut:] {
		if ins.Tier.Rank() >= insight.TierHigh.Rank() {
			overflow++
		}
	}

	sort.SliceStable(supporting, func(i, j int) bool {
		if supporting[i].Category.Priority() != supporting[j].Category.Priority() {
			return supporting[i].Category.Priority() < supporting[j].Category.Priority()
		}
		return supporting[i].Title < supporting[j].Title
	})

	return RankedSet{Main: main, Overflow: overflow, Supporting: supporting}
}

// dedupe collapses candidates referring to the same unordered feature set
// within the same category, keeping the higher-magnitude one.
func dedupe(insights []insight.Insight) []insight.Insight {
	best := make(map[string]int)
	var kept []insight.Insight
	for _, ins := range insights {
		key := dedupKey(ins)
		if idx, seen := best[key]; seen {
			if ins.Magnitude > kept[idx].Magnitude {
				kept[idx] = ins
			}
			continue
		}
		best[key] = len(kept)
		kept = append(kept, ins)
	}
	return kept
}

func dedupKey(ins insight.Insight) string {
	features := make([]string, len(ins.Features))
	for i, f := range ins.Features {
		features[i] = string(f)
	}
	sort.Strings(features)
	if len(features) == 0 {
		// Category-wide findings (e.g. data quality) collapse per category.
		return string(ins.Category)
	}
	return string(ins.Category) + "|" + strings.Join(features, "|")
}

// FeatureNames is a helper for deterministic feature listings in tests and
// rendering.
func FeatureNames(features []canonical.Feature) []string {
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = string(f)
	}
	sort.Strings(names)
	return names
}
