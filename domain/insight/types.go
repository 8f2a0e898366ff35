package insight

import (
	"time"

	"datastory/domain/canonical"
	"datastory/domain/core"
)

// Category labels the rule family that produced a finding.
type Category string

const (
	CategoryCorrelation     Category = "correlation"
	CategoryDistribution    Category = "distribution"
	CategoryDifferentiation Category = "differentiation"
	CategoryImportance      Category = "importance"
	CategoryDataQuality     Category = "data_quality"
)

// categoryPriority is the fixed tie-break order used wherever two findings
// compare equal on tier and magnitude. Lower value wins.
var categoryPriority = map[Category]int{
	CategoryCorrelation:     0,
	CategoryImportance:      1,
	CategoryDifferentiation: 2,
	CategoryDistribution:    3,
	CategoryDataQuality:     4,
}

// Priority returns the fixed tie-break rank of the category.
func (c Category) Priority() int {
	p, ok := categoryPriority[c]
	if !ok {
		return len(categoryPriority)
	}
	return p
}

// Label returns the human-readable category name used in rendered documents.
func (c Category) Label() string {
	switch c {
	case CategoryCorrelation:
		return "Correlation Analysis"
	case CategoryDistribution:
		return "Data Distribution"
	case CategoryDifferentiation:
		return "Class Differentiation"
	case CategoryImportance:
		return "Feature Importance"
	case CategoryDataQuality:
		return "Data Quality"
	default:
		return string(c)
	}
}

// Tier is the ordinal significance classification of a finding.
type Tier string

const (
	TierCritical Tier = "critical"
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierLow      Tier = "low"
)

// Rank returns the ordinal rank of a tier; higher means more significant.
func (t Tier) Rank() int {
	switch t {
	case TierCritical:
		return 4
	case TierHigh:
		return 3
	case TierMedium:
		return 2
	case TierLow:
		return 1
	default:
		return 0
	}
}

// Scope separates individually-narrated headline findings from the aggregate
// supporting insights that always render in their own section.
type Scope string

const (
	ScopeHeadline   Scope = "headline"
	ScopeSupporting Scope = "supporting"
)

// Audience selects phrasing and depth of a rendered document.
type Audience string

const (
	AudienceTechnical Audience = "technical"
	AudienceBusiness  Audience = "business"
	AudienceGeneral   Audience = "general"
)

// Audiences lists all audiences in rendering order.
var Audiences = []Audience{AudienceTechnical, AudienceBusiness, AudienceGeneral}

// Candidate is an unclassified, unranked insight proposal emitted by a
// detector. Candidates are immutable once created.
type Candidate struct {
	Category  Category            `json:"category"`
	Scope     Scope               `json:"scope"`
	Title     string              `json:"title"`
	Magnitude float64             `json:"magnitude"`
	Evidence  Evidence            `json:"evidence"`
	Features  []canonical.Feature `json:"features"`
}

// Insight is a classified, ranked, audience-text-bearing finding. It is
// created from a Candidate, annotated once, and read-only afterwards.
type Insight struct {
	Candidate

	Tier Tier `json:"significance"`
	Rank int  `json:"rank,omitempty"` // 1-based for headline findings, 0 for supporting

	Description     string   `json:"description"`
	TechnicalDetail string   `json:"technical_detail"`
	BusinessImpact  string   `json:"business_impact"`
	PlainSummary    string   `json:"plain_summary"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// Less orders insights by (tier desc, magnitude desc, category priority,
// lexical feature name). The ordering is total over distinct findings, which
// keeps concurrent detector output reproducible.
func Less(a, b Insight) bool {
	if a.Tier.Rank() != b.Tier.Rank() {
		return a.Tier.Rank() > b.Tier.Rank()
	}
	if a.Magnitude != b.Magnitude {
		return a.Magnitude > b.Magnitude
	}
	if a.Category.Priority() != b.Category.Priority() {
		return a.Category.Priority() < b.Category.Priority()
	}
	return featureKey(a.Features) < featureKey(b.Features)
}

func featureKey(features []canonical.Feature) string {
	key := ""
	for _, f := range features {
		key += string(f) + "|"
	}
	return key
}

// Counts summarizes the run for the export payload and executive framing.
type Counts struct {
	FeaturesAnalyzed   int `json:"features_analyzed"`
	StrongCorrelations int `json:"strong_correlations"`
	HighSignificance   int `json:"high_significance_findings"`
	TotalOutliers      int `json:"total_outliers"`
}

// Story is the ranked insight set plus its narrative scaffolding, consumed
// read-only by the renderer and the exporters.
type Story struct {
	Title            string    `json:"title"`
	ExecutiveSummary string    `json:"executive_summary"`
	Main             []Insight `json:"main_findings"`
	Supporting       []Insight `json:"supporting_insights"`
	Overflow         int       `json:"overflow"` // qualifying headline findings beyond the top K
	Recommendations  []string  `json:"recommendations"`
	Methodology      string    `json:"methodology"`
	Limitations      []string  `json:"limitations"`
	Counts           Counts    `json:"counts"`
}

// ReportBundle is the final artifact set for one generation run. The engine
// holds no state across runs; the bundle is owned by the caller.
type ReportBundle struct {
	ReportID    core.ReportID       `json:"report_id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Story       Story               `json:"story"`
	Documents   map[Audience]string `json:"documents"`
	ExportJSON  []byte              `json:"-"`
}
