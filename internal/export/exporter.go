package export

import (
	"encoding/json"
	"fmt"
	"math"

	"datastory/domain/canonical"
	"datastory/domain/core"
	"datastory/domain/insight"
)

// SchemaVersion identifies the interchange document layout. Field names are
// stable across runs for downstream machine consumption.
const SchemaVersion = "1.0"

// Document is the structured interchange payload.
type Document struct {
	SchemaVersion      string          `json:"schema_version"`
	ReportID           string          `json:"report_id"`
	Title              string          `json:"title"`
	ExecutiveSummary   string          `json:"executive_summary"`
	MainFindings       []Finding       `json:"main_findings"`
	SupportingInsights []Finding       `json:"supporting_insights"`
	OverflowFindings   int             `json:"overflow_findings"`
	Recommendations    []string        `json:"recommendations"`
	SummaryCounts      insight.Counts  `json:"summary_counts"`
}

// Finding is one exported insight.
type Finding struct {
	Rank         int              `json:"rank,omitempty"`
	Category     insight.Category `json:"category"`
	Significance insight.Tier     `json:"significance"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Magnitude    float64          `json:"magnitude"`
	Evidence     insight.Evidence `json:"evidence"`
	Features     []string         `json:"features,omitempty"`
}

// Exporter serializes ranked stories to the interchange document.
type Exporter struct{}

// New creates an exporter.
func New() *Exporter { return &Exporter{} }

// Export renders the story as indented JSON. It fails with a
// core.ErrSerialization-wrapped error if a non-finite numeric value slipped
// through intake validation; this guard should be unreachable on valid input.
func (e *Exporter) Export(reportID core.ReportID, story insight.Story) ([]byte, error) {
	doc := Document{
		SchemaVersion:      SchemaVersion,
		ReportID:           reportID.String(),
		Title:              story.Title,
		ExecutiveSummary:   story.ExecutiveSummary,
		MainFindings:       toFindings(story.Main),
		SupportingInsights: toFindings(story.Supporting),
		OverflowFindings:   story.Overflow,
		Recommendations:    story.Recommendations,
		SummaryCounts:      story.Counts,
	}

	for _, group := range [][]Finding{doc.MainFindings, doc.SupportingInsights} {
		for _, finding := range group {
			if err := checkFinite(finding); err != nil {
				return nil, err
			}
		}
	}

	return json.MarshalIndent(doc, "", "  ")
}

func toFindings(insights []insight.Insight) []Finding {
	findings := make([]Finding, len(insights))
	for i, ins := range insights {
		features := make([]string, len(ins.Features))
		for j, f := range ins.Features {
			features[j] = string(f)
		}
		findings[i] = Finding{
			Rank:         ins.Rank,
			Category:     ins.Category,
			Significance: ins.Tier,
			Title:        ins.Title,
			Description:  ins.Description,
			Magnitude:    ins.Magnitude,
			Evidence:     ins.Evidence,
			Features:     features,
		}
	}
	return findings
}

func checkFinite(finding Finding) error {
	if !isFinite(finding.Magnitude) {
		return core.NewSerializationError(fmt.Sprintf("%s.magnitude", finding.Title), finding.Magnitude)
	}
	for _, field := range finding.Evidence {
		if err := checkFiniteValue(fmt.Sprintf("%s.evidence.%s", finding.Title, field.Key), field.Value); err != nil {
			return err
		}
	}
	return nil
}

func checkFiniteValue(path string, value any) error {
	switch v := value.(type) {
	case float64:
		if !isFinite(v) {
			return core.NewSerializationError(path, v)
		}
	case map[canonical.Class]float64:
		for _, m := range v {
			if !isFinite(m) {
				return core.NewSerializationError(path, m)
			}
		}
	case []canonical.FeatureScore:
		for _, fs := range v {
			if !isFinite(fs.Score) {
				return core.NewSerializationError(path, fs.Score)
			}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
