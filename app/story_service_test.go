package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datastory/domain/canonical"
	"datastory/domain/core"
	"datastory/domain/insight"
	"datastory/internal/export"
	"datastory/internal/intake"
	"datastory/internal/logging"
	"datastory/internal/testkit"
)

func newService() *StoryService {
	return NewStoryService(testkit.Config(), export.New(), logging.Nop())
}

func TestGenerateReportFullPipeline(t *testing.T) {
	bundle, err := newService().GenerateReport(context.Background(), testkit.IrisRequest())
	require.NoError(t, err)

	assert.False(t, core.ID(bundle.ReportID).IsEmpty())
	assert.False(t, bundle.GeneratedAt.IsZero())
	require.Len(t, bundle.Documents, 3)

	main := bundle.Story.Main
	require.Len(t, main, 4)
	assert.Equal(t, "Strong Positive Relationship Between PetalLengthCm and PetalWidthCm", main[0].Title)
	assert.Equal(t, insight.TierCritical, main[0].Tier)
	assert.Equal(t, "Key Discriminating Feature: Id", main[1].Title)
	assert.Equal(t, "Asymmetric Distribution in PetalRatio", main[2].Title)
	assert.Equal(t, "Primary Predictive Feature: PetalLengthCm", main[3].Title)
	assert.Zero(t, bundle.Story.Overflow)
}

func TestGenerateReportNumericProperties(t *testing.T) {
	bundle, err := newService().GenerateReport(context.Background(), testkit.IrisRequest())
	require.NoError(t, err)

	for audience, doc := range bundle.Documents {
		assert.Contains(t, doc, "0.980", "audience %s", audience)
		assert.Contains(t, doc, "2.345", "audience %s", audience)
		assert.Contains(t, doc, "100.000", "audience %s", audience)
	}

	summary := bundle.Story.ExecutiveSummary
	assert.Contains(t, summary, "43.9%")
	assert.Contains(t, summary, "PetalLengthCm")
}

func TestGenerateReportCounts(t *testing.T) {
	bundle, err := newService().GenerateReport(context.Background(), testkit.IrisRequest())
	require.NoError(t, err)

	counts := bundle.Story.Counts
	assert.Equal(t, 8, counts.FeaturesAnalyzed)
	assert.Equal(t, 1, counts.StrongCorrelations)
	assert.Equal(t, 4, counts.HighSignificance)
	assert.Zero(t, counts.TotalOutliers)
}

func TestGenerateReportRecommendationTail(t *testing.T) {
	bundle, err := newService().GenerateReport(context.Background(), testkit.IrisRequest())
	require.NoError(t, err)

	recs := bundle.Story.Recommendations
	require.GreaterOrEqual(t, len(recs), 3)
	assert.Contains(t, recs[len(recs)-3], "cross-validation")
	assert.Contains(t, recs[len(recs)-2], "ensemble methods")
	assert.Contains(t, recs[len(recs)-1], "reproducibility")
}

func TestGenerateReportDeterministic(t *testing.T) {
	service := newService()

	first, err := service.GenerateReport(context.Background(), testkit.IrisRequest())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := service.GenerateReport(context.Background(), testkit.IrisRequest())
		require.NoError(t, err)

		assert.Equal(t, first.Documents, again.Documents)
		assert.Equal(t, first.Story, again.Story)
		assert.Equal(t, stripReportID(t, first.ExportJSON), stripReportID(t, again.ExportJSON))
	}
}

func TestGenerateReportMinimalInput(t *testing.T) {
	bundle, err := newService().GenerateReport(context.Background(), testkit.MinimalRequest())
	require.NoError(t, err)

	// Only the class-analysis detector can fire from the summary section.
	require.Len(t, bundle.Story.Main, 1)
	assert.Equal(t, insight.CategoryDifferentiation, bundle.Story.Main[0].Category)
}

func TestGenerateReportMalformedInput(t *testing.T) {
	_, err := newService().GenerateReport(context.Background(), intake.Request{})
	require.Error(t, err)
	assert.True(t, core.IsMalformedInputError(err))
}

func TestGenerateReportOutlierVariant(t *testing.T) {
	req := testkit.RequestWithOutliers(map[canonical.Feature]int{
		"SepalWidthCm":  20,
		"PetalLengthCm": 15,
	})

	bundle, err := newService().GenerateReport(context.Background(), req)
	require.NoError(t, err)

	// 35/150 outliers crosses the critical rate threshold.
	found := false
	for _, ins := range bundle.Story.Main {
		if ins.Category == insight.CategoryDataQuality {
			found = true
			assert.Equal(t, insight.TierCritical, ins.Tier)
			assert.Equal(t, "Outlier Detection Results", ins.Title)
		}
	}
	assert.True(t, found)
	assert.Equal(t, 35, bundle.Story.Counts.TotalOutliers)
}

func TestListDetectors(t *testing.T) {
	names := newService().ListDetectors()
	assert.Equal(t, []string{"correlation", "distribution", "differentiation", "importance", "data_quality"}, names)
}

func stripReportID(t *testing.T, payload []byte) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal(payload, &doc))
	delete(doc, "report_id")
	return doc
}
