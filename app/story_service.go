package app

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"datastory/domain/canonical"
	"datastory/domain/core"
	"datastory/domain/insight"
	"datastory/internal/classify"
	"datastory/internal/config"
	"datastory/internal/detect"
	"datastory/internal/intake"
	"datastory/internal/narrative"
	"datastory/internal/rank"
	"datastory/ports"
)

// StoryService orchestrates one full report generation run: intake
// normalization, detection, classification, ranking, narrative composition,
// per-audience rendering, and structured export. The service holds no state
// between runs; every call produces a complete bundle or no output at all.
type StoryService struct {
	cfg        *config.Config
	engine     *detect.Engine
	classifier *classify.Classifier
	ranker     *rank.Ranker
	exporter   ports.Exporter
	logger     zerolog.Logger
}

// NewStoryService wires the pipeline stages from validated configuration.
func NewStoryService(cfg *config.Config, exporter ports.Exporter, logger zerolog.Logger) *StoryService {
	return &StoryService{
		cfg:        cfg,
		engine:     detect.NewEngine(cfg.Thresholds),
		classifier: classify.New(cfg.Thresholds),
		ranker:     rank.New(cfg.Report.TopK),
		exporter:   exporter,
		logger:     logger,
	}
}

// GenerateReport runs the full pipeline against one statistics intake request.
// The same request against the same configuration yields byte-identical
// documents and export payload; only ReportID and GeneratedAt vary.
func (s *StoryService) GenerateReport(ctx context.Context, req intake.Request) (*insight.ReportBundle, error) {
	startTime := time.Now()
	reportID := core.ReportID(core.NewID())

	stats, warnings, err := intake.Normalize(req)
	if err != nil {
		return nil, err
	}
	for _, warning := range warnings {
		s.logger.Warn().Str("report_id", reportID.String()).Msg(warning)
	}

	candidates, err := s.engine.DetectAll(ctx, stats)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().
		Str("report_id", reportID.String()).
		Int("candidates", len(candidates)).
		Msg("detection complete")

	classified := s.classifier.ClassifyAll(candidates, stats.SampleSize)
	ranked := s.ranker.Rank(classified)

	counts := s.buildCounts(stats, ranked)
	story := narrative.Compose(s.cfg.Report, ranked, counts)

	documents, err := s.renderDocuments(ctx, story)
	if err != nil {
		return nil, err
	}

	exportJSON, err := s.exporter.Export(reportID, story)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("report_id", reportID.String()).
		Int("main_findings", len(story.Main)).
		Int("supporting_insights", len(story.Supporting)).
		Int("overflow", story.Overflow).
		Dur("elapsed", time.Since(startTime)).
		Msg("report generated")

	return &insight.ReportBundle{
		ReportID:    reportID,
		GeneratedAt: time.Now().UTC(),
		Story:       story,
		Documents:   documents,
		ExportJSON:  exportJSON,
	}, nil
}

// renderDocuments renders the three audience documents concurrently. The
// renderer is a pure function of the story, so concurrency cannot affect
// document content.
func (s *StoryService) renderDocuments(ctx context.Context, story insight.Story) (map[insight.Audience]string, error) {
	documents := make(map[insight.Audience]string, len(insight.Audiences))
	rendered := make([]string, len(insight.Audiences))

	g, ctx := errgroup.WithContext(ctx)
	for i, audience := range insight.Audiences {
		i, audience := i, audience
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			rendered[i] = narrative.RenderDocument(story, audience)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, audience := range insight.Audiences {
		documents[audience] = rendered[i]
	}
	return documents, nil
}

func (s *StoryService) buildCounts(stats canonical.Statistics, ranked rank.RankedSet) insight.Counts {
	strong := 0
	if stats.HasCorrelations {
		for _, coeff := range stats.Correlations {
			if math.Abs(coeff) > s.cfg.Thresholds.Correlation.Strong {
				strong++
			}
		}
	}

	high := ranked.Overflow
	for _, ins := range ranked.Main {
		if ins.Tier.Rank() >= insight.TierHigh.Rank() {
			high++
		}
	}

	return insight.Counts{
		FeaturesAnalyzed:   len(stats.Features),
		StrongCorrelations: strong,
		HighSignificance:   high,
		TotalOutliers:      stats.TotalOutliers,
	}
}

// ListDetectors exposes the registered detector names for diagnostics.
func (s *StoryService) ListDetectors() []string {
	return s.engine.ListDetectors()
}
