package detect

import (
	"context"

	"golang.org/x/sync/errgroup"

	"datastory/domain/canonical"
	"datastory/domain/insight"
	"datastory/internal/config"
	"datastory/ports"
)

// Engine orchestrates the five insight detectors. Detectors have no data
// dependency on one another; the engine runs them concurrently and merges
// results by registration slot so completion order never changes the output.
type Engine struct {
	detectors []ports.Detector
}

// NewEngine creates an engine with the full detector set.
func NewEngine(thresholds config.Thresholds) *Engine {
	return &Engine{
		detectors: []ports.Detector{
			NewCorrelationDetector(thresholds.Correlation),
			NewDistributionDetector(thresholds.Skewness),
			NewDifferentiationDetector(),
			NewImportanceDetector(),
			NewDataQualityDetector(),
		},
	}
}

// DetectAll evaluates every detector against the canonical statistics and
// returns the combined candidate set in deterministic detector order.
func (e *Engine) DetectAll(ctx context.Context, stats canonical.Statistics) ([]insight.Candidate, error) {
	slots := make([][]insight.Candidate, len(e.detectors))

	g, ctx := errgroup.WithContext(ctx)
	for i, det := range e.detectors {
		i, det := i, det
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			slots[i] = det.Detect(stats)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var candidates []insight.Candidate
	for _, slot := range slots {
		candidates = append(candidates, slot...)
	}
	return candidates, nil
}

// ListDetectors returns the registered detector names.
func (e *Engine) ListDetectors() []string {
	names := make([]string, len(e.detectors))
	for i, det := range e.detectors {
		names[i] = det.Name()
	}
	return names
}
