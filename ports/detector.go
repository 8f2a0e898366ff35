package ports

import (
	"datastory/domain/canonical"
	"datastory/domain/insight"
)

// Detector is one rule module scanning the canonical statistics for findings.
// Implementations must be pure: same input, same candidates, no shared state,
// so the engine can run them in any order or concurrently.
type Detector interface {
	Name() string
	Description() string
	Detect(stats canonical.Statistics) []insight.Candidate
}
