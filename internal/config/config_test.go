package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datastory/internal/errors"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateThresholdOrdering(t *testing.T) {
	cfg := Default()
	cfg.Thresholds.Correlation.Strong = 0.95 // above critical
	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestValidateCriticalCorrelationCap(t *testing.T) {
	cfg := Default()
	cfg.Thresholds.Correlation.Critical = 1.5
	assert.Error(t, cfg.Validate())
}

func TestValidateTopK(t *testing.T) {
	cfg := Default()
	cfg.Report.TopK = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("REPORT_TITLE", "Custom Title")
	t.Setenv("REPORT_TOP_K", "6")
	t.Setenv("PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Custom Title", cfg.Report.Title)
	assert.Equal(t, 6, cfg.Report.TopK)
	assert.Equal(t, "9999", cfg.Server.Port)
}

func TestLoadIgnoresUnparseableInt(t *testing.T) {
	t.Setenv("REPORT_TOP_K", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Report.TopK, cfg.Report.TopK)
}

func TestLoadThresholdsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	content := []byte(`
correlation:
  medium: 0.4
  strong: 0.6
  critical: 0.85
skewness:
  notable: 0.8
  high: 1.5
outlier_rate:
  medium: 0.02
  high: 0.08
  critical: 0.15
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	thresholds, err := LoadThresholdsFile(path)
	require.NoError(t, err)

	assert.Equal(t, 0.6, thresholds.Correlation.Strong)
	assert.Equal(t, 1.5, thresholds.Skewness.High)
	assert.Equal(t, 0.15, thresholds.OutlierRate.Critical)
}

func TestLoadThresholdsFileViaEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	content := []byte(`
correlation:
  medium: 0.3
  strong: 0.5
  critical: 0.8
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	t.Setenv("THRESHOLDS_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Thresholds.Correlation.Strong)
	// Unspecified sections keep their defaults.
	assert.Equal(t, Default().Thresholds.Skewness, cfg.Thresholds.Skewness)
}

func TestLoadThresholdsFileMissing(t *testing.T) {
	_, err := LoadThresholdsFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidFileThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	content := []byte(`
correlation:
  medium: 0.9
  strong: 0.5
  critical: 0.95
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	t.Setenv("THRESHOLDS_FILE", path)

	_, err := Load()
	require.Error(t, err)
}
