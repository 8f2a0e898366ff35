package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"datastory/internal/errors"
)

// Config represents the complete application configuration. One Config value
// is passed explicitly into the classifier, ranker and renderer so multiple
// configurations can run concurrently without interference.
type Config struct {
	Thresholds Thresholds
	Report     ReportConfig
	Server     ServerConfig
	Output     OutputConfig
}

// Thresholds holds the externally configurable significance boundaries.
type Thresholds struct {
	Correlation CorrelationThresholds `yaml:"correlation"`
	Skewness    SkewnessThresholds    `yaml:"skewness"`
	OutlierRate OutlierRateThresholds `yaml:"outlier_rate"`

	// Tier overrides for the single-winner categories. Empty means the
	// default "high" classification.
	DifferentiationTier string `yaml:"differentiation_tier,omitempty"`
	ImportanceTier      string `yaml:"importance_tier,omitempty"`
}

// CorrelationThresholds classify |coefficient| magnitudes.
type CorrelationThresholds struct {
	Medium   float64 `yaml:"medium"`   // above: medium
	Strong   float64 `yaml:"strong"`   // above: high, also the detector's "strong" cutoff
	Critical float64 `yaml:"critical"` // above: critical
}

// SkewnessThresholds classify |skewness| magnitudes.
type SkewnessThresholds struct {
	Notable float64 `yaml:"notable"` // above: medium, also the detector's emission cutoff
	High    float64 `yaml:"high"`    // above: high
}

// OutlierRateThresholds classify outliers as a fraction of the sample size.
type OutlierRateThresholds struct {
	Medium   float64 `yaml:"medium"`
	High     float64 `yaml:"high"`
	Critical float64 `yaml:"critical"`
}

// ReportConfig holds rendering settings.
type ReportConfig struct {
	Title           string
	TopK            int // number of main findings narrated individually
	ValueDecimals   int // correlation/skewness/range/score display precision
	PercentDecimals int // percentage display precision
}

// ServerConfig holds report server settings.
type ServerConfig struct {
	Port string
}

// OutputConfig holds artifact output settings for the CLI.
type OutputConfig struct {
	Dir string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Thresholds: Thresholds{
			Correlation: CorrelationThresholds{Medium: 0.5, Strong: 0.7, Critical: 0.9},
			Skewness:    SkewnessThresholds{Notable: 1.0, High: 2.0},
			OutlierRate: OutlierRateThresholds{Medium: 0.05, High: 0.10, Critical: 0.20},
		},
		Report: ReportConfig{
			Title:           "Classification Dataset: A Data-Driven Analysis",
			TopK:            4,
			ValueDecimals:   3,
			PercentDecimals: 1,
		},
		Server: ServerConfig{Port: "8080"},
		Output: OutputConfig{Dir: "reports"},
	}
}

// Load reads configuration from environment variables, overlays an optional
// thresholds YAML file (THRESHOLDS_FILE), and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	cfg.Report.Title = getEnvOrDefault("REPORT_TITLE", cfg.Report.Title)
	cfg.Report.TopK = getEnvIntOrDefault("REPORT_TOP_K", cfg.Report.TopK)
	cfg.Server.Port = getEnvOrDefault("PORT", cfg.Server.Port)
	cfg.Output.Dir = getEnvOrDefault("OUTPUT_DIR", cfg.Output.Dir)

	if path := os.Getenv("THRESHOLDS_FILE"); path != "" {
		thresholds, err := LoadThresholdsFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load thresholds file")
		}
		cfg.Thresholds = *thresholds
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// LoadThresholdsFile parses a YAML thresholds document.
func LoadThresholdsFile(path string) (*Thresholds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	thresholds := Default().Thresholds
	if err := yaml.Unmarshal(data, &thresholds); err != nil {
		return nil, errors.Wrap(err, "failed to parse thresholds YAML")
	}
	return &thresholds, nil
}

// Validate checks threshold ordering and report settings.
func (c *Config) Validate() error {
	t := c.Thresholds
	if !(t.Correlation.Medium < t.Correlation.Strong && t.Correlation.Strong < t.Correlation.Critical) {
		return errors.ConfigInvalid("correlation thresholds must be strictly increasing")
	}
	if t.Correlation.Critical > 1.0 {
		return errors.ConfigInvalid("critical correlation threshold cannot exceed 1.0")
	}
	if !(t.Skewness.Notable < t.Skewness.High) {
		return errors.ConfigInvalid("skewness thresholds must be strictly increasing")
	}
	if !(t.OutlierRate.Medium < t.OutlierRate.High && t.OutlierRate.High < t.OutlierRate.Critical) {
		return errors.ConfigInvalid("outlier rate thresholds must be strictly increasing")
	}
	if c.Report.TopK < 1 {
		return errors.ConfigInvalid("top-K must be at least 1")
	}
	if c.Report.ValueDecimals < 0 || c.Report.PercentDecimals < 0 {
		return errors.ConfigInvalid("display precision cannot be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
