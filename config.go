package autoassign

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taskwell/autoassign/scoring"
)

// Config is the configuration for the Engine.
//
// Threshold fields are utilization percentages (100 means the full weekly
// cap is committed). The scoring section carries the per-candidate policy;
// the thresholds here drive alerting and redistribution.
type Config struct {
	// Scoring is the workload and candidate-scoring policy.
	Scoring scoring.Policy `yaml:"scoring"`

	// WarningThresholdPercent is the utilization at which an assignment
	// triggers a warning notification to the assignee.
	// Recommended: 90.
	WarningThresholdPercent float64 `yaml:"warningThresholdPercent"`

	// CriticalThresholdPercent is the utilization at which notifications
	// escalate to critical severity. Must be >= WarningThresholdPercent.
	// Recommended: 100.
	CriticalThresholdPercent float64 `yaml:"criticalThresholdPercent"`

	// OverloadThresholdPercent is the utilization at which a user is
	// considered overloaded and becomes a donor during redistribution.
	// Lower it (e.g. to 90) to rebalance users merely approaching
	// overload. Recommended: 100.
	OverloadThresholdPercent float64 `yaml:"overloadThresholdPercent"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		Scoring:                  scoring.DefaultPolicy(),
		WarningThresholdPercent:  90,
		CriticalThresholdPercent: 100,
		OverloadThresholdPercent: 100,
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	scoring.SetDefaults(&cfg.Scoring)

	if cfg.WarningThresholdPercent == 0 {
		cfg.WarningThresholdPercent = defaults.WarningThresholdPercent
	}
	if cfg.CriticalThresholdPercent == 0 {
		cfg.CriticalThresholdPercent = defaults.CriticalThresholdPercent
	}
	if cfg.OverloadThresholdPercent == 0 {
		cfg.OverloadThresholdPercent = defaults.OverloadThresholdPercent
	}
}

// Validate checks configuration constraints.
//
// Hard Validation Rules:
//   - Scoring policy constraints (see scoring.Policy.Validate)
//   - WarningThresholdPercent > 0
//   - CriticalThresholdPercent >= WarningThresholdPercent
//   - OverloadThresholdPercent > 0
//
// Returns:
//   - error: Validation error with a clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if err := cfg.Scoring.Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}

	if cfg.WarningThresholdPercent <= 0 {
		return fmt.Errorf("WarningThresholdPercent must be > 0, got %v", cfg.WarningThresholdPercent)
	}

	if cfg.CriticalThresholdPercent < cfg.WarningThresholdPercent {
		return fmt.Errorf(
			"CriticalThresholdPercent (%v) must be >= WarningThresholdPercent (%v)",
			cfg.CriticalThresholdPercent, cfg.WarningThresholdPercent,
		)
	}

	if cfg.OverloadThresholdPercent <= 0 {
		return fmt.Errorf("OverloadThresholdPercent must be > 0, got %v", cfg.OverloadThresholdPercent)
	}

	return nil
}

// LoadFile reads a YAML configuration file, applies defaults, and validates
// the result.
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - Config: Loaded configuration with defaults applied
//   - error: Read, parse, or validation failure
//
// Example:
//
//	cfg, err := autoassign.LoadFile("autoassign.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine, err := autoassign.NewEngine(&cfg, tasks, users)
func LoadFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return cfg, nil
}
