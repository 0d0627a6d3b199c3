// Package config loads trlgauge configuration from YAML. Missing files are
// not an error; defaults apply and file values override them.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cdimurro/trlgauge/internal/consensus"
	"github.com/cdimurro/trlgauge/internal/workflow"
)

// AssessmentConfig holds the per-assessment defaults applied when a new
// workflow context is created.
type AssessmentConfig struct {
	// ConsensusMethod selects the aggregation strategy
	ConsensusMethod string `yaml:"consensus_method"`

	// MinimumReviewers is the smallest panel allowed to start a review
	MinimumReviewers int `yaml:"minimum_reviewers"`

	// RequireAllScores waits for every reviewer before consensus
	RequireAllScores bool `yaml:"require_all_scores"`

	// ReviewPeriodDays sets the review deadline relative to creation (0 = none)
	ReviewPeriodDays int `yaml:"review_period_days"`

	// SignificantGap is the level difference that forces disagreement resolution
	SignificantGap float64 `yaml:"significant_gap"`

	// DelphiMaxRounds caps the Delphi iteration
	DelphiMaxRounds int `yaml:"delphi_max_rounds"`

	// DelphiOutlierSigma is the trim threshold in standard deviations
	DelphiOutlierSigma float64 `yaml:"delphi_outlier_sigma"`
}

// Config represents trlgauge configuration options.
type Config struct {
	// LogLevel sets logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// DBPath is the path to the assessment database
	DBPath string `yaml:"db_path"`

	// DataDir holds domain evidence/criteria YAML files and the reviewer directory
	DataDir string `yaml:"data_dir"`

	// SnapshotDir is where archived assessments export audit snapshots
	SnapshotDir string `yaml:"snapshot_dir"`

	// Assessment holds per-assessment defaults
	Assessment AssessmentConfig `yaml:"assessment"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "info",
		DBPath:      ".trlgauge/assessments.db",
		DataDir:     ".trlgauge/data",
		SnapshotDir: ".trlgauge/snapshots",
		Assessment: AssessmentConfig{
			ConsensusMethod:    string(consensus.MethodWeightedAverage),
			MinimumReviewers:   3,
			RequireAllScores:   false,
			ReviewPeriodDays:   14,
			SignificantGap:     consensus.SignificantGap,
			DelphiMaxRounds:    5,
			DelphiOutlierSigma: 1.5,
		},
	}
}

// LoadConfig loads configuration from the specified file path. A missing
// file returns defaults without error; a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the core cannot work with.
func (c *Config) Validate() error {
	if c.Assessment.MinimumReviewers < 1 {
		return fmt.Errorf("minimum_reviewers must be at least 1, got %d", c.Assessment.MinimumReviewers)
	}
	if c.Assessment.SignificantGap < 0 {
		return fmt.Errorf("significant_gap must not be negative, got %v", c.Assessment.SignificantGap)
	}
	if c.Assessment.DelphiMaxRounds < 1 {
		return fmt.Errorf("delphi_max_rounds must be at least 1, got %d", c.Assessment.DelphiMaxRounds)
	}
	if c.Assessment.DelphiOutlierSigma <= 0 {
		return fmt.Errorf("delphi_outlier_sigma must be positive, got %v", c.Assessment.DelphiOutlierSigma)
	}
	return nil
}

// WorkflowOptions translates the assessment defaults into workflow options.
// The deadline, if configured, is anchored at the given creation time.
func (c *Config) WorkflowOptions(createdAt time.Time) workflow.Options {
	opts := workflow.Options{
		ConsensusMethod:    consensus.Method(c.Assessment.ConsensusMethod),
		MinimumReviewers:   c.Assessment.MinimumReviewers,
		RequireAllScores:   c.Assessment.RequireAllScores,
		SignificantGap:     c.Assessment.SignificantGap,
		DelphiMaxRounds:    c.Assessment.DelphiMaxRounds,
		DelphiOutlierSigma: c.Assessment.DelphiOutlierSigma,
	}
	if c.Assessment.ReviewPeriodDays > 0 {
		d := createdAt.Add(time.Duration(c.Assessment.ReviewPeriodDays) * 24 * time.Hour)
		opts.Deadline = &d
	}
	return opts
}
