package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdimurro/trlgauge/internal/consensus"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ".trlgauge/assessments.db", cfg.DBPath)
	assert.Equal(t, string(consensus.MethodWeightedAverage), cfg.Assessment.ConsensusMethod)
	assert.Equal(t, 3, cfg.Assessment.MinimumReviewers)
	assert.Equal(t, 14, cfg.Assessment.ReviewPeriodDays)
	assert.Equal(t, 2.0, cfg.Assessment.SignificantGap)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `log_level: debug
db_path: /tmp/custom.db
assessment:
  consensus_method: delphi
  minimum_reviewers: 5
  require_all_scores: true
  review_period_days: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "delphi", cfg.Assessment.ConsensusMethod)
	assert.Equal(t, 5, cfg.Assessment.MinimumReviewers)
	assert.True(t, cfg.Assessment.RequireAllScores)

	// Untouched fields keep their defaults.
	assert.Equal(t, ".trlgauge/data", cfg.DataDir)
	assert.Equal(t, 2.0, cfg.Assessment.SignificantGap)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: [unclosed"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero reviewers", "assessment:\n  minimum_reviewers: 0\n"},
		{"negative gap", "assessment:\n  significant_gap: -1\n"},
		{"zero delphi rounds", "assessment:\n  delphi_max_rounds: 0\n"},
		{"negative sigma", "assessment:\n  delphi_outlier_sigma: -0.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestWorkflowOptions(t *testing.T) {
	cfg := DefaultConfig()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	opts := cfg.WorkflowOptions(created)
	assert.Equal(t, consensus.MethodWeightedAverage, opts.ConsensusMethod)
	assert.Equal(t, 3, opts.MinimumReviewers)
	require.NotNil(t, opts.Deadline)
	assert.Equal(t, created.Add(14*24*time.Hour), *opts.Deadline)
}

func TestWorkflowOptionsNoDeadline(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Assessment.ReviewPeriodDays = 0

	opts := cfg.WorkflowOptions(time.Now())
	assert.Nil(t, opts.Deadline)
}
