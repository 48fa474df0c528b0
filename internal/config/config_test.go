package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from a directory without a config file so defaults apply.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 0.85, cfg.Policy.ApproveThreshold)
	assert.Equal(t, 0.15, cfg.Policy.DenyThreshold)
	assert.Equal(t, 0.95, cfg.Policy.ApprovalFactor)
	assert.Equal(t, 90, cfg.Compliance.MaxSubmissionDelayDays)
	assert.Equal(t, 50.0, cfg.Metrics.CostSavingPerAutoClaim)
	assert.Equal(t, 0.8, cfg.Scorer.BaseProbability)
	assert.Equal(t, 0.7, cfg.Fraud.RiskThreshold)
}

func TestLoadFromFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/config.yaml", []byte(`
server:
  port: 9090
policy:
  approve_threshold: 0.9
  deny_threshold: 0.1
log:
  level: debug
  format: console
`), 0o644))
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0.9, cfg.Policy.ApproveThreshold)
	assert.Equal(t, 0.1, cfg.Policy.DenyThreshold)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.95, cfg.Policy.ApprovalFactor)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}
