package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 30, cfg.Browser.PageTimeoutSecs)
	assert.Equal(t, 2000, cfg.Browser.MaxStyleRecords)
	assert.Equal(t, 1366, cfg.Browser.ViewportWidth)
	assert.Equal(t, 3, cfg.Inspect.MaxConcurrent)
	assert.Equal(t, 1.0, cfg.Inspect.RatePerSecond)
	assert.Equal(t, 5, cfg.Inspect.MaxCompetitors)
	assert.Equal(t, 2, cfg.Inspect.CaptureRetries)
	assert.Equal(t, 500, cfg.Inspect.RetryBackoffMs)
	assert.Equal(t, int64(1024), cfg.Anthropic.MaxTokens)
	assert.Equal(t, "mockups", cfg.Proposal.MockupDir)
	assert.Empty(t, cfg.Anthropic.Key)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PROPOSAL_SERVER_PORT", "9090")
	t.Setenv("PROPOSAL_LOG_LEVEL", "debug")
	t.Setenv("PROPOSAL_INSPECT_MAX_COMPETITORS", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Inspect.MaxCompetitors)
}

func TestPageTimeout(t *testing.T) {
	b := BrowserConfig{PageTimeoutSecs: 45}
	assert.Equal(t, 45*time.Second, b.PageTimeout())
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
}

func TestInitLoggerBadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "loud", Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}
