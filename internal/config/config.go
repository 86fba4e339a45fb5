// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Browser   BrowserConfig   `yaml:"browser" mapstructure:"browser"`
	Inspect   InspectConfig   `yaml:"inspect" mapstructure:"inspect"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Proposal  ProposalConfig  `yaml:"proposal" mapstructure:"proposal"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// BrowserConfig configures the headless browser.
type BrowserConfig struct {
	Headless        bool   `yaml:"headless" mapstructure:"headless"`
	NoSandbox       bool   `yaml:"no_sandbox" mapstructure:"no_sandbox"`
	UserAgent       string `yaml:"user_agent" mapstructure:"user_agent"`
	PageTimeoutSecs int    `yaml:"page_timeout_secs" mapstructure:"page_timeout_secs"`
	MaxStyleRecords int    `yaml:"max_style_records" mapstructure:"max_style_records"`
	ViewportWidth   int    `yaml:"viewport_width" mapstructure:"viewport_width"`
	ViewportHeight  int    `yaml:"viewport_height" mapstructure:"viewport_height"`
}

// PageTimeout returns the per-page timeout as a duration.
func (b BrowserConfig) PageTimeout() time.Duration {
	return time.Duration(b.PageTimeoutSecs) * time.Second
}

// InspectConfig configures the inspection phase.
type InspectConfig struct {
	MaxConcurrent  int     `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	RatePerSecond  float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst      int     `yaml:"rate_burst" mapstructure:"rate_burst"`
	MaxCompetitors int     `yaml:"max_competitors" mapstructure:"max_competitors"`
	CaptureRetries int     `yaml:"capture_retries" mapstructure:"capture_retries"`
	RetryBackoffMs int     `yaml:"retry_backoff_ms" mapstructure:"retry_backoff_ms"`
}

// AnthropicConfig holds Anthropic API settings for the optional narrative
// generation. An empty key disables the LLM collaborator entirely.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ProposalConfig configures document assembly.
type ProposalConfig struct {
	MockupDir string `yaml:"mockup_dir" mapstructure:"mockup_dir"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROPOSAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.no_sandbox", true)
	v.SetDefault("browser.page_timeout_secs", 30)
	v.SetDefault("browser.max_style_records", 2000)
	v.SetDefault("browser.viewport_width", 1366)
	v.SetDefault("browser.viewport_height", 768)
	v.SetDefault("inspect.max_concurrent", 3)
	v.SetDefault("inspect.rate_per_second", 1.0)
	v.SetDefault("inspect.rate_burst", 2)
	v.SetDefault("inspect.max_competitors", 5)
	v.SetDefault("inspect.capture_retries", 2)
	v.SetDefault("inspect.retry_backoff_ms", 500)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("proposal.mockup_dir", "mockups")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
