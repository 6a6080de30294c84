package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	pkgvalidator "github.com/johnquangdev/fathom-relay/pkg/validator"
)

// Analysis providers
const (
	ProviderAnthropic = "anthropic"
	ProviderGroq      = "groq"
)

// Config holds application configuration. Every field is bound by its
// full variable name; sections are processed without a prefix so envconfig
// never falls back to a bare name like API_KEY.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Metrics   MetricsConfig
	Slack     SlackConfig
	Analyzer  AnalyzerConfig
	Anthropic AnthropicConfig
	Groq      GroqConfig
	Dedup     DedupConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080" validate:"required"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	File  string `envconfig:"LOG_FILE"`
}

// MetricsConfig toggles the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

// SlackConfig holds chat delivery configuration. Either a bot token with a
// channel, or an incoming webhook URL.
type SlackConfig struct {
	BotToken   string        `envconfig:"SLACK_BOT_TOKEN"`
	Channel    string        `envconfig:"SLACK_CHANNEL"`
	WebhookURL string        `envconfig:"SLACK_WEBHOOK_URL" validate:"omitempty,url"`
	APIURL     string        `envconfig:"SLACK_API_URL" validate:"omitempty,url"`
	Timeout    time.Duration `envconfig:"SLACK_TIMEOUT" default:"10s" validate:"gt=0"`
}

// AnalyzerConfig holds transcript analysis settings
type AnalyzerConfig struct {
	Provider          string        `envconfig:"ANALYZER_PROVIDER" default:"anthropic" validate:"oneof=anthropic groq"`
	Timeout           time.Duration `envconfig:"ANALYZER_TIMEOUT" default:"10s" validate:"gt=0"`
	RetryMaxElapsed   time.Duration `envconfig:"ANALYZER_RETRY_MAX_ELAPSED" default:"5s" validate:"gte=0"`
	RequireTranscript bool          `envconfig:"ANALYZER_REQUIRE_TRANSCRIPT" default:"false"`
}

// AnthropicConfig holds Anthropic Messages API configuration
type AnthropicConfig struct {
	APIKey    string `envconfig:"ANTHROPIC_API_KEY"`
	BaseURL   string `envconfig:"ANTHROPIC_BASE_URL" default:"https://api.anthropic.com" validate:"url"`
	Model     string `envconfig:"ANTHROPIC_MODEL" default:"claude-sonnet-4-20250514"`
	MaxTokens int    `envconfig:"ANTHROPIC_MAX_TOKENS" default:"1000" validate:"gt=0"`
}

// GroqConfig holds Groq API configuration
type GroqConfig struct {
	APIKey  string `envconfig:"GROQ_API_KEY"`
	BaseURL string `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com" validate:"url"`
	Model   string `envconfig:"GROQ_MODEL" default:"llama-3.1-70b-versatile"`
}

// DedupConfig holds the processed-call policy
type DedupConfig struct {
	// RollbackOnFailure un-marks a call when its notification fails so a
	// later redelivery is processed again.
	RollbackOnFailure bool `envconfig:"DEDUP_ROLLBACK_ON_FAILURE" default:"false"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	sections := []interface{}{
		&config.Server,
		&config.Log,
		&config.Metrics,
		&config.Slack,
		&config.Analyzer,
		&config.Anthropic,
		&config.Groq,
		&config.Dedup,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration. Missing credentials are not errors,
// they put the matching component in degraded mode.
func (c *Config) Validate() error {
	if err := pkgvalidator.New().Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %s", pkgvalidator.Describe(err))
	}
	return nil
}

// AnalysisAPIKey returns the credential of the selected analysis provider
func (c *Config) AnalysisAPIKey() string {
	if c.Analyzer.Provider == ProviderGroq {
		return c.Groq.APIKey
	}
	return c.Anthropic.APIKey
}

// AnalysisConfigured reports whether the selected provider has a credential
func (c *Config) AnalysisConfigured() bool {
	return c.AnalysisAPIKey() != ""
}

// NotifierConfigured reports whether chat delivery has a usable target
func (c *Config) NotifierConfigured() bool {
	if c.Slack.BotToken != "" && c.Slack.Channel != "" {
		return true
	}
	return c.Slack.WebhookURL != ""
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
