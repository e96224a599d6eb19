// Package config loads the bridge configuration from defaults, an optional
// YAML file and environment variables, and validates the result.
package config

import (
	"time"
)

// Config is the complete bridge configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	AI        AIConfig        `mapstructure:"ai"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LoggerConfig controls log output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// DiscordConfig holds the chat platform settings.
type DiscordConfig struct {
	Token          string        `mapstructure:"token"           validate:"required"`
	AIPrefix       string        `mapstructure:"ai_prefix"       validate:"required"`
	CommandPrefix  string        `mapstructure:"command_prefix"`
	TypingInterval time.Duration `mapstructure:"typing_interval" validate:"min=1s,max=10s"`
	PresenceText   string        `mapstructure:"presence_text"`
	ShutdownGrace  time.Duration `mapstructure:"shutdown_grace"  validate:"min=1s"`
}

// AIConfig holds provider credentials and gateway settings. A provider is
// enabled when its key or host is set.
type AIConfig struct {
	DefaultModel  string        `mapstructure:"default_model"   validate:"required"`
	OpenAIAPIKey  string        `mapstructure:"openai_api_key"`
	OpenAIBaseURL string        `mapstructure:"openai_base_url" validate:"omitempty,url"`
	GeminiAPIKey  string        `mapstructure:"gemini_api_key"`
	OllamaHost    string        `mapstructure:"ollama_host"     validate:"omitempty,url"`
	Breaker       BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig tunes the per-provider circuit breakers.
type BreakerConfig struct {
	MaxFailures   int           `mapstructure:"max_failures"   validate:"min=1"`
	ResetInterval time.Duration `mapstructure:"reset_interval" validate:"min=1s"`
}

// MessagesConfig holds the user-facing texts that are not tied to a command.
type MessagesConfig struct {
	GeneralError  string `mapstructure:"general_error"  validate:"required"`
	ModelError    string `mapstructure:"model_error"    validate:"required"`
	EmptyResponse string `mapstructure:"empty_response" validate:"required"`
	NoModels      string `mapstructure:"no_models"      validate:"required"`
	ModelsError   string `mapstructure:"models_error"   validate:"required"`
}

// DatabaseConfig configures the usage ledger.
type DatabaseConfig struct {
	Path          string `mapstructure:"path"           validate:"required"`
	RetentionDays int    `mapstructure:"retention_days" validate:"min=1"`
}

// SchedulerConfig holds the cron expressions of the housekeeping tasks.
type SchedulerConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	SQLMaintenanceCron string `mapstructure:"sql_maintenance_cron" validate:"required_if=Enabled true"`
	UsagePruneCron     string `mapstructure:"usage_prune_cron"     validate:"required_if=Enabled true"`
	UsageReportCron    string `mapstructure:"usage_report_cron"    validate:"required_if=Enabled true"`
}

// HasProvider reports whether at least one AI provider is configured.
func (c AIConfig) HasProvider() bool {
	return c.OpenAIAPIKey != "" || c.GeminiAPIKey != "" || c.OllamaHost != ""
}

// Task names used as keys of SchedulerConfig.Jobs.
const (
	TaskSQLMaintenance = "sql_maintenance"
	TaskUsagePrune     = "usage_prune"
	TaskUsageReport    = "usage_report"
)

// Jobs returns the cron expression of every housekeeping task keyed by task
// name. It is empty when the scheduler is disabled.
func (c SchedulerConfig) Jobs() map[string]string {
	if !c.Enabled {
		return map[string]string{}
	}
	return map[string]string{
		TaskSQLMaintenance: c.SQLMaintenanceCron,
		TaskUsagePrune:     c.UsagePruneCron,
		TaskUsageReport:    c.UsageReportCron,
	}
}
