package config

import "time"

// Default values for configuration
const (
	DefaultLogLevel = "info"

	DefaultAIPrefix       = "!ai"
	DefaultCommandPrefix  = "!"
	DefaultTypingInterval = 5 * time.Second
	DefaultPresenceText   = "for AI requests..."
	DefaultShutdownGrace  = 30 * time.Second

	DefaultModel                = "gemini-1.5-flash"
	DefaultBreakerMaxFailures   = 5
	DefaultBreakerResetInterval = time.Minute

	DefaultDBPath        = "bridge.db"
	DefaultRetentionDays = 30

	DefaultSQLMaintenanceCron = "0 4 * * 0"
	DefaultUsagePruneCron     = "30 3 * * *"
	DefaultUsageReportCron    = "0 0 * * *"
)

// DefaultMessages are the stock user-facing texts.
var DefaultMessages = MessagesConfig{
	GeneralError:  "Sorry, I encountered an error while processing your request. Please try again later.",
	ModelError:    "Sorry, I encountered an error using model `%s`. Please check if the model name is correct or try a different model.",
	EmptyResponse: "The model returned an empty response. Try rephrasing your message.",
	NoModels:      "No models available. Please check your API keys.",
	ModelsError:   "Sorry, I couldn't retrieve the model list. Please try again later.",
}

var defaults = map[string]any{
	"logger.level": DefaultLogLevel,
	"logger.json":  false,

	"discord.token":           "",
	"discord.ai_prefix":       DefaultAIPrefix,
	"discord.command_prefix":  DefaultCommandPrefix,
	"discord.typing_interval": DefaultTypingInterval,
	"discord.presence_text":   DefaultPresenceText,
	"discord.shutdown_grace":  DefaultShutdownGrace,

	"ai.default_model":          DefaultModel,
	"ai.openai_api_key":         "",
	"ai.openai_base_url":        "",
	"ai.gemini_api_key":         "",
	"ai.ollama_host":            "",
	"ai.breaker.max_failures":   DefaultBreakerMaxFailures,
	"ai.breaker.reset_interval": DefaultBreakerResetInterval,

	"messages.general_error":  DefaultMessages.GeneralError,
	"messages.model_error":    DefaultMessages.ModelError,
	"messages.empty_response": DefaultMessages.EmptyResponse,
	"messages.no_models":      DefaultMessages.NoModels,
	"messages.models_error":   DefaultMessages.ModelsError,

	"database.path":           DefaultDBPath,
	"database.retention_days": DefaultRetentionDays,

	"scheduler.enabled":              true,
	"scheduler.sql_maintenance_cron": DefaultSQLMaintenanceCron,
	"scheduler.usage_prune_cron":     DefaultUsagePruneCron,
	"scheduler.usage_report_cron":    DefaultUsageReportCron,
}

// envAliases are the conventional variable names accepted next to the
// BRIDGE_* ones. The first non-empty variable wins.
var envAliases = map[string][]string{
	"discord.token":      {"BRIDGE_DISCORD_TOKEN", "DISCORD_BOT_TOKEN"},
	"ai.openai_api_key":  {"BRIDGE_AI_OPENAI_API_KEY", "OPENAI_API_KEY"},
	"ai.openai_base_url": {"BRIDGE_AI_OPENAI_BASE_URL", "OPENAI_BASE_URL"},
	"ai.gemini_api_key":  {"BRIDGE_AI_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"ai.ollama_host":     {"BRIDGE_AI_OLLAMA_HOST", "OLLAMA_HOST"},
}
