// Package logger provides structured logging for the bridge.
// It uses Go's slog package for logging with configurable levels and formats.
package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/edgard/aibridge/internal/domain/model"
	"github.com/edgard/aibridge/internal/port/chat"
)

// NewLogger creates a new slog Logger with the specified level and format.
// If jsonOutput is true, logs will be formatted as JSON, otherwise as text.
// The process-wide default logger is left to the caller.
func NewLogger(levelStr string, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(levelStr),
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps a configured level name to a slog level, defaulting to info.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Middleware logs every inbound message before and after it is handled.
func Middleware(log *slog.Logger) chat.Middleware {
	return func(next chat.MessageHandler) chat.MessageHandler {
		return func(ctx context.Context, msg model.InboundMessage) {
			startTime := time.Now()

			logEntry := log.With(
				"message_id", msg.ID,
				"channel_id", msg.ChannelID,
				"guild_id", msg.GuildID,
				"user_id", msg.AuthorID,
				"text_preview", Preview(msg.Text, 50),
			)
			logEntry.DebugContext(ctx, "Processing message")

			next(ctx, msg)

			logEntry.DebugContext(ctx, "Finished processing message", "duration", time.Since(startTime))
		}
	}
}

// Preview shortens s to at most maxLen characters for log output, marking
// the cut with "...". It never splits a multi-byte character.
func Preview(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}
