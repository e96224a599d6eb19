package handlers

import (
	"log/slog"

	"github.com/edgard/aibridge/internal/database"
	"github.com/edgard/aibridge/internal/port/ai"
	"github.com/edgard/aibridge/internal/port/chat"
	"github.com/edgard/aibridge/internal/reply"
)

// HandlerDeps provides dependencies for the command handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Store     database.Store
	Gateway   ai.Gateway
	Platform  chat.Platform
	Formatter *reply.Formatter
}
