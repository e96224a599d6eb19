package handlers

import (
	"context"
	"time"

	"github.com/edgard/aibridge/internal/command"
	"github.com/edgard/aibridge/internal/database"
	"github.com/edgard/aibridge/internal/domain/model"
)

// NewPingHandler returns a handler for the ping command.
func NewPingHandler(deps HandlerDeps) CommandHandler {
	return pingHandler{deps}.Handle
}

// pingHandler processes the ping command using injected dependencies.
type pingHandler struct {
	deps HandlerDeps
}

func (h pingHandler) Handle(ctx context.Context, msg model.InboundMessage, cmd command.Command) {
	log := h.deps.Logger.With("handler", "ping")
	start := time.Now()

	latency := h.deps.Platform.Latency()
	status := database.StatusOK
	if err := h.deps.Platform.Reply(ctx, msg, h.deps.Formatter.Pong(latency)); err != nil {
		log.ErrorContext(ctx, "Failed to send pong", "error", err, "channel_id", msg.ChannelID)
		status = database.StatusDeliveryError
	} else {
		log.DebugContext(ctx, "Sent pong", "latency", latency)
	}

	recordCommand(ctx, h.deps, msg, cmd, status, start)
}
