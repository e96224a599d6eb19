package handlers

import (
	"context"
	"time"

	"github.com/edgard/aibridge/internal/command"
	"github.com/edgard/aibridge/internal/database"
	"github.com/edgard/aibridge/internal/domain/model"
)

// NewHelpHandler returns a handler for the help command.
func NewHelpHandler(deps HandlerDeps) CommandHandler {
	return helpHandler{deps}.Handle
}

// helpHandler processes the help command using injected dependencies.
type helpHandler struct {
	deps HandlerDeps
}

func (h helpHandler) Handle(ctx context.Context, msg model.InboundMessage, cmd command.Command) {
	log := h.deps.Logger.With("handler", "help")
	start := time.Now()

	status := database.StatusOK
	if err := h.deps.Platform.Reply(ctx, msg, h.deps.Formatter.Help()); err != nil {
		log.ErrorContext(ctx, "Failed to send help message", "error", err, "channel_id", msg.ChannelID)
		status = database.StatusDeliveryError
	} else {
		log.DebugContext(ctx, "Successfully sent help message", "channel_id", msg.ChannelID)
	}

	recordCommand(ctx, h.deps, msg, cmd, status, start)
}
