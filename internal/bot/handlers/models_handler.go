package handlers

import (
	"context"
	"time"

	"github.com/edgard/aibridge/internal/command"
	"github.com/edgard/aibridge/internal/database"
	"github.com/edgard/aibridge/internal/domain/model"
	"github.com/edgard/aibridge/internal/reply"
)

// NewModelsHandler returns a handler for the models command. The catalogue
// is fetched from the gateway on every call.
func NewModelsHandler(deps HandlerDeps) CommandHandler {
	return modelsHandler{deps}.Handle
}

// modelsHandler processes the models command using injected dependencies.
type modelsHandler struct {
	deps HandlerDeps
}

func (h modelsHandler) Handle(ctx context.Context, msg model.InboundMessage, cmd command.Command) {
	log := h.deps.Logger.With("handler", "models")
	start := time.Now()

	status := database.StatusOK
	var out reply.DisplayMessage

	models, err := h.deps.Gateway.ListModels(ctx)
	switch {
	case err != nil:
		log.ErrorContext(ctx, "Failed to list models", "error", err)
		status = database.StatusGatewayError
		out = h.deps.Formatter.ModelsError()
	case len(models) == 0:
		log.InfoContext(ctx, "No models available")
		out = h.deps.Formatter.NoModels()
	default:
		out = h.deps.Formatter.Models(models)
	}

	if err := h.deps.Platform.Reply(ctx, msg, out); err != nil {
		log.ErrorContext(ctx, "Failed to send model list", "error", err, "channel_id", msg.ChannelID)
		status = database.StatusDeliveryError
	}

	recordCommand(ctx, h.deps, msg, cmd, status, start)
}
