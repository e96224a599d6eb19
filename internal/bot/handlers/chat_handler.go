package handlers

import (
	"context"
	"time"

	"github.com/edgard/aibridge/internal/command"
	"github.com/edgard/aibridge/internal/database"
	"github.com/edgard/aibridge/internal/domain/model"
	"github.com/edgard/aibridge/internal/reply"
)

// NewChatHandler returns the handler for the default and model-specific chat
// commands.
func NewChatHandler(deps HandlerDeps) CommandHandler {
	return chatHandler{deps}.Handle
}

// chatHandler processes chat commands using injected dependencies.
type chatHandler struct {
	deps HandlerDeps
}

func (h chatHandler) Handle(ctx context.Context, msg model.InboundMessage, cmd command.Command) {
	log := h.deps.Logger.With("handler", "chat", "command", cmd.Kind.String())
	start := time.Now()

	req := model.NewUserRequest(cmd.Model, cmd.Prompt)

	stopTyping := h.deps.Platform.StartTyping(ctx, msg.ChannelID)
	text, err := h.deps.Gateway.Completion(ctx, req.Model, req.Messages)
	stopTyping()

	result := model.Success(text)
	status := database.StatusOK
	if err != nil {
		log.ErrorContext(ctx, "Failed to get completion", "error", err, "model", cmd.Model, "channel_id", msg.ChannelID)
		result = model.Failure(err)
		status = database.StatusGatewayError
	}

	parts, err := h.deps.Formatter.Format(result, reply.Meta{
		RequesterName: msg.AuthorName,
		RequesterIcon: msg.AuthorAvatarURL,
		Model:         cmd.Model,
		Timestamp:     msg.CreatedAt,
	}, reply.PlatformLimit)
	if err != nil {
		log.ErrorContext(ctx, "Failed to format response", "error", err)
		return
	}

	sent, err := sendAll(ctx, h.deps.Platform, msg, parts)
	if err != nil {
		log.ErrorContext(ctx, "Failed to deliver response", "error", err, "sent", sent, "parts", len(parts))
		status = database.StatusDeliveryError
	} else {
		log.DebugContext(ctx, "Delivered response", "parts", len(parts))
	}

	recordRequest(ctx, h.deps, &database.RequestRecord{
		UserID:    msg.AuthorID,
		Command:   cmd.Kind.String(),
		Model:     cmd.Model,
		Status:    status,
		Parts:     sent,
		LatencyMS: time.Since(start).Milliseconds(),
	})
}
