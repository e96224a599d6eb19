package handlers

import (
	"context"
	"time"

	"github.com/edgard/aibridge/internal/command"
	"github.com/edgard/aibridge/internal/database"
	"github.com/edgard/aibridge/internal/domain/model"
	"github.com/edgard/aibridge/internal/port/chat"
	"github.com/edgard/aibridge/internal/reply"
)

const dbSaveTimeout = 5 * time.Second

// sendAll delivers parts in order, each send completing before the next one
// starts. It stops at the first failure and reports how many parts were sent.
func sendAll(ctx context.Context, p chat.Platform, to model.InboundMessage, parts []reply.DisplayMessage) (int, error) {
	for i, part := range parts {
		if err := p.Reply(ctx, to, part); err != nil {
			return i, err
		}
	}
	return len(parts), nil
}

func recordCommand(ctx context.Context, deps HandlerDeps, msg model.InboundMessage, cmd command.Command, status string, start time.Time) {
	parts := 0
	if status == database.StatusOK || status == database.StatusGatewayError {
		parts = 1
	}
	recordRequest(ctx, deps, &database.RequestRecord{
		UserID:    msg.AuthorID,
		Command:   cmd.Kind.String(),
		Status:    status,
		Parts:     parts,
		LatencyMS: time.Since(start).Milliseconds(),
	})
}

// recordRequest writes a usage record. Failures are logged and never reach
// the user. The write outlives cancellation of ctx so requests finishing
// during shutdown are still counted.
func recordRequest(ctx context.Context, deps HandlerDeps, rec *database.RequestRecord) {
	if deps.Store == nil {
		return
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dbSaveTimeout)
	defer cancel()

	if err := deps.Store.RecordRequest(saveCtx, rec); err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to record request", "error", err, "command", rec.Command)
	}
}
