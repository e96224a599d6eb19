// Package handlers contains the bridge command handlers, the dispatcher that
// routes inbound messages to them, and their middleware.
package handlers

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/edgard/aibridge/internal/domain/model"
	"github.com/edgard/aibridge/internal/port/chat"
)

// Recover creates a middleware that turns a panicking handler into a logged
// error so later messages are unaffected.
func Recover(log *slog.Logger) chat.Middleware {
	return func(next chat.MessageHandler) chat.MessageHandler {
		return func(ctx context.Context, msg model.InboundMessage) {
			defer func() {
				if r := recover(); r != nil {
					log.With("middleware", "Recover").ErrorContext(ctx, "Recovered from panic in message handler",
						"panic", r,
						"message_id", msg.ID,
						"channel_id", msg.ChannelID,
						"stack", string(debug.Stack()))
				}
			}()
			next(ctx, msg)
		}
	}
}

// Chain applies middleware so that the first one listed runs outermost.
func Chain(h chat.MessageHandler, mws ...chat.Middleware) chat.MessageHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
