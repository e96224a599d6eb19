// Package chat defines the port through which the bridge talks back to the
// chat platform.
package chat

import (
	"context"
	"time"

	"github.com/edgard/aibridge/internal/domain/model"
	"github.com/edgard/aibridge/internal/reply"
)

// Platform defines the outbound operations on the chat platform.
type Platform interface {
	// Reply sends msg in the channel of the inbound message, referencing it.
	// Failures are reported as *errors.AdapterError.
	Reply(ctx context.Context, to model.InboundMessage, msg reply.DisplayMessage) error

	// StartTyping shows a typing indicator in channelID until the returned
	// stop function is called or ctx is done. stop is idempotent.
	StartTyping(ctx context.Context, channelID string) (stop func())

	// Latency returns the most recent heartbeat round trip.
	Latency() time.Duration
}

// MessageHandler processes one inbound message. Implementations report their
// own failures; nothing is returned to the platform.
type MessageHandler func(ctx context.Context, msg model.InboundMessage)

// Middleware wraps a MessageHandler.
type Middleware func(next MessageHandler) MessageHandler
