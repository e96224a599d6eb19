// Package ai defines the port through which the bridge reaches AI completion
// backends.
package ai

import (
	"context"

	"github.com/edgard/aibridge/internal/domain/model"
)

// Gateway defines the operations the bridge needs from an AI backend.
// Implementations must be safe for concurrent use; failures are reported as
// *errors.GatewayError.
type Gateway interface {
	// Completion returns the generated text for messages. An empty model
	// selects the gateway's default.
	Completion(ctx context.Context, model string, messages []model.ChatMessage) (string, error)

	// ListModels returns the models offered by all configured providers.
	// An empty slice means no provider is configured.
	ListModels(ctx context.Context) ([]model.ModelInfo, error)
}
