package handlers

import (
	"context"

	"github.com/edgard/aibridge/internal/command"
	"github.com/edgard/aibridge/internal/domain/model"
)

// CommandHandler handles one routed command.
type CommandHandler func(ctx context.Context, msg model.InboundMessage, cmd command.Command)

// RegisteredHandler binds a command kind to its handler.
type RegisteredHandler struct {
	Kind    command.Kind
	Handler CommandHandler
}

// RegisterAllCommands initializes and returns a map of all available commands.
func RegisterAllCommands(deps HandlerDeps) map[command.Kind]RegisteredHandler {
	handlers := make(map[command.Kind]RegisteredHandler)

	chat := NewChatHandler(deps)
	handlers[command.KindDefaultChat] = RegisteredHandler{
		Kind:    command.KindDefaultChat,
		Handler: chat,
	}
	handlers[command.KindModelChat] = RegisteredHandler{
		Kind:    command.KindModelChat,
		Handler: chat,
	}
	handlers[command.KindPing] = RegisteredHandler{
		Kind:    command.KindPing,
		Handler: NewPingHandler(deps),
	}
	handlers[command.KindListModels] = RegisteredHandler{
		Kind:    command.KindListModels,
		Handler: NewModelsHandler(deps),
	}
	handlers[command.KindHelp] = RegisteredHandler{
		Kind:    command.KindHelp,
		Handler: NewHelpHandler(deps),
	}

	return handlers
}
