package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/edgard/aibridge/internal/command"
	"github.com/edgard/aibridge/internal/database"
	"github.com/edgard/aibridge/internal/domain/model"
	errs "github.com/edgard/aibridge/internal/errors"
	"github.com/edgard/aibridge/internal/port/chat"
	"github.com/edgard/aibridge/internal/reply"
)

// Dispatcher routes inbound messages to the registered command handlers.
type Dispatcher struct {
	deps     HandlerDeps
	router   *command.Router
	handlers map[command.Kind]RegisteredHandler
}

// NewDispatcher creates a Dispatcher over the given handler registry.
func NewDispatcher(deps HandlerDeps, router *command.Router, handlers map[command.Kind]RegisteredHandler) *Dispatcher {
	return &Dispatcher{
		deps:     deps,
		router:   router,
		handlers: handlers,
	}
}

// Handle routes msg and runs the matching handler. Ignored messages return
// without any reply. A rejected command gets its usage hint and never
// reaches the gateway.
func (d *Dispatcher) Handle(ctx context.Context, msg model.InboundMessage) {
	cmd, err := d.router.Route(msg)
	if cmd.Kind == command.KindNone {
		return
	}

	log := d.deps.Logger.With("component", "dispatcher")

	if err != nil {
		var vErr *errs.ValidationError
		if !errors.As(err, &vErr) {
			log.ErrorContext(ctx, "Failed to route message", "error", err, "message_id", msg.ID)
			return
		}
		d.rejectCommand(ctx, msg, cmd, err)
		return
	}

	registered, ok := d.handlers[cmd.Kind]
	if !ok || registered.Handler == nil {
		log.WarnContext(ctx, "No handler registered for command", "command", cmd.Kind.String())
		return
	}

	log.InfoContext(ctx, "Handling command",
		"command", cmd.Kind.String(),
		"model", cmd.Model,
		"channel_id", msg.ChannelID,
		"user_id", msg.AuthorID)
	registered.Handler(ctx, msg, cmd)
}

func (d *Dispatcher) rejectCommand(ctx context.Context, msg model.InboundMessage, cmd command.Command, cause error) {
	log := d.deps.Logger.With("component", "dispatcher")
	start := time.Now()

	var usage reply.DisplayMessage
	switch cmd.Kind {
	case command.KindModelChat:
		usage = d.deps.Formatter.ModelUsage()
	default:
		usage = d.deps.Formatter.AIUsage()
	}

	log.InfoContext(ctx, "Rejected command", "command", cmd.Kind.String(), "reason", cause.Error(), "user_id", msg.AuthorID)

	status := database.StatusRejected
	if err := d.deps.Platform.Reply(ctx, msg, usage); err != nil {
		log.ErrorContext(ctx, "Failed to send usage hint", "error", err, "channel_id", msg.ChannelID)
		status = database.StatusDeliveryError
	}

	recordRequest(ctx, d.deps, &database.RequestRecord{
		UserID:    msg.AuthorID,
		Command:   cmd.Kind.String(),
		Model:     cmd.Model,
		Status:    status,
		LatencyMS: time.Since(start).Milliseconds(),
	})
}

// Handler returns the dispatcher wrapped in mws and the panic recovery
// middleware, ready to be given to the chat platform.
func (d *Dispatcher) Handler(mws ...chat.Middleware) chat.MessageHandler {
	return Chain(d.Handle, append([]chat.Middleware{Recover(d.deps.Logger)}, mws...)...)
}
