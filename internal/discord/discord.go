// Package discord connects the bridge to Discord through a discordgo session.
// It converts gateway events into inbound messages and display messages into
// Discord replies.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/aibridge/internal/domain/model"
	errs "github.com/edgard/aibridge/internal/errors"
	"github.com/edgard/aibridge/internal/port/chat"
)

// Session is the subset of *discordgo.Session the adapter relies on.
type Session interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelTyping(channelID string, options ...discordgo.RequestOption) error
	HeartbeatLatency() time.Duration
	UpdateWatchStatus(idle int, name string) error
}

// Config holds adapter settings.
type Config struct {
	Token          string
	TypingInterval time.Duration
	PresenceText   string
	// ShutdownGrace is how long Run waits for in-flight messages after its
	// context is done before cancelling them.
	ShutdownGrace time.Duration
}

// DefaultShutdownGrace is used when Config.ShutdownGrace is not set.
const DefaultShutdownGrace = 30 * time.Second

// Adapter implements chat.Platform for Discord.
type Adapter struct {
	session Session
	cfg     Config
	log     *slog.Logger

	handler chat.MessageHandler

	mu      sync.Mutex
	runCtx  context.Context
	closing bool
	// inflight tracks message handlers so Run returns only after they finish.
	inflight sync.WaitGroup
}

// New opens nothing yet; it prepares a bot session with the intents needed to
// read message content in guilds and direct messages.
func New(cfg Config, log *slog.Logger) (*Adapter, error) {
	if cfg.Token == "" {
		return nil, errs.NewConfigError("discord token is required", nil)
	}

	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, errs.NewAdapterError("failed to create discord session", err)
	}
	s.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent

	return NewWithSession(s, cfg, log), nil
}

// NewWithSession creates an adapter over an existing session.
func NewWithSession(s Session, cfg Config, log *slog.Logger) *Adapter {
	if cfg.TypingInterval <= 0 {
		cfg.TypingInterval = 5 * time.Second
	}
	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = DefaultShutdownGrace
	}
	return &Adapter{
		session: s,
		cfg:     cfg,
		log:     log.With("component", "discord"),
		runCtx:  context.Background(),
	}
}

// OnMessage sets the function called for each inbound message. It must be
// called before Run.
func (a *Adapter) OnMessage(h chat.MessageHandler) {
	a.handler = h
}

// Run connects to Discord and blocks until ctx is cancelled. Once ctx is done
// no new messages are accepted, and messages already being handled get up to
// ShutdownGrace to finish and deliver their replies. Handler contexts carry
// the values of ctx but are cancelled only when that grace runs out.
func (a *Adapter) Run(ctx context.Context) error {
	handlerCtx, cancelHandlers := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelHandlers()

	a.mu.Lock()
	a.runCtx = handlerCtx
	a.closing = false
	a.mu.Unlock()

	removeMessage := a.session.AddHandler(a.onMessageCreate)
	removeReady := a.session.AddHandler(a.onReady)
	defer removeMessage()
	defer removeReady()

	a.log.InfoContext(ctx, "Connecting to Discord...")
	if err := a.session.Open(); err != nil {
		return errs.NewAdapterError("failed to open discord session", err)
	}

	<-ctx.Done()
	a.log.Info("Disconnecting from Discord...")

	a.mu.Lock()
	a.closing = true
	a.mu.Unlock()
	a.drain(cancelHandlers)

	if err := a.session.Close(); err != nil {
		return errs.NewAdapterError("failed to close discord session", err)
	}
	a.log.Info("Discord session closed")
	return nil
}

// drain waits for in-flight handlers, cancelling them when the grace period
// expires.
func (a *Adapter) drain(cancelHandlers context.CancelFunc) {
	done := make(chan struct{})
	go func() {
		a.inflight.Wait()
		close(done)
	}()

	grace := time.NewTimer(a.cfg.ShutdownGrace)
	defer grace.Stop()

	select {
	case <-done:
	case <-grace.C:
		a.log.Warn("In-flight messages did not finish in time, cancelling them", "grace", a.cfg.ShutdownGrace)
		cancelHandlers()
		<-done
	}
}

func (a *Adapter) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	user := ""
	if r != nil && r.User != nil {
		user = r.User.Username
	}
	a.log.Info("Bot is ready", "user", user)

	if a.cfg.PresenceText == "" {
		return
	}
	if err := a.session.UpdateWatchStatus(0, a.cfg.PresenceText); err != nil {
		a.log.Warn("Failed to update presence", "error", err)
	}
}

func (a *Adapter) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m == nil || m.Message == nil || m.Author == nil || m.Author.Bot {
		return
	}
	if a.handler == nil {
		return
	}

	a.mu.Lock()
	if a.closing {
		a.mu.Unlock()
		return
	}
	ctx := a.runCtx
	a.inflight.Add(1)
	a.mu.Unlock()
	defer a.inflight.Done()

	a.handler(ctx, toInbound(m.Message))
}

// Latency returns the last heartbeat round trip.
func (a *Adapter) Latency() time.Duration {
	return a.session.HeartbeatLatency()
}

func toInbound(m *discordgo.Message) model.InboundMessage {
	return model.InboundMessage{
		ID:              m.ID,
		ChannelID:       m.ChannelID,
		GuildID:         m.GuildID,
		AuthorID:        m.Author.ID,
		AuthorName:      displayName(m),
		AuthorAvatarURL: m.Author.AvatarURL(""),
		IsBot:           m.Author.Bot,
		Text:            m.Content,
		CreatedAt:       m.Timestamp,
	}
}

// displayName prefers the guild nickname, then the global display name.
func displayName(m *discordgo.Message) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	if m.Author.GlobalName != "" {
		return m.Author.GlobalName
	}
	return m.Author.Username
}

// String is used in startup logs.
func (a *Adapter) String() string {
	return fmt.Sprintf("discord(typing_interval=%s)", a.cfg.TypingInterval)
}
