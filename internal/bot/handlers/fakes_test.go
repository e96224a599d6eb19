package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/edgard/aibridge/internal/database"
	"github.com/edgard/aibridge/internal/domain/model"
	errs "github.com/edgard/aibridge/internal/errors"
	"github.com/edgard/aibridge/internal/reply"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeGateway struct {
	mu       sync.Mutex
	text     string
	err      error
	models   []model.ModelInfo
	listErr  error
	calls    int
	lastName string
	lastMsgs []model.ChatMessage
}

func (g *fakeGateway) Completion(_ context.Context, modelName string, messages []model.ChatMessage) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.lastName = modelName
	g.lastMsgs = messages
	return g.text, g.err
}

func (g *fakeGateway) ListModels(context.Context) ([]model.ModelInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.models, g.listErr
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type fakePlatform struct {
	mu        sync.Mutex
	sent      []reply.DisplayMessage
	failAfter int // sends beyond this count fail; negative means never
	typing    []string
	stopped   int
	latency   time.Duration
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{failAfter: -1}
}

func (p *fakePlatform) Reply(_ context.Context, _ model.InboundMessage, msg reply.DisplayMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failAfter >= 0 && len(p.sent) >= p.failAfter {
		return errs.NewAdapterError("failed to send message", errors.New("HTTP 403 Forbidden"))
	}
	p.sent = append(p.sent, msg)
	return nil
}

func (p *fakePlatform) StartTyping(_ context.Context, channelID string) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.typing = append(p.typing, channelID)
	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.stopped++
		})
	}
}

func (p *fakePlatform) Latency() time.Duration { return p.latency }

func (p *fakePlatform) messages() []reply.DisplayMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]reply.DisplayMessage(nil), p.sent...)
}

type fakeStore struct {
	mu      sync.Mutex
	records []database.RequestRecord
	err     error
}

func (s *fakeStore) Ping(context.Context) error { return nil }

func (s *fakeStore) RecordRequest(_ context.Context, rec *database.RequestRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, *rec)
	return nil
}

func (s *fakeStore) UsageSince(context.Context, time.Time) ([]database.UsageSummary, error) {
	return nil, nil
}

func (s *fakeStore) PruneRequests(context.Context, time.Time) (int64, error) { return 0, nil }

func (s *fakeStore) RunSQLMaintenance(context.Context) error { return nil }

func (s *fakeStore) all() []database.RequestRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]database.RequestRecord(nil), s.records...)
}

type fixture struct {
	gateway  *fakeGateway
	platform *fakePlatform
	store    *fakeStore
	deps     HandlerDeps
}

func newFixture() *fixture {
	f := &fixture{
		gateway:  &fakeGateway{},
		platform: newFakePlatform(),
		store:    &fakeStore{},
	}
	f.deps = HandlerDeps{
		Logger:    discardLogger(),
		Store:     f.store,
		Gateway:   f.gateway,
		Platform:  f.platform,
		Formatter: reply.New(reply.Options{}),
	}
	return f
}

func inbound(text string) model.InboundMessage {
	return model.InboundMessage{
		ID:              "m1",
		ChannelID:       "c1",
		GuildID:         "g1",
		AuthorID:        "u1",
		AuthorName:      "alice",
		AuthorAvatarURL: "https://cdn.example/alice.png",
		Text:            text,
		CreatedAt:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}
