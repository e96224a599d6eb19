package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/edgard/aibridge/internal/command"
	"github.com/edgard/aibridge/internal/database"
	"github.com/edgard/aibridge/internal/domain/model"
	errs "github.com/edgard/aibridge/internal/errors"
	"github.com/edgard/aibridge/internal/port/chat"
	"github.com/edgard/aibridge/internal/reply"
)

func dispatch(f *fixture, text string) {
	router := command.NewRouter("!ai", "!")
	d := NewDispatcher(f.deps, router, RegisterAllCommands(f.deps))
	d.Handler()(context.Background(), inbound(text))
}

func TestDispatcherIgnoresUnmatchedMessages(t *testing.T) {
	t.Parallel()

	tests := []string{"", "   ", "hello there", "!aiming high", "!unknown"}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			t.Parallel()
			f := newFixture()
			dispatch(f, text)

			if got := f.platform.messages(); len(got) != 0 {
				t.Errorf("sent %d messages, want 0", len(got))
			}
			if got := f.gateway.callCount(); got != 0 {
				t.Errorf("gateway calls = %d, want 0", got)
			}
			if got := f.store.all(); len(got) != 0 {
				t.Errorf("records = %d, want 0", len(got))
			}
		})
	}
}

func TestDispatcherIgnoresBots(t *testing.T) {
	t.Parallel()

	f := newFixture()
	router := command.NewRouter("", "!")
	d := NewDispatcher(f.deps, router, RegisterAllCommands(f.deps))

	msg := inbound("!ai hello")
	msg.IsBot = true
	d.Handle(context.Background(), msg)

	if got := f.platform.messages(); len(got) != 0 {
		t.Errorf("sent %d messages, want 0", len(got))
	}
}

func TestDispatcherUsageHints(t *testing.T) {
	t.Parallel()

	formatter := reply.New(reply.Options{})
	tests := []struct {
		name    string
		text    string
		want    reply.DisplayMessage
		command string
	}{
		{name: "bare prefix", text: "!ai", want: formatter.AIUsage(), command: "ai"},
		{name: "prefix with spaces", text: "!ai    ", want: formatter.AIUsage(), command: "ai"},
		{name: "model without prompt", text: "!ai_model gpt-4o", want: formatter.ModelUsage(), command: "ai_model"},
		{name: "no arguments", text: "!ai_model", want: formatter.ModelUsage(), command: "ai_model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture()
			dispatch(f, tt.text)

			if diff := cmp.Diff([]reply.DisplayMessage{tt.want}, f.platform.messages()); diff != "" {
				t.Errorf("sent messages mismatch (-want +got):\n%s", diff)
			}
			if got := f.gateway.callCount(); got != 0 {
				t.Errorf("gateway calls = %d, want 0", got)
			}

			records := f.store.all()
			if len(records) != 1 {
				t.Fatalf("records = %d, want 1", len(records))
			}
			if records[0].Status != database.StatusRejected || records[0].Command != tt.command {
				t.Errorf("record = %+v, want status %q command %q", records[0], database.StatusRejected, tt.command)
			}
		})
	}
}

func TestChatSingleResponse(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.gateway.text = "Hi there!"
	dispatch(f, "!ai  hello world ")

	if f.gateway.lastName != "" {
		t.Errorf("model = %q, want default (empty)", f.gateway.lastName)
	}
	wantMsgs := []model.ChatMessage{{Role: model.RoleUser, Content: "hello world"}}
	if diff := cmp.Diff(wantMsgs, f.gateway.lastMsgs); diff != "" {
		t.Errorf("completion messages mismatch (-want +got):\n%s", diff)
	}

	want := []reply.DisplayMessage{{
		Title:      "🤖 AI Response",
		Body:       "Hi there!",
		Color:      reply.ColorResponse,
		Timestamp:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		FooterText: "Requested by alice",
		FooterIcon: "https://cdn.example/alice.png",
		PartIndex:  1,
		PartCount:  1,
	}}
	if diff := cmp.Diff(want, f.platform.messages()); diff != "" {
		t.Errorf("sent messages mismatch (-want +got):\n%s", diff)
	}

	if len(f.platform.typing) != 1 || f.platform.stopped != 1 {
		t.Errorf("typing started %d stopped %d, want 1 and 1", len(f.platform.typing), f.platform.stopped)
	}

	wantRecord := []database.RequestRecord{{UserID: "u1", Command: "ai", Status: database.StatusOK, Parts: 1}}
	if diff := cmp.Diff(wantRecord, f.store.all(), cmpopts.IgnoreFields(database.RequestRecord{}, "LatencyMS")); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestChatWithModel(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.gateway.text = "42"
	dispatch(f, "!ai_model gpt-4o what is the answer?")

	if f.gateway.lastName != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", f.gateway.lastName)
	}
	got := f.platform.messages()
	if len(got) != 1 {
		t.Fatalf("sent %d messages, want 1", len(got))
	}
	if got[0].Title != "🤖 gpt-4o Response" {
		t.Errorf("title = %q", got[0].Title)
	}
	if got[0].FooterText != "Requested by alice • Model: gpt-4o" {
		t.Errorf("footer = %q", got[0].FooterText)
	}
	if rec := f.store.all(); len(rec) != 1 || rec[0].Model != "gpt-4o" || rec[0].Command != "ai_model" {
		t.Errorf("records = %+v", rec)
	}
}

func TestChatMultiPartOrder(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.gateway.text = strings.Repeat("word ", 1000)
	dispatch(f, "!ai tell me a long story")

	got := f.platform.messages()
	if len(got) < 3 {
		t.Fatalf("sent %d messages, want at least 3", len(got))
	}
	for i, m := range got {
		if m.PartIndex != i+1 || m.PartCount != len(got) {
			t.Errorf("part %d: index %d count %d", i, m.PartIndex, m.PartCount)
		}
		if len([]rune(m.Body)) > reply.PlatformLimit-reply.ReservedMargin {
			t.Errorf("part %d body length %d exceeds limit", i, len([]rune(m.Body)))
		}
	}
	if got[0].Title != "🤖 AI Response" || got[1].Title != "🤖 AI Response (Part 2)" {
		t.Errorf("titles = %q, %q", got[0].Title, got[1].Title)
	}
	if rec := f.store.all(); len(rec) != 1 || rec[0].Parts != len(got) {
		t.Errorf("records = %+v, want parts %d", rec, len(got))
	}
}

func TestChatDeliveryFailureAbandonsRemainingParts(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.gateway.text = strings.Repeat("word ", 1000)
	f.platform.failAfter = 1
	dispatch(f, "!ai tell me a long story")

	if got := f.platform.messages(); len(got) != 1 {
		t.Errorf("sent %d messages, want 1", len(got))
	}
	rec := f.store.all()
	if len(rec) != 1 || rec[0].Status != database.StatusDeliveryError || rec[0].Parts != 1 {
		t.Errorf("records = %+v", rec)
	}
}

func TestChatGatewayFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		wantBody string
	}{
		{
			name:     "default model",
			text:     "!ai hello",
			wantBody: "Sorry, I encountered an error while processing your request. Please try again later.",
		},
		{
			name:     "explicit model",
			text:     "!ai_model nope-1 hello",
			wantBody: "Sorry, I encountered an error using model `nope-1`. Please check if the model name is correct or try a different model.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture()
			f.gateway.err = errs.NewGatewayError("openai", "completion failed", errors.New("secret upstream detail"))
			dispatch(f, tt.text)

			got := f.platform.messages()
			if len(got) != 1 {
				t.Fatalf("sent %d messages, want 1", len(got))
			}
			if got[0].Body != tt.wantBody || got[0].Color != reply.ColorError {
				t.Errorf("message = %+v", got[0])
			}
			if strings.Contains(got[0].Body, "secret") {
				t.Errorf("error body leaks upstream detail: %q", got[0].Body)
			}
			rec := f.store.all()
			if len(rec) != 1 || rec[0].Status != database.StatusGatewayError {
				t.Errorf("records = %+v", rec)
			}
		})
	}
}

func TestPing(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.platform.latency = 42 * time.Millisecond
	dispatch(f, "!ping")

	want := []reply.DisplayMessage{f.deps.Formatter.Pong(42 * time.Millisecond)}
	if diff := cmp.Diff(want, f.platform.messages()); diff != "" {
		t.Errorf("sent messages mismatch (-want +got):\n%s", diff)
	}
	if rec := f.store.all(); len(rec) != 1 || rec[0].Command != "ping" || rec[0].Status != database.StatusOK {
		t.Errorf("records = %+v", rec)
	}
}

func TestHelp(t *testing.T) {
	t.Parallel()

	f := newFixture()
	dispatch(f, "!help_ai")

	want := []reply.DisplayMessage{f.deps.Formatter.Help()}
	if diff := cmp.Diff(want, f.platform.messages()); diff != "" {
		t.Errorf("sent messages mismatch (-want +got):\n%s", diff)
	}
}

func TestModels(t *testing.T) {
	t.Parallel()

	catalogue := []model.ModelInfo{
		{ID: "gpt-4o", Provider: "openai", ContextLimit: 128000},
		{ID: "gemini-1.5-flash", Provider: "gemini", ContextLimit: 1048576},
	}
	formatter := reply.New(reply.Options{})

	tests := []struct {
		name       string
		models     []model.ModelInfo
		err        error
		want       reply.DisplayMessage
		wantStatus string
	}{
		{name: "listed", models: catalogue, want: formatter.Models(catalogue), wantStatus: database.StatusOK},
		{name: "empty", want: formatter.NoModels(), wantStatus: database.StatusOK},
		{
			name:       "failure",
			err:        errs.NewGatewayError("", "all providers failed", errors.New("boom")),
			want:       formatter.ModelsError(),
			wantStatus: database.StatusGatewayError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture()
			f.gateway.models = tt.models
			f.gateway.listErr = tt.err
			dispatch(f, "!models")

			if diff := cmp.Diff([]reply.DisplayMessage{tt.want}, f.platform.messages()); diff != "" {
				t.Errorf("sent messages mismatch (-want +got):\n%s", diff)
			}
			if rec := f.store.all(); len(rec) != 1 || rec[0].Status != tt.wantStatus {
				t.Errorf("records = %+v, want status %q", rec, tt.wantStatus)
			}
		})
	}
}

func TestRecordFailureDoesNotAffectReply(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.store.err = errs.NewDatabaseError("insert failed", errors.New("disk full"))
	dispatch(f, "!ping")

	if got := f.platform.messages(); len(got) != 1 {
		t.Errorf("sent %d messages, want 1", len(got))
	}
}

func TestNilStoreSkipsRecording(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.deps.Store = nil
	dispatch(f, "!help_ai")

	if got := f.platform.messages(); len(got) != 1 {
		t.Errorf("sent %d messages, want 1", len(got))
	}
}

func TestRecoverMiddleware(t *testing.T) {
	t.Parallel()

	f := newFixture()
	router := command.NewRouter("!ai", "!")
	handlers := RegisterAllCommands(f.deps)
	handlers[command.KindPing] = RegisteredHandler{
		Kind: command.KindPing,
		Handler: func(context.Context, model.InboundMessage, command.Command) {
			panic("boom")
		},
	}
	h := NewDispatcher(f.deps, router, handlers).Handler()

	h(context.Background(), inbound("!ping"))
	h(context.Background(), inbound("!help_ai"))

	if got := f.platform.messages(); len(got) != 1 {
		t.Errorf("sent %d messages after panic, want 1", len(got))
	}
}

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) chat.Middleware {
		return func(next chat.MessageHandler) chat.MessageHandler {
			return func(ctx context.Context, msg model.InboundMessage) {
				order = append(order, name)
				next(ctx, msg)
			}
		}
	}

	h := Chain(func(context.Context, model.InboundMessage) { order = append(order, "handler") },
		mw("outer"), mw("inner"))
	h(context.Background(), model.InboundMessage{})

	if diff := cmp.Diff([]string{"outer", "inner", "handler"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}
