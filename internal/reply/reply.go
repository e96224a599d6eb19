// Package reply turns completion results and command outcomes into structured
// display messages ready to be handed to the chat platform.
package reply

import (
	"time"
)

// Embed colors used by the bridge.
const (
	ColorResponse = 0x7289DA
	ColorError    = 0xFF0000
	ColorInfo     = 0x00FF00
)

const (
	// PlatformLimit is the hard cap on a single chat message.
	PlatformLimit = 2000
	// ReservedMargin is kept free inside PlatformLimit for title and footer overhead.
	ReservedMargin = 100
	// MaxModelNameLength caps model names shown in titles and footers. Embed
	// titles are limited to 256 characters.
	MaxModelNameLength = 100
)

// Field is a named block inside a display message.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// DisplayMessage is one structured unit sent to the chat platform.
// A message without title and fields is a plain-text notice.
type DisplayMessage struct {
	Title      string
	Body       string
	Color      int
	Timestamp  time.Time
	FooterText string
	FooterIcon string
	Fields     []Field

	PartIndex int
	PartCount int
}

// IsNotice reports whether the message should be delivered as plain text.
func (m DisplayMessage) IsNotice() bool {
	return m.Title == "" && len(m.Fields) == 0
}

// Meta describes the request a response belongs to.
type Meta struct {
	RequesterName string
	RequesterIcon string
	// Model is set only when the user picked the model explicitly.
	Model     string
	Timestamp time.Time
}

// Options configures the user-facing texts of a Formatter.
type Options struct {
	AIPrefix      string
	CommandPrefix string

	GeneralError  string
	ModelError    string // formatted with the model name
	EmptyResponse string
	NoModels      string
	ModelsError   string
}

// Formatter builds display messages. It holds no per-request state and is safe
// for concurrent use.
type Formatter struct {
	opts Options
}

// New creates a Formatter, filling unset texts with defaults.
func New(opts Options) *Formatter {
	if opts.AIPrefix == "" {
		opts.AIPrefix = "!ai"
	}
	if opts.GeneralError == "" {
		opts.GeneralError = "Sorry, I encountered an error while processing your request. Please try again later."
	}
	if opts.ModelError == "" {
		opts.ModelError = "Sorry, I encountered an error using model `%s`. Please check if the model name is correct or try a different model."
	}
	if opts.EmptyResponse == "" {
		opts.EmptyResponse = "The model returned an empty response. Try rephrasing your message."
	}
	if opts.NoModels == "" {
		opts.NoModels = "No models available. Please check your API keys."
	}
	if opts.ModelsError == "" {
		opts.ModelsError = "Sorry, I couldn't retrieve the model list. Please try again later."
	}
	return &Formatter{opts: opts}
}

// Notice wraps plain text, such as a usage hint, into a display message.
func Notice(text string) DisplayMessage {
	return DisplayMessage{Body: text, PartIndex: 1, PartCount: 1}
}
