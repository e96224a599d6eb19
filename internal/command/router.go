package command

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/edgard/aibridge/internal/domain/model"
	errs "github.com/edgard/aibridge/internal/errors"
)

// Default prefixes used when a Router is built with empty values.
const (
	DefaultAIPrefix      = "!ai"
	DefaultCommandPrefix = "!"
)

// ErrMissingPrompt is returned for an AI prefix without any text after it.
var ErrMissingPrompt = errs.NewValidationError("missing prompt", nil)

// ErrMissingModelArgs is returned when ai_model lacks a model name or a prompt.
var ErrMissingModelArgs = errs.NewValidationError("ai_model requires a model name and a message", nil)

type rule struct {
	name  string
	kind  Kind
	parse func(args string) (Command, error)
}

// Router matches message text against the command grammar. It holds no
// mutable state and is safe for concurrent use.
type Router struct {
	aiPrefix  string
	cmdPrefix string
	rules     []rule
}

// NewRouter creates a Router. An empty aiPrefix falls back to DefaultAIPrefix;
// cmdPrefix is used as given so bare command names can be enabled.
func NewRouter(aiPrefix, cmdPrefix string) *Router {
	if aiPrefix == "" {
		aiPrefix = DefaultAIPrefix
	}

	return &Router{
		aiPrefix:  aiPrefix,
		cmdPrefix: cmdPrefix,
		rules: []rule{
			{name: "ping", kind: KindPing, parse: fixed(KindPing)},
			{name: "models", kind: KindListModels, parse: fixed(KindListModels)},
			{name: "help_ai", kind: KindHelp, parse: fixed(KindHelp)},
			{name: "ai_model", kind: KindModelChat, parse: parseModelChat},
		},
	}
}

// AIPrefix returns the prefix that starts a default chat.
func (r *Router) AIPrefix() string { return r.aiPrefix }

// CommandPrefix returns the prefix that starts a named command.
func (r *Router) CommandPrefix() string { return r.cmdPrefix }

// Route classifies msg. Messages from bots and messages that match no rule
// yield a Command of KindNone and a nil error. When a command is recognised
// but its arguments are unusable the returned Command still carries its Kind
// alongside a *errors.ValidationError.
func (r *Router) Route(msg model.InboundMessage) (Command, error) {
	if msg.IsBot {
		return Command{}, nil
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return Command{}, nil
	}

	// Named commands come first so that "!ai_model" never reaches the AI prefix.
	token, args := splitFirst(text)
	for _, rl := range r.rules {
		if token == r.cmdPrefix+rl.name {
			cmd, err := rl.parse(args)
			cmd.Kind = rl.kind
			return cmd, err
		}
	}

	if rest, ok := r.cutAIPrefix(text); ok {
		prompt := strings.TrimSpace(rest)
		if prompt == "" {
			return Command{Kind: KindDefaultChat}, ErrMissingPrompt
		}
		return Command{Kind: KindDefaultChat, Prompt: prompt}, nil
	}

	return Command{}, nil
}

// cutAIPrefix strips the AI prefix when it stands as a word of its own.
func (r *Router) cutAIPrefix(text string) (string, bool) {
	rest, ok := strings.CutPrefix(text, r.aiPrefix)
	if !ok {
		return "", false
	}
	if rest == "" {
		return "", true
	}
	next, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsSpace(next) {
		return "", false
	}
	return rest, true
}

func fixed(kind Kind) func(string) (Command, error) {
	return func(string) (Command, error) {
		return Command{Kind: kind}, nil
	}
}

func parseModelChat(args string) (Command, error) {
	modelName, prompt := splitFirst(args)
	prompt = strings.TrimSpace(prompt)
	if modelName == "" || prompt == "" {
		return Command{Model: modelName}, ErrMissingModelArgs
	}
	return Command{Model: modelName, Prompt: prompt}, nil
}

// splitFirst returns the first whitespace-delimited token of s and the
// remainder after it, with leading whitespace removed from both.
func splitFirst(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}
