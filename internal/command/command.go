// Package command classifies inbound chat messages into bridge commands.
package command

// Kind identifies which command a message maps to.
type Kind int

const (
	// KindNone marks a message the bridge ignores.
	KindNone Kind = iota
	KindDefaultChat
	KindPing
	KindListModels
	KindModelChat
	KindHelp
)

func (k Kind) String() string {
	switch k {
	case KindDefaultChat:
		return "ai"
	case KindPing:
		return "ping"
	case KindListModels:
		return "models"
	case KindModelChat:
		return "ai_model"
	case KindHelp:
		return "help_ai"
	default:
		return "none"
	}
}

// Command is the routed form of a message. Model is set only for
// KindModelChat; Prompt only for the two chat kinds.
type Command struct {
	Kind   Kind
	Model  string
	Prompt string
}
