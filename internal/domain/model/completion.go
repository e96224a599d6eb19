package model

// RoleUser is the only role this bridge sends; every request is single-turn.
const RoleUser = "user"

// ChatMessage is one entry of a completion request.
type ChatMessage struct {
	Role    string
	Content string
}

// CompletionRequest contains everything needed to ask the gateway for a completion.
type CompletionRequest struct {
	Model    string
	Messages []ChatMessage
}

// NewUserRequest builds a single-turn request carrying prompt as the user message.
func NewUserRequest(modelName, prompt string) CompletionRequest {
	return CompletionRequest{
		Model:    modelName,
		Messages: []ChatMessage{{Role: RoleUser, Content: prompt}},
	}
}

// CompletionResult is either a successful completion text or the failure that
// prevented one. Exactly one of the two is meaningful; use OK to tell them apart.
type CompletionResult struct {
	Text string
	Err  error
}

// Success wraps a completion text.
func Success(text string) CompletionResult {
	return CompletionResult{Text: text}
}

// Failure wraps a gateway error. A nil err is not a valid failure.
func Failure(err error) CompletionResult {
	return CompletionResult{Err: err}
}

// OK reports whether the result holds a completion text.
func (r CompletionResult) OK() bool {
	return r.Err == nil
}
