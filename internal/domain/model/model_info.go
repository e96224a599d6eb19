package model

// ModelInfo describes a model offered by one of the configured providers.
// ContextLimit is zero when the provider does not report it.
type ModelInfo struct {
	ID           string
	Provider     string
	ContextLimit int
}
