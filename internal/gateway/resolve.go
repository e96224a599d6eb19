package gateway

import "strings"

// Provider names understood by the router.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

var openAIPrefixes = []string{"gpt-", "o1", "o3", "o4", "chatgpt-"}

// detectProvider guesses the provider that serves modelName. An explicit
// "provider/model" form wins; otherwise well known name prefixes decide and
// anything unrecognised is assumed to be a local Ollama model.
func detectProvider(modelName string) (provider, name string) {
	if prefix, rest, ok := strings.Cut(modelName, "/"); ok && rest != "" {
		switch prefix {
		case ProviderOpenAI, ProviderGemini, ProviderOllama:
			return prefix, rest
		}
	}

	lower := strings.ToLower(modelName)
	for _, p := range openAIPrefixes {
		if strings.HasPrefix(lower, p) {
			return ProviderOpenAI, modelName
		}
	}
	if strings.HasPrefix(lower, "gemini-") {
		return ProviderGemini, modelName
	}
	return ProviderOllama, modelName
}

// resolve picks the provider for modelName, falling back to the first
// configured provider when the preferred one is not available.
func (g *Gateway) resolve(modelName string) (guardedProvider, string) {
	provider, name := detectProvider(modelName)
	if i, ok := g.byName[provider]; ok {
		return g.providers[i], name
	}

	fallback := g.providers[0]
	g.log.Debug("Preferred provider not configured, using fallback",
		"model", modelName,
		"preferred", provider,
		"fallback", fallback.Name())
	return fallback, name
}
