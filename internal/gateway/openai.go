package gateway

import (
	"context"
	"fmt"
	"strings"

	gopenai "github.com/sashabaranov/go-openai"

	"github.com/edgard/aibridge/internal/domain/model"
	errs "github.com/edgard/aibridge/internal/errors"
)

// OpenAIProvider talks to any OpenAI compatible chat completion API. It
// serves both OpenAI itself and Ollama's /v1 endpoint.
type OpenAIProvider struct {
	name   string
	client *gopenai.Client
	limit  func(id string) int
}

// NewOpenAI creates the OpenAI provider. An empty baseURL uses the public API.
func NewOpenAI(apiKey, baseURL string) *OpenAIProvider {
	cfg := gopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	return &OpenAIProvider{
		name:   ProviderOpenAI,
		client: gopenai.NewClientWithConfig(cfg),
		limit:  openAIContextLimit,
	}
}

// NewOllama creates a provider for the Ollama server at host, for example
// http://localhost:11434.
func NewOllama(host string) *OpenAIProvider {
	cfg := gopenai.DefaultConfig("ollama")
	cfg.BaseURL = strings.TrimSuffix(host, "/") + "/v1"
	return &OpenAIProvider{
		name:   ProviderOllama,
		client: gopenai.NewClientWithConfig(cfg),
		limit:  func(string) int { return 0 },
	}
}

func (p *OpenAIProvider) Name() string {
	return p.name
}

func (p *OpenAIProvider) Complete(ctx context.Context, modelName string, messages []model.ChatMessage) (string, error) {
	req := gopenai.ChatCompletionRequest{
		Model:    modelName,
		Messages: make([]gopenai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, gopenai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errs.NewGatewayError(p.name, "no choices in completion response", nil)
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Models(ctx context.Context) ([]model.ModelInfo, error) {
	list, err := p.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	models := make([]model.ModelInfo, 0, len(list.Models))
	for _, m := range list.Models {
		models = append(models, model.ModelInfo{
			ID:           m.ID,
			Provider:     p.name,
			ContextLimit: p.limit(m.ID),
		})
	}
	return models, nil
}
