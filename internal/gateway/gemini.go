package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/edgard/aibridge/internal/domain/model"
	errs "github.com/edgard/aibridge/internal/errors"
)

// GeminiProvider talks to the Gemini API through the genai SDK.
type GeminiProvider struct {
	client *genai.Client
}

// NewGemini creates the Gemini provider. baseURL is only set in tests.
func NewGemini(ctx context.Context, apiKey, baseURL string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errs.NewConfigError("gemini API key is required", nil)
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

func (p *GeminiProvider) Name() string {
	return ProviderGemini
}

func (p *GeminiProvider) Complete(ctx context.Context, modelName string, messages []model.ChatMessage) (string, error) {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := genai.RoleUser
		if m.Role != model.RoleUser {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}

	resp, err := p.client.Models.GenerateContent(ctx, modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errs.NewGatewayError(ProviderGemini, "no candidates in response", nil)
	}

	return resp.Text(), nil
}

func (p *GeminiProvider) Models(ctx context.Context) ([]model.ModelInfo, error) {
	var models []model.ModelInfo

	page, err := p.client.Models.List(ctx, &genai.ListModelsConfig{})
	for {
		if errors.Is(err, genai.ErrPageDone) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		for _, m := range page.Items {
			if m == nil {
				continue
			}
			models = append(models, model.ModelInfo{
				ID:           strings.TrimPrefix(m.Name, "models/"),
				Provider:     ProviderGemini,
				ContextLimit: int(m.InputTokenLimit),
			})
		}
		if page.NextPageToken == "" {
			break
		}
		page, err = page.Next(ctx)
	}

	return models, nil
}
