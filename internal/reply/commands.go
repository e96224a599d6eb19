package reply

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/edgard/aibridge/internal/domain/model"
)

const (
	// MaxListedModels caps the number of models considered for the listing.
	MaxListedModels = 20
	// MaxModelsPerProvider caps the entries shown per provider field.
	MaxModelsPerProvider = 5
)

var providerTitle = cases.Title(language.Und)

// Models renders the model catalogue grouped by provider, in the order
// providers first appear. Only the first MaxListedModels models are used and
// each group shows at most MaxModelsPerProvider entries, followed by an
// ellipsis when it had more.
func (f *Formatter) Models(models []model.ModelInfo) DisplayMessage {
	if len(models) > MaxListedModels {
		models = models[:MaxListedModels]
	}

	var order []string
	groups := make(map[string][]string)
	for _, m := range models {
		provider := m.Provider
		if provider == "" {
			provider = "unknown"
		}
		if _, ok := groups[provider]; !ok {
			order = append(order, provider)
		}
		groups[provider] = append(groups[provider], modelEntry(m))
	}

	fields := make([]Field, 0, len(order))
	for _, provider := range order {
		entries := groups[provider]
		value := strings.Join(entries[:min(len(entries), MaxModelsPerProvider)], "\n")
		if len(entries) > MaxModelsPerProvider {
			value += "\n..."
		}
		fields = append(fields, Field{
			Name:   providerTitle.String(provider) + " Models",
			Value:  value,
			Inline: true,
		})
	}

	return DisplayMessage{
		Title:      "🤖 Available AI Models",
		Body:       "Models available across all configured providers:",
		Color:      ColorInfo,
		Fields:     fields,
		FooterText: fmt.Sprintf("Use %sai_model <model_name> <message> to use a specific model", f.opts.CommandPrefix),
		PartIndex:  1,
		PartCount:  1,
	}
}

func modelEntry(m model.ModelInfo) string {
	if m.ContextLimit <= 0 {
		return fmt.Sprintf("`%s` (N/A)", m.ID)
	}
	return fmt.Sprintf("`%s` (%s tokens)", m.ID, humanize.Comma(int64(m.ContextLimit)))
}

// Help renders the command reference.
func (f *Formatter) Help() DisplayMessage {
	ai, cmd := f.opts.AIPrefix, f.opts.CommandPrefix
	return DisplayMessage{
		Title: "🤖 AI Discord Bot Help",
		Body:  "This bot provides access to multiple AI models through a unified interface!",
		Color: ColorResponse,
		Fields: []Field{
			{
				Name:  "Basic Usage",
				Value: fmt.Sprintf("`%s <your message>`\nExample: `%s What is the weather like?`", ai, ai),
			},
			{
				Name: "Model Commands",
				Value: fmt.Sprintf("`%smodels` - List available AI models\n`%sai_model <model> <message>` - Use specific model\nExample: `%sai_model gpt-4 Explain quantum physics`",
					cmd, cmd, cmd),
			},
			{
				Name:  "Other Commands",
				Value: fmt.Sprintf("`%sping` - Check bot responsiveness\n`%shelp_ai` - Show this help message", cmd, cmd),
			},
		},
		FooterText: "Supports OpenAI, Gemini and Ollama providers",
		PartIndex:  1,
		PartCount:  1,
	}
}

// Pong renders the latency check reply.
func (f *Formatter) Pong(latency time.Duration) DisplayMessage {
	return DisplayMessage{
		Title:     "🏓 Pong!",
		Body:      fmt.Sprintf("Bot latency: %dms", latency.Round(time.Millisecond).Milliseconds()),
		Color:     ColorInfo,
		PartIndex: 1,
		PartCount: 1,
	}
}

// AIUsage is the hint sent when the AI prefix is used without a prompt.
func (f *Formatter) AIUsage() DisplayMessage {
	return Notice(fmt.Sprintf("Please provide a message for the AI. Example: `%s Hello, how are you?`", f.opts.AIPrefix))
}

// ModelUsage is the hint sent when ai_model is missing its arguments.
func (f *Formatter) ModelUsage() DisplayMessage {
	return Notice(fmt.Sprintf("Please provide a model name and a message. Example: `%sai_model gpt-4 Explain quantum physics`", f.opts.CommandPrefix))
}

// NoModels is sent when no provider reports any model.
func (f *Formatter) NoModels() DisplayMessage {
	return Notice(f.opts.NoModels)
}

// ModelsError is sent when the model catalogue could not be retrieved.
func (f *Formatter) ModelsError() DisplayMessage {
	return DisplayMessage{
		Title:     "❌ Error",
		Body:      f.opts.ModelsError,
		Color:     ColorError,
		PartIndex: 1,
		PartCount: 1,
	}
}
