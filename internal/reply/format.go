package reply

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/edgard/aibridge/internal/domain/model"
	"github.com/edgard/aibridge/internal/text"
)

// Format maps a completion result onto one or more display messages.
//
// A successful text that fits in sizeLimit becomes a single message. Longer
// text is chunked to sizeLimit-ReservedMargin and numbered; every part after the
// first carries a "(Part N)" suffix. A failure becomes a single error message
// whose body never includes the underlying error.
func (f *Formatter) Format(result model.CompletionResult, meta Meta, sizeLimit int) ([]DisplayMessage, error) {
	if !result.OK() {
		return []DisplayMessage{f.failure(meta)}, nil
	}

	body := result.Text
	if strings.TrimSpace(body) == "" {
		body = f.opts.EmptyResponse
	}

	title := baseTitle(meta)
	footer := footerText(meta)

	if utf8.RuneCountInString(body) <= sizeLimit {
		return []DisplayMessage{{
			Title:      title,
			Body:       body,
			Color:      ColorResponse,
			Timestamp:  meta.Timestamp,
			FooterText: footer,
			FooterIcon: meta.RequesterIcon,
			PartIndex:  1,
			PartCount:  1,
		}}, nil
	}

	chunks, err := text.Chunk(body, sizeLimit-ReservedMargin)
	if err != nil {
		return nil, fmt.Errorf("failed to chunk response: %w", err)
	}

	parts := chunks[:0]
	for _, c := range chunks {
		if strings.TrimSpace(c) != "" {
			parts = append(parts, c)
		}
	}

	msgs := make([]DisplayMessage, 0, len(parts))
	for i, c := range parts {
		partTitle := title
		if i > 0 {
			partTitle = fmt.Sprintf("%s (Part %d)", title, i+1)
		}
		msgs = append(msgs, DisplayMessage{
			Title:      partTitle,
			Body:       c,
			Color:      ColorResponse,
			Timestamp:  meta.Timestamp,
			FooterText: footer,
			FooterIcon: meta.RequesterIcon,
			PartIndex:  i + 1,
			PartCount:  len(parts),
		})
	}
	return msgs, nil
}

func (f *Formatter) failure(meta Meta) DisplayMessage {
	body := f.opts.GeneralError
	if meta.Model != "" {
		body = fmt.Sprintf(f.opts.ModelError, displayModel(meta.Model))
	}
	return DisplayMessage{
		Title:     "❌ Error",
		Body:      body,
		Color:     ColorError,
		Timestamp: meta.Timestamp,
		PartIndex: 1,
		PartCount: 1,
	}
}

func baseTitle(meta Meta) string {
	if meta.Model != "" {
		return fmt.Sprintf("🤖 %s Response", displayModel(meta.Model))
	}
	return "🤖 AI Response"
}

func footerText(meta Meta) string {
	footer := "Requested by " + meta.RequesterName
	if meta.Model != "" {
		footer += " • Model: " + displayModel(meta.Model)
	}
	return footer
}

// displayModel shortens a user supplied model name so titles stay within the
// platform's embed title limit.
func displayModel(name string) string {
	if utf8.RuneCountInString(name) <= MaxModelNameLength {
		return name
	}
	runes := []rune(name)
	return string(runes[:MaxModelNameLength-1]) + "…"
}
