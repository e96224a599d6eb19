package gateway

import "strings"

// Context windows of common OpenAI models. The OpenAI models endpoint does not
// report them; entries are matched by longest prefix.
var openAIContextLimits = map[string]int{
	"gpt-4.1":       1047576,
	"gpt-4o":        128000,
	"gpt-4-turbo":   128000,
	"gpt-4-32k":     32768,
	"gpt-4":         8192,
	"gpt-3.5-turbo": 16385,
	"chatgpt-4o":    128000,
	"o1":            200000,
	"o3":            200000,
	"o4-mini":       200000,
}

func openAIContextLimit(id string) int {
	best, limit := 0, 0
	for prefix, l := range openAIContextLimits {
		if strings.HasPrefix(id, prefix) && len(prefix) > best {
			best, limit = len(prefix), l
		}
	}
	return limit
}
