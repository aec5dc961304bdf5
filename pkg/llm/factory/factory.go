package factory

import (
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm/groq"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm/ollama"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm/openai"
)

// Config carries everything needed to construct the adapter set.
// Cloud vendors with an empty key are still constructed: the health registry
// demotes them and they recover automatically once a credential appears.
type Config struct {
	OpenAIKey    string
	OpenAIModels []string

	GroqKey    string
	GroqModels []string

	OllamaBaseURL string
	OllamaModels  []string
}

// Provider priorities, highest first. The synthetic fallback descriptor is
// owned by the registry and always sits below all of these.
const (
	PriorityOpenAI = 30
	PriorityGroq   = 20
	PriorityOllama = 10
)

// NewProviders builds the full adapter set in priority order.
func NewProviders(cfg Config) []llm.Provider {
	return []llm.Provider{
		openai.NewOpenAIProvider(cfg.OpenAIKey, "", cfg.OpenAIModels, PriorityOpenAI),
		groq.NewGroqProvider(cfg.GroqKey, cfg.GroqModels, PriorityGroq),
		ollama.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModels, PriorityOllama),
	}
}
