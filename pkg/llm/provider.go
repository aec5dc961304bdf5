package llm

import (
	"context"
	"time"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Finish reasons normalized across vendors
const (
	FinishStop          = "stop"
	FinishLength        = "length"
	FinishContentFilter = "content_filter"
)

// GenerationRequest is the provider-agnostic completion request
type GenerationRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// Usage carries token accounting reported by the vendor
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerationResponse is the normalized reply every adapter produces
type GenerationResponse struct {
	Id             string        `json:"id"`
	Content        string        `json:"content"`
	Model          string        `json:"model"`
	Provider       string        `json:"provider"`
	Usage          Usage         `json:"usage"`
	FinishReason   string        `json:"finish_reason"`
	ProcessingTime time.Duration `json:"processing_time"`
}

// Descriptor describes one backend for the health registry
type Descriptor struct {
	Id              string   `json:"id"`
	Name            string   `json:"name"`
	RequiresKey     bool     `json:"requires_key"`
	SupportedModels []string `json:"supported_models"`
	DefaultModel    string   `json:"default_model"`
	Priority        int      `json:"priority"`
	Available       bool     `json:"available"`
}

// Supports reports whether the descriptor offers the given model.
func (d Descriptor) Supports(model string) bool {
	for _, m := range d.SupportedModels {
		if m == model {
			return true
		}
	}
	return false
}

// Provider defines the contract for any LLM backend.
// Generate translates the generic request into the vendor wire format and
// normalizes the reply; the vendor JSON contract never leaks out of the adapter.
type Provider interface {
	// Generate sends the request to the backend and returns the normalized response
	Generate(ctx context.Context, req *GenerationRequest) (*GenerationResponse, error)

	// Descriptor returns the static description of this backend
	Descriptor() Descriptor

	// IsAvailable is a cheap reachability probe: key presence for cloud vendors,
	// an HTTP health check for local backends
	IsAvailable(ctx context.Context) bool
}
