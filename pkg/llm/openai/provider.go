package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm"

	"github.com/google/uuid"
)

type OpenAIProvider struct {
	apiKey   string
	baseURL  string
	models   []string
	priority int
	client   *http.Client
}

var _ llm.Provider = &OpenAIProvider{}

// Request Payload Structure
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
}

type chatResponse struct {
	Id      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewOpenAIProvider(apiKey, baseURL string, models []string, priority int) *OpenAIProvider {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if len(models) == 0 {
		models = []string{"gpt-4o-mini", "gpt-4o"}
	}
	return &OpenAIProvider{
		apiKey:   apiKey,
		baseURL:  baseURL,
		models:   models,
		priority: priority,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *OpenAIProvider) Descriptor() llm.Descriptor {
	return llm.Descriptor{
		Id:              "openai",
		Name:            "OpenAI",
		RequiresKey:     true,
		SupportedModels: p.models,
		DefaultModel:    p.models[0],
		Priority:        p.priority,
	}
}

// IsAvailable for a key-gated vendor means "credential present".
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	return p.apiKey != ""
}

func (p *OpenAIProvider) Generate(ctx context.Context, genReq *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	if p.apiKey == "" {
		return nil, llm.ErrProviderUnavailable
	}

	start := time.Now()

	model := genReq.Model
	if model == "" {
		model = p.models[0]
	}

	reqBody := chatRequest{
		Model:       model,
		Messages:    genReq.Messages,
		Temperature: genReq.Temperature,
		MaxTokens:   genReq.MaxTokens,
		TopP:        genReq.TopP,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, llm.NewRequestError("openai", 0, err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, llm.NewRequestError("openai", resp.StatusCode, fmt.Errorf("body: %s", string(bodyBytes)))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return nil, llm.NewRequestError("openai", resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}

	if chatResp.Error != nil {
		return nil, llm.NewRequestError("openai", resp.StatusCode, fmt.Errorf("api error: %s", chatResp.Error.Message))
	}

	if len(chatResp.Choices) == 0 {
		return nil, llm.NewRequestError("openai", resp.StatusCode, fmt.Errorf("empty choices"))
	}

	choice := chatResp.Choices[0]

	id := chatResp.Id
	if id == "" {
		id = uuid.NewString()
	}

	return &llm.GenerationResponse{
		Id:       id,
		Content:  choice.Message.Content,
		Model:    chatResp.Model,
		Provider: "openai",
		Usage: llm.Usage{
			PromptTokens:     chatResp.Usage.PromptTokens,
			CompletionTokens: chatResp.Usage.CompletionTokens,
			TotalTokens:      chatResp.Usage.TotalTokens,
		},
		FinishReason:   normalizeFinishReason(choice.FinishReason),
		ProcessingTime: time.Since(start),
	}, nil
}

func normalizeFinishReason(reason string) string {
	switch reason {
	case "length":
		return llm.FinishLength
	case "content_filter":
		return llm.FinishContentFilter
	default:
		return llm.FinishStop
	}
}
