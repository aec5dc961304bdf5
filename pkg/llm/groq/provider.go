package groq

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

// GroqProvider speaks the OpenAI-compatible Groq API.
type GroqProvider struct {
	apiKey   string
	baseURL  string
	models   []string
	priority int
	client   *http.Client
}

var _ llm.Provider = &GroqProvider{}

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
}

func NewGroqProvider(apiKey string, models []string, priority int) *GroqProvider {
	if len(models) == 0 {
		models = []string{"llama-3.1-8b-instant", "llama-3.3-70b-versatile"}
	}
	return &GroqProvider{
		apiKey:   apiKey,
		baseURL:  "https://api.groq.com/openai/v1",
		models:   models,
		priority: priority,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *GroqProvider) Descriptor() llm.Descriptor {
	return llm.Descriptor{
		Id:              "groq",
		Name:            "Groq",
		RequiresKey:     true,
		SupportedModels: p.models,
		DefaultModel:    p.models[0],
		Priority:        p.priority,
	}
}

func (p *GroqProvider) IsAvailable(ctx context.Context) bool {
	return p.apiKey != ""
}

func (p *GroqProvider) Generate(ctx context.Context, genReq *llm.GenerationRequest) (*llm.GenerationResponse, error) {
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
		return nil, llm.NewRequestError("groq", 0, err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, llm.NewRequestError("groq", resp.StatusCode, fmt.Errorf("body: %s", string(bodyBytes)))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return nil, llm.NewRequestError("groq", resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}

	if len(chatResp.Choices) == 0 {
		return nil, llm.NewRequestError("groq", resp.StatusCode, fmt.Errorf("empty choices"))
	}

	choice := chatResp.Choices[0]

	id := chatResp.Id
	if id == "" {
		id = uuid.NewString()
	}

	finish := llm.FinishStop
	switch choice.FinishReason {
	case "length":
		finish = llm.FinishLength
	case "content_filter":
		finish = llm.FinishContentFilter
	}

	return &llm.GenerationResponse{
		Id:       id,
		Content:  choice.Message.Content,
		Model:    chatResp.Model,
		Provider: "groq",
		Usage: llm.Usage{
			PromptTokens:     chatResp.Usage.PromptTokens,
			CompletionTokens: chatResp.Usage.CompletionTokens,
			TotalTokens:      chatResp.Usage.TotalTokens,
		},
		FinishReason:   finish,
		ProcessingTime: time.Since(start),
	}, nil
}
