package ollama

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

// OllamaProvider talks to a locally hosted Ollama backend.
type OllamaProvider struct {
	BaseURL  string
	Models   []string
	Priority int
	Client   *http.Client
}

// Ensure OllamaProvider implements llm.Provider
var _ llm.Provider = &OllamaProvider{}

func NewOllamaProvider(baseURL string, models []string, priority int) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434" // Default
	}
	if len(models) == 0 {
		models = []string{"llama3"}
	}
	return &OllamaProvider{
		BaseURL:  baseURL,
		Models:   models,
		Priority: priority,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
}

type ollamaChatResponse struct {
	Model           string        `json:"model"`
	Message         ollamaMessage `json:"message"`
	Done            bool          `json:"done"`
	DoneReason      string        `json:"done_reason"`
	PromptEvalCount int           `json:"prompt_eval_count"`
	EvalCount       int           `json:"eval_count"`
}

// --- Interface Implementation ---

func (o *OllamaProvider) Descriptor() llm.Descriptor {
	return llm.Descriptor{
		Id:              "ollama",
		Name:            "Ollama (local)",
		RequiresKey:     false,
		SupportedModels: o.Models,
		DefaultModel:    o.Models[0],
		Priority:        o.Priority,
	}
}

// IsAvailable checks the local backend over its tag listing endpoint.
func (o *OllamaProvider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	res, err := o.Client.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)
	return res.StatusCode == http.StatusOK
}

func (o *OllamaProvider) Generate(ctx context.Context, genReq *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	start := time.Now()

	// 1. Map generic messages to Ollama messages
	ollamaMessages := make([]ollamaMessage, len(genReq.Messages))
	for i, msg := range genReq.Messages {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		ollamaMessages[i] = ollamaMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	// 2. Prepare Payload
	model := genReq.Model
	if model == "" {
		model = o.Models[0]
	}

	reqPayload := ollamaChatRequest{
		Model:    model,
		Messages: ollamaMessages,
		Stream:   false,
		Options: &ollamaOptions{
			Temperature: genReq.Temperature,
			TopP:        genReq.TopP,
		},
	}
	if genReq.MaxTokens > 0 {
		reqPayload.Options.NumPredict = genReq.MaxTokens
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	// 3. Send Request
	url := o.BaseURL + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return nil, llm.NewRequestError("ollama", 0, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, llm.NewRequestError("ollama", resp.StatusCode, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, llm.NewRequestError("ollama", resp.StatusCode, fmt.Errorf("body: %s", string(bodyBytes)))
	}

	// 4. Parse Response
	var ollamaResp ollamaChatResponse
	if err := json.Unmarshal(bodyBytes, &ollamaResp); err != nil {
		return nil, llm.NewRequestError("ollama", resp.StatusCode, fmt.Errorf("unmarshal response: %w", err))
	}
	if ollamaResp.Message.Content == "" {
		return nil, llm.NewRequestError("ollama", resp.StatusCode, fmt.Errorf("empty completion"))
	}

	finish := llm.FinishStop
	if ollamaResp.DoneReason == "length" {
		finish = llm.FinishLength
	}

	return &llm.GenerationResponse{
		Id:       uuid.NewString(),
		Content:  ollamaResp.Message.Content,
		Model:    ollamaResp.Model,
		Provider: "ollama",
		Usage: llm.Usage{
			PromptTokens:     ollamaResp.PromptEvalCount,
			CompletionTokens: ollamaResp.EvalCount,
			TotalTokens:      ollamaResp.PromptEvalCount + ollamaResp.EvalCount,
		},
		FinishReason:   finish,
		ProcessingTime: time.Since(start),
	}, nil
}
