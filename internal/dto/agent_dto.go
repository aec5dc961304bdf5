package dto

import (
	"time"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/ai/response"
)

type ChatRequest struct {
	Message   string `json:"message" validate:"required,max=4000"`
	SessionId string `json:"session_id,omitempty" validate:"omitempty,max=64"`
	AgentId   string `json:"agent_id,omitempty" validate:"omitempty,oneof=venture support"`
	Provider  string `json:"provider,omitempty" validate:"omitempty,max=32"`
}

type ChatResponse struct {
	Id          string                `json:"id"`
	SessionId   string                `json:"session_id"`
	AgentId     string                `json:"agent_id"`
	Content     string                `json:"content"`
	Confidence  float64               `json:"confidence"`
	Intent      string                `json:"intent"`
	Provider    string                `json:"provider"`
	Model       string                `json:"model"`
	Degraded    bool                  `json:"degraded"`
	Truncated   bool                  `json:"truncated"`
	Attachments []response.Attachment `json:"attachments,omitempty"`
	Timestamp   time.Time             `json:"timestamp"`
}

type SessionHistoryResponse struct {
	SessionId string              `json:"session_id"`
	AgentId   string              `json:"agent_id"`
	Messages  []SessionMessageDTO `json:"messages"`
	Topics    []string            `json:"topics,omitempty"`
	Summary   string              `json:"summary,omitempty"`
}

type SessionMessageDTO struct {
	Id        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
