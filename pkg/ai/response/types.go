package response

import "time"

// Attachment is supplemental material returned alongside the answer text,
// typically a knowledge snippet or a suggested action.
type Attachment struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Content  string                 `json:"content,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// AgentResponse is the final shaped output of the pipeline.
type AgentResponse struct {
	Id          string       `json:"id"`
	SessionId   string       `json:"session_id"`
	AgentId     string       `json:"agent_id"`
	Content     string       `json:"content"`
	Confidence  float64      `json:"confidence"`
	Intent      string       `json:"intent"`
	Provider    string       `json:"provider"`
	Model       string       `json:"model"`
	Degraded    bool         `json:"degraded"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Truncated   bool         `json:"truncated"`
	Timestamp   time.Time    `json:"timestamp"`
}
