package events

import "time"

// Event types emitted by the agent pipeline.
const (
	TypeResponseGenerated = "agent.response_generated"
	TypeProviderDegraded  = "agent.provider_degraded"
	TypeKnowledgeIndexed  = "knowledge.document_added"
	TypeSessionStarted    = "session.started"
	TypeToolInvoked       = "agent.tool_invoked"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "agent.response_generated").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the canonical Event implementation used by the constructors
// below.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewResponseGenerated records one completed chat turn.
func NewResponseGenerated(sessionId, agentId, provider, model string, confidence float64, degraded bool, processingMs int64) Event {
	return BaseEvent{
		Type: TypeResponseGenerated,
		Data: map[string]interface{}{
			"session_id":    sessionId,
			"agent_id":      agentId,
			"provider":      provider,
			"model":         model,
			"confidence":    confidence,
			"degraded":      degraded,
			"processing_ms": processingMs,
		},
		OccurredAt: time.Now(),
	}
}

// NewProviderDegraded records a provider attempt failure that advanced the
// fallback chain.
func NewProviderDegraded(providerId, reason string) Event {
	return BaseEvent{
		Type: TypeProviderDegraded,
		Data: map[string]interface{}{
			"provider_id": providerId,
			"reason":      reason,
		},
		OccurredAt: time.Now(),
	}
}

// NewKnowledgeIndexed records a document added to the knowledge index.
func NewKnowledgeIndexed(documentId, category string, chunks int) Event {
	return BaseEvent{
		Type: TypeKnowledgeIndexed,
		Data: map[string]interface{}{
			"document_id": documentId,
			"category":    category,
			"chunks":      chunks,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionStarted records creation of a new conversation session.
func NewSessionStarted(sessionId, agentId string) Event {
	return BaseEvent{
		Type: TypeSessionStarted,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"agent_id":   agentId,
		},
		OccurredAt: time.Now(),
	}
}

// NewToolInvoked records an inline tool directive execution.
func NewToolInvoked(sessionId, toolId string, failed bool) Event {
	return BaseEvent{
		Type: TypeToolInvoked,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"tool_id":    toolId,
			"failed":     failed,
		},
		OccurredAt: time.Now(),
	}
}
