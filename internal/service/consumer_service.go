package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/logger"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/events"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
	Stats() UsageStats
}

// UsageStats is the aggregate view the ops endpoint exposes.
type UsageStats struct {
	TotalResponses   int            `json:"total_responses"`
	DegradedCount    int            `json:"degraded_count"`
	ByProvider       map[string]int `json:"by_provider"`
	ToolInvocations  int            `json:"tool_invocations"`
	ToolFailures     int            `json:"tool_failures"`
	SessionsStarted  int            `json:"sessions_started"`
	DocumentsIndexed int            `json:"documents_indexed"`
}

// consumerService tails the in-process activity bus and keeps running usage
// counters. Counters reset on restart; durable analytics live behind the NATS
// mirror.
type consumerService struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger

	mu    sync.Mutex
	stats UsageStats
}

func NewConsumerService(pubSub *gochannel.GoChannel, log logger.ILogger) IConsumerService {
	return &consumerService{
		pubSub: pubSub,
		logger: log,
		stats:  UsageStats{ByProvider: make(map[string]int)},
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, ActivityTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) Stats() UsageStats {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	out := cs.stats
	out.ByProvider = make(map[string]int, len(cs.stats.ByProvider))
	for k, v := range cs.stats.ByProvider {
		out.ByProvider[k] = v
	}
	return out
}

func (cs *consumerService) processMessage(msg *message.Message) {
	// Ack everything; counters are best effort and a redelivery loop would
	// only double count.
	defer msg.Ack()

	var envelope struct {
		Type    string                 `json:"type"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal activity event", map[string]interface{}{"error": err.Error()})
		return
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	switch envelope.Type {
	case events.TypeResponseGenerated:
		cs.stats.TotalResponses++
		if provider, ok := envelope.Payload["provider"].(string); ok {
			cs.stats.ByProvider[provider]++
		}
		if degraded, ok := envelope.Payload["degraded"].(bool); ok && degraded {
			cs.stats.DegradedCount++
		}
	case events.TypeToolInvoked:
		cs.stats.ToolInvocations++
		if failed, ok := envelope.Payload["failed"].(bool); ok && failed {
			cs.stats.ToolFailures++
		}
	case events.TypeSessionStarted:
		cs.stats.SessionsStarted++
	case events.TypeKnowledgeIndexed:
		cs.stats.DocumentsIndexed++
	}
}
