package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/logger"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/events"
	pktNats "github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/nats"
)

// ActivityTopic is the in-process bus topic carrying every pipeline event.
const ActivityTopic = "agent.activity"

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event)
}

// publisherService fans pipeline events out to the in-process watermill bus
// and, when configured, mirrors them to NATS for external consumers. Event
// publishing is best effort; a bus failure must never fail a chat turn.
type publisherService struct {
	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	logger  logger.ILogger
}

func NewPublisherService(pubSub *gochannel.GoChannel, natsPub *pktNats.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		pubSub:  pubSub,
		natsPub: natsPub,
		logger:  log,
	}
}

func (s *publisherService) Publish(ctx context.Context, event events.Event) {
	envelope := map[string]interface{}{
		"type":        event.EventType(),
		"payload":     event.Payload(),
		"occurred_at": event.Timestamp(),
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Error("PublisherService", "Failed to marshal event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("type", event.EventType())
	if err := s.pubSub.Publish(ActivityTopic, msg); err != nil {
		s.logger.Error("PublisherService", "Failed to publish to activity bus", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}

	if s.natsPub != nil {
		if err := s.natsPub.Publish(ctx, event); err != nil {
			s.logger.Error("PublisherService", "Failed to mirror event to NATS", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}
}
