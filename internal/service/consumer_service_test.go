package service

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/logger"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/events"
)

func newTestBusPair(t *testing.T) (IPublisherService, IConsumerService, func()) {
	t.Helper()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	publisher := NewPublisherService(pubSub, nil, logger.NewNopLogger())
	consumer := NewConsumerService(pubSub, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, consumer.Consume(ctx))

	return publisher, consumer, func() {
		cancel()
		pubSub.Close()
	}
}

func waitForStats(t *testing.T, consumer IConsumerService, ok func(UsageStats) bool) UsageStats {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		stats := consumer.Stats()
		if ok(stats) {
			return stats
		}
		time.Sleep(10 * time.Millisecond)
	}
	return consumer.Stats()
}

func TestConsumerCountsResponses(t *testing.T) {
	publisher, consumer, cleanup := newTestBusPair(t)
	defer cleanup()

	ctx := context.Background()
	publisher.Publish(ctx, events.NewResponseGenerated("s1", "venture", "openai", "gpt-4o-mini", 0.8, false, 120))
	publisher.Publish(ctx, events.NewResponseGenerated("s1", "venture", "openai", "gpt-4o-mini", 0.9, false, 90))
	publisher.Publish(ctx, events.NewResponseGenerated("s2", "venture", "fallback", "template", 0.5, true, 3))

	stats := waitForStats(t, consumer, func(s UsageStats) bool { return s.TotalResponses == 3 })

	assert.Equal(t, 3, stats.TotalResponses)
	assert.Equal(t, 1, stats.DegradedCount)
	assert.Equal(t, 2, stats.ByProvider["openai"])
	assert.Equal(t, 1, stats.ByProvider["fallback"])
}

func TestConsumerCountsToolsAndSessions(t *testing.T) {
	publisher, consumer, cleanup := newTestBusPair(t)
	defer cleanup()

	ctx := context.Background()
	publisher.Publish(ctx, events.NewSessionStarted("s1", "venture"))
	publisher.Publish(ctx, events.NewToolInvoked("s1", "knowledge_search", false))
	publisher.Publish(ctx, events.NewToolInvoked("s1", "schedule_meeting", true))
	publisher.Publish(ctx, events.NewKnowledgeIndexed("doc-1", "funding", 2))

	stats := waitForStats(t, consumer, func(s UsageStats) bool {
		return s.ToolInvocations == 2 && s.SessionsStarted == 1 && s.DocumentsIndexed == 1
	})

	assert.Equal(t, 2, stats.ToolInvocations)
	assert.Equal(t, 1, stats.ToolFailures)
	assert.Equal(t, 1, stats.SessionsStarted)
	assert.Equal(t, 1, stats.DocumentsIndexed)
}

func TestConsumerIgnoresMalformedPayload(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	consumer := NewConsumerService(pubSub, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	raw := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	require.NoError(t, pubSub.Publish(ActivityTopic, raw))

	publisher := NewPublisherService(pubSub, nil, logger.NewNopLogger())
	publisher.Publish(ctx, events.NewSessionStarted("s1", "venture"))

	stats := waitForStats(t, consumer, func(s UsageStats) bool { return s.SessionsStarted == 1 })
	assert.Equal(t, 1, stats.SessionsStarted)
	assert.Zero(t, stats.TotalResponses)
}
