package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/constant"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/dto"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/logger"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/ai/orchestrator"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/ai/prompt"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/ai/response"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/ai/tools"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/embedding"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/events"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/knowledge"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm/registry"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/session"
)

type stubProvider struct {
	id        string
	available bool
	fail      bool
	content   string
}

func (p *stubProvider) Generate(_ context.Context, req *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	if p.fail {
		return nil, llm.NewRequestError(p.id, 500, llm.ErrProviderRequestFailed)
	}
	return &llm.GenerationResponse{
		Id:           "resp-1",
		Content:      p.content,
		Model:        req.Model,
		Provider:     p.id,
		FinishReason: llm.FinishStop,
	}, nil
}

func (p *stubProvider) Descriptor() llm.Descriptor {
	return llm.Descriptor{
		Id:              p.id,
		Name:            p.id,
		SupportedModels: []string{"test-model"},
		DefaultModel:    "test-model",
		Priority:        10,
	}
}

func (p *stubProvider) IsAvailable(context.Context) bool { return p.available }

type capturedPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (c *capturedPublisher) Publish(_ context.Context, event events.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *capturedPublisher) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e.EventType())
	}
	return out
}

func newTestAgentService(t *testing.T, provider llm.Provider) (IAgentService, *capturedPublisher) {
	t.Helper()

	index := knowledge.NewIndex(embedding.NewHashProvider(256))
	_, err := index.AddDocument(knowledge.Document{
		Content:  "Meta3 Ventures invests in pre-seed and seed rounds with checks between 100k and 1M USD.",
		Metadata: knowledge.Metadata{Title: "Funding criteria", Category: "funding"},
	})
	require.NoError(t, err)

	reg := registry.NewRegistry([]llm.Provider{provider}, time.Minute)
	orch := orchestrator.NewOrchestrator(reg, time.Second, logger.NewNopLogger())

	toolRegistry := tools.NewRegistry()
	require.NoError(t, toolRegistry.Register(tools.NewFundingCriteriaTool()))

	publisher := &capturedPublisher{}
	svc := NewAgentService(
		session.NewManager(10, 0),
		index,
		prompt.NewBuilder(),
		orch,
		tools.NewExecutor(toolRegistry, logger.NewNopLogger()),
		response.NewShaper(nil),
		publisher,
		logger.NewNopLogger(),
		constant.AgentVenture,
	)
	return svc, publisher
}

func TestAgentService_ChatHealthyPath(t *testing.T) {
	provider := &stubProvider{
		id:        "openai",
		available: true,
		content:   "We write checks between 100k and 1M USD for pre-seed and seed stage companies building in AI and Web3.",
	}
	svc, publisher := newTestAgentService(t, provider)

	res, err := svc.Chat(context.Background(), "user-1", &dto.ChatRequest{
		Message: "What is your funding criteria and check size?",
	})
	require.NoError(t, err)

	assert.Equal(t, "openai", res.Provider)
	assert.False(t, res.Degraded)
	assert.Equal(t, provider.content, res.Content)
	assert.NotEmpty(t, res.SessionId)
	assert.GreaterOrEqual(t, res.Confidence, 0.3)
	assert.LessOrEqual(t, res.Confidence, 1.0)

	history, err := svc.History(res.SessionId)
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, session.RoleUser, history.Messages[0].Role)
	assert.Equal(t, session.RoleAssistant, history.Messages[1].Role)

	assert.Contains(t, publisher.types(), events.TypeSessionStarted)
	assert.Contains(t, publisher.types(), events.TypeResponseGenerated)
}

func TestAgentService_ChatDegradedPathNeverFails(t *testing.T) {
	provider := &stubProvider{id: "openai", available: true, fail: true}
	svc, publisher := newTestAgentService(t, provider)

	res, err := svc.Chat(context.Background(), "user-1", &dto.ChatRequest{
		Message: "Do you invest in seed rounds for AI startups?",
	})
	require.NoError(t, err)

	assert.True(t, res.Degraded)
	assert.NotEmpty(t, res.Content)
	assert.Equal(t, "fallback", res.Provider)
	assert.GreaterOrEqual(t, res.Confidence, 0.5)
	assert.LessOrEqual(t, res.Confidence, 0.6)
	assert.Contains(t, publisher.types(), events.TypeProviderDegraded)

	var notice *response.Attachment
	for i := range res.Attachments {
		if res.Attachments[i].Type == "notice" {
			notice = &res.Attachments[i]
		}
	}
	require.NotNil(t, notice, "degraded responses carry a notice attachment")
	assert.NotEmpty(t, notice.Metadata["reason"])
}

func TestAgentService_SessionContinuity(t *testing.T) {
	provider := &stubProvider{id: "openai", available: true, content: "Happy to help with that."}
	svc, _ := newTestAgentService(t, provider)

	first, err := svc.Chat(context.Background(), "user-1", &dto.ChatRequest{Message: "Hello"})
	require.NoError(t, err)

	second, err := svc.Chat(context.Background(), "user-1", &dto.ChatRequest{Message: "What sectors do you invest in?"})
	require.NoError(t, err)

	assert.Equal(t, first.SessionId, second.SessionId)

	history, err := svc.History(first.SessionId)
	require.NoError(t, err)
	assert.Len(t, history.Messages, 4)
}

func TestAgentService_ToolDirectiveExecuted(t *testing.T) {
	provider := &stubProvider{
		id:        "openai",
		available: true,
		content:   "Here are our criteria: [[tool:funding_criteria {}]]",
	}
	svc, publisher := newTestAgentService(t, provider)

	res, err := svc.Chat(context.Background(), "user-1", &dto.ChatRequest{
		Message: "Show me the detailed funding criteria for your firm please, in full.",
	})
	require.NoError(t, err)

	assert.NotContains(t, res.Content, "[[tool:")
	assert.Contains(t, publisher.types(), events.TypeToolInvoked)
}

func TestAgentService_HistoryUnknownSession(t *testing.T) {
	provider := &stubProvider{id: "openai", available: true, content: "x"}
	svc, _ := newTestAgentService(t, provider)

	_, err := svc.History("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestAgentService_UnknownAgentFallsBackToVenture(t *testing.T) {
	provider := &stubProvider{id: "openai", available: true, content: "Answer."}
	svc, _ := newTestAgentService(t, provider)

	res, err := svc.Chat(context.Background(), "user-1", &dto.ChatRequest{
		Message: "Hi",
		AgentId: "unknown-agent",
	})
	require.NoError(t, err)
	assert.Equal(t, "venture", res.AgentId)

	history, err := svc.History(res.SessionId)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(history.AgentId, "venture"))
}
