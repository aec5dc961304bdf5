package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/constant"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/dto"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/logger"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/ai/orchestrator"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/ai/prompt"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/ai/response"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/ai/tools"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/events"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/knowledge"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/session"
)

const retrievalTopK = 3

type IAgentService interface {
	Chat(ctx context.Context, userId string, req *dto.ChatRequest) (*dto.ChatResponse, error)
	History(sessionId string) (*dto.SessionHistoryResponse, error)
}

// agentService runs the full response pipeline for one chat turn: session
// resolution, knowledge retrieval, prompt assembly, generation with fallback,
// inline tool execution, confidence scoring and response shaping.
type agentService struct {
	sessions     *session.Manager
	index        *knowledge.Index
	builder      *prompt.Builder
	orchestrator *orchestrator.Orchestrator
	executor     *tools.Executor
	shaper       *response.Shaper
	publisher    IPublisherService
	logger       logger.ILogger
	defaultAgent string
}

func NewAgentService(
	sessions *session.Manager,
	index *knowledge.Index,
	builder *prompt.Builder,
	orch *orchestrator.Orchestrator,
	executor *tools.Executor,
	shaper *response.Shaper,
	publisher IPublisherService,
	log logger.ILogger,
	defaultAgent string,
) IAgentService {
	if _, ok := constant.AgentProfiles[defaultAgent]; !ok {
		defaultAgent = constant.AgentVenture
	}
	return &agentService{
		sessions:     sessions,
		index:        index,
		builder:      builder,
		orchestrator: orch,
		executor:     executor,
		shaper:       shaper,
		publisher:    publisher,
		logger:       log,
		defaultAgent: defaultAgent,
	}
}

func (s *agentService) Chat(ctx context.Context, userId string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	started := time.Now()

	profile, ok := constant.AgentProfiles[req.AgentId]
	if !ok {
		profile = constant.AgentProfiles[s.defaultAgent]
	}

	sess := s.sessions.GetOrCreate(userId, req.SessionId, profile.Id)
	if len(sess.Messages) == 0 {
		s.publisher.Publish(ctx, events.NewSessionStarted(sess.Id, profile.Id))
	}

	// Snapshot before recording the new message so the prompt does not
	// replay the query twice.
	snapshot, err := s.sessions.Context(sess.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session context: %w", err)
	}
	conversationLen := len(snapshot.RecentMessages)

	if _, err := s.sessions.AddMessage(sess.Id, session.RoleUser, req.Message, nil); err != nil {
		return nil, fmt.Errorf("failed to record user message: %w", err)
	}

	refs := s.retrieve(req.Message, snapshot.Topics)

	messages := s.builder.Build(prompt.Input{
		SystemPrompt: profile.SystemPrompt,
		Query:        req.Message,
		References:   refs,
		Snapshot:     *snapshot,
		ToolHints:    profile.AllowedTools,
	})

	result := s.orchestrator.Generate(ctx, "", messages, orchestrator.Options{
		PreferredProvider: req.Provider,
	})

	content, invocations := s.executor.Process(ctx, result.Response.Content, allowedSet(profile.AllowedTools))
	for _, inv := range invocations {
		s.publisher.Publish(ctx, events.NewToolInvoked(sess.Id, inv.ToolId, inv.Error != ""))
	}

	confidence := response.Score(result.Response)
	if result.Degraded {
		confidence = response.ScoreFallback(result.FallbackConfidence)
		s.publisher.Publish(ctx, events.NewProviderDegraded(result.Response.Provider, result.DegradedReason))
	}

	shaped := s.shaper.Shape(req.Message, conversationLen, content, attachmentsFromRefs(refs))

	attachments := shaped.Attachments
	if result.Degraded {
		attachments = append(attachments, response.Attachment{
			Type:    "notice",
			Title:   "Limited availability",
			Content: "Live language models are temporarily unavailable, so this answer came from the assistant's built-in responses.",
			Metadata: map[string]interface{}{
				"reason": result.DegradedReason,
			},
		})
	}

	assistantMsg, err := s.sessions.AddMessage(sess.Id, session.RoleAssistant, shaped.Content, map[string]interface{}{
		"provider":   result.Response.Provider,
		"model":      result.Response.Model,
		"confidence": confidence,
		"degraded":   result.Degraded,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record assistant message: %w", err)
	}

	s.publisher.Publish(ctx, events.NewResponseGenerated(
		sess.Id, profile.Id, result.Response.Provider, result.Response.Model,
		confidence, result.Degraded, time.Since(started).Milliseconds(),
	))

	return &dto.ChatResponse{
		Id:          assistantMsg.Id,
		SessionId:   sess.Id,
		AgentId:     profile.Id,
		Content:     shaped.Content,
		Confidence:  confidence,
		Intent:      shaped.Intent,
		Provider:    result.Response.Provider,
		Model:       result.Response.Model,
		Degraded:    result.Degraded,
		Truncated:   shaped.Truncated,
		Attachments: attachments,
		Timestamp:   assistantMsg.Timestamp,
	}, nil
}

func (s *agentService) History(sessionId string) (*dto.SessionHistoryResponse, error) {
	sess, ok := s.sessions.Get(sessionId)
	if !ok {
		return nil, session.ErrSessionNotFound
	}

	messages := make([]dto.SessionMessageDTO, 0, len(sess.Messages))
	for _, m := range sess.Messages {
		messages = append(messages, dto.SessionMessageDTO{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}

	return &dto.SessionHistoryResponse{
		SessionId: sess.Id,
		AgentId:   sess.AgentId,
		Messages:  messages,
		Topics:    sess.Context.Topics,
		Summary:   sess.Context.Summary,
	}, nil
}

// retrieve degrades silently: a retrieval failure means an ungrounded prompt,
// not a failed chat turn.
func (s *agentService) retrieve(query string, topics []string) []knowledge.SearchResult {
	var (
		refs []knowledge.SearchResult
		err  error
	)
	if len(topics) > 0 {
		refs, err = s.index.ContextualSearch(query, strings.Join(topics, " "), retrievalTopK)
	} else {
		refs, err = s.index.Search(query, knowledge.SearchOptions{TopK: retrievalTopK})
	}
	if err != nil {
		s.logger.Error("AgentService", "Knowledge retrieval failed, continuing without references", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return refs
}

func attachmentsFromRefs(refs []knowledge.SearchResult) []response.Attachment {
	if len(refs) == 0 {
		return nil
	}
	atts := make([]response.Attachment, 0, len(refs))
	for _, r := range refs {
		atts = append(atts, response.Attachment{
			Type:    "document",
			Title:   r.Document.Metadata.Title,
			Content: r.Document.Content,
			Metadata: map[string]interface{}{
				"document_id": r.Document.Id,
				"category":    r.Document.Metadata.Category,
				"similarity":  r.Similarity,
			},
		})
	}
	return atts
}

func allowedSet(toolIds []string) map[string]bool {
	set := make(map[string]bool, len(toolIds))
	for _, id := range toolIds {
		set[id] = true
	}
	return set
}
