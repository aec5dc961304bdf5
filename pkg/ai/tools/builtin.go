package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/knowledge"
)

// KnowledgeSearchTool lets the agent query the retrieval index inline.
type KnowledgeSearchTool struct {
	index *knowledge.Index
}

func NewKnowledgeSearchTool(index *knowledge.Index) *KnowledgeSearchTool {
	return &KnowledgeSearchTool{index: index}
}

func (t *KnowledgeSearchTool) Id() string   { return "knowledge_search" }
func (t *KnowledgeSearchTool) Name() string { return "Knowledge search" }
func (t *KnowledgeSearchTool) Description() string {
	return "Searches the site knowledge base. Params: query (string), category (string, optional)"
}

func (t *KnowledgeSearchTool) Execute(ctx context.Context, params map[string]interface{}) (string, error) {
	query, _ := params["query"].(string)
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("query parameter is required")
	}
	category, _ := params["category"].(string)

	results, err := t.index.Search(query, knowledge.SearchOptions{TopK: 3, Category: category})
	if err != nil {
		return "", fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		return "No matching knowledge found.", nil
	}

	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("%d. %s: %s\n", r.Rank, r.Document.Metadata.Title, excerpt(r.Document.Content, 160)))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// ScheduleMeetingTool captures contact-intent details for the partnership team.
// The actual calendar integration is an external collaborator; this tool only
// validates and acknowledges the capture.
type ScheduleMeetingTool struct{}

func NewScheduleMeetingTool() *ScheduleMeetingTool { return &ScheduleMeetingTool{} }

func (t *ScheduleMeetingTool) Id() string   { return "schedule_meeting" }
func (t *ScheduleMeetingTool) Name() string { return "Meeting request" }
func (t *ScheduleMeetingTool) Description() string {
	return "Captures a meeting request. Params: name (string), email (string), topic (string, optional)"
}

func (t *ScheduleMeetingTool) Execute(ctx context.Context, params map[string]interface{}) (string, error) {
	name, _ := params["name"].(string)
	email, _ := params["email"].(string)
	if name == "" || email == "" {
		return "", fmt.Errorf("name and email parameters are required")
	}
	topic, _ := params["topic"].(string)
	if topic == "" {
		topic = "introduction"
	}
	return fmt.Sprintf("Meeting request recorded for %s (%s), topic: %s. The partnership team will follow up within two business days.", name, email, topic), nil
}

// PortfolioLookupTool answers questions about portfolio companies from the
// knowledge index's company category.
type PortfolioLookupTool struct {
	index *knowledge.Index
}

func NewPortfolioLookupTool(index *knowledge.Index) *PortfolioLookupTool {
	return &PortfolioLookupTool{index: index}
}

func (t *PortfolioLookupTool) Id() string   { return "portfolio_lookup" }
func (t *PortfolioLookupTool) Name() string { return "Portfolio lookup" }
func (t *PortfolioLookupTool) Description() string {
	return "Looks up portfolio companies. Params: query (string)"
}

func (t *PortfolioLookupTool) Execute(ctx context.Context, params map[string]interface{}) (string, error) {
	query, _ := params["query"].(string)
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("query parameter is required")
	}

	results, err := t.index.Search(query, knowledge.SearchOptions{TopK: 3, Category: "portfolio"})
	if err != nil {
		return "", fmt.Errorf("lookup failed: %w", err)
	}
	if len(results) == 0 {
		return "No portfolio entry matched that query.", nil
	}

	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", r.Document.Metadata.Title, excerpt(r.Document.Content, 160)))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// FundingCriteriaTool returns the static investment criteria summary.
type FundingCriteriaTool struct{}

func NewFundingCriteriaTool() *FundingCriteriaTool { return &FundingCriteriaTool{} }

func (t *FundingCriteriaTool) Id() string   { return "funding_criteria" }
func (t *FundingCriteriaTool) Name() string { return "Funding criteria" }
func (t *FundingCriteriaTool) Description() string {
	return "Returns the fund's investment criteria. No params."
}

func (t *FundingCriteriaTool) Execute(ctx context.Context, params map[string]interface{}) (string, error) {
	return "Stage: pre-seed to Series A. Focus: applied AI, web3 infrastructure, deep tech. Check size: $100k-$1M initial. Geography: global, with a preference for teams able to meet in Tel Aviv or remotely.", nil
}

func excerpt(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
