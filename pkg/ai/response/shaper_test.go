package response

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/ai/intent"
)

func TestShaper_ShortContentPassesThrough(t *testing.T) {
	s := NewShaper(nil)

	shaped := s.Shape("What sectors do you invest in?", 0, "We focus on AI, Web3 and fintech.", nil)

	assert.Equal(t, intent.SimpleQuestion, shaped.Intent)
	assert.Equal(t, "We focus on AI, Web3 and fintech.", shaped.Content)
	assert.False(t, shaped.Truncated)
	assert.Empty(t, shaped.Attachments)
}

func TestShaper_GreetingBudgetTruncatesAtSentenceBoundary(t *testing.T) {
	s := NewShaper(nil)

	first := "Welcome to Meta3 Ventures, we are glad you reached out. "
	content := first + strings.Repeat("We partner with early stage founders building in AI and Web3. ", 10)

	shaped := s.Shape("Hello!", 0, content, nil)

	assert.Equal(t, intent.Greeting, shaped.Intent)
	assert.True(t, shaped.Truncated)
	assert.LessOrEqual(t, len(shaped.Content), 280+len(continuationPrompt))
	assert.True(t, strings.HasSuffix(shaped.Content, continuationPrompt))

	body := strings.TrimSuffix(shaped.Content, continuationPrompt)
	assert.True(t, strings.HasSuffix(body, "."), "expected a sentence boundary, got %q", body)
}

func TestShaper_GreetingDropsAllAttachments(t *testing.T) {
	s := NewShaper(nil)

	shaped := s.Shape("Hi", 0, "Hello!", []Attachment{{Type: "document", Title: "Funding criteria"}})

	assert.Empty(t, shaped.Attachments)
}

func TestShaper_AttachmentCapKeepsMostRelevant(t *testing.T) {
	s := NewShaper(nil)

	atts := []Attachment{
		{Type: "document", Title: "Office locations", Content: "Tel Aviv and New York"},
		{Type: "document", Title: "Funding criteria", Content: "seed round funding requirements for startups"},
		{Type: "document", Title: "Portfolio overview", Content: "companies across AI and Web3"},
		{Type: "document", Title: "Funding process", Content: "how funding decisions are made"},
	}

	shaped := s.Shape("How does your funding process work?", 0, "Our funding process has three stages.", atts)

	assert.Len(t, shaped.Attachments, 2)
	titles := []string{shaped.Attachments[0].Title, shaped.Attachments[1].Title}
	assert.Contains(t, titles, "Funding process")
	assert.Contains(t, titles, "Funding criteria")
}

func TestShaper_AttachmentOrderStableUnderCap(t *testing.T) {
	s := NewShaper(nil)

	atts := []Attachment{
		{Type: "document", Title: "First"},
		{Type: "document", Title: "Second"},
	}

	shaped := s.Shape("What sectors do you invest in?", 0, "Answer.", atts)

	assert.Equal(t, "First", shaped.Attachments[0].Title)
	assert.Equal(t, "Second", shaped.Attachments[1].Title)
}

func TestShaper_ComplexRequestAllowsLongerContent(t *testing.T) {
	s := NewShaper(nil)

	content := strings.Repeat("Our evaluation covers team, market and traction. ", 30)
	shaped := s.Shape("Please compare your AI thesis against your Web3 thesis in detail.", 0, content, nil)

	assert.Equal(t, intent.ComplexRequest, shaped.Intent)
	assert.Equal(t, content, shaped.Content)
	assert.False(t, shaped.Truncated)
}
