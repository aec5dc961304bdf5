package response

import (
	"sort"
	"strings"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/ai/intent"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/embedding"
)

const continuationPrompt = "\n\nWould you like me to continue?"

type classBudget struct {
	maxChars       int
	maxAttachments int
}

var budgets = map[string]classBudget{
	intent.Greeting:       {maxChars: 280, maxAttachments: 0},
	intent.About:          {maxChars: 700, maxAttachments: 1},
	intent.SimpleQuestion: {maxChars: 900, maxAttachments: 2},
	intent.FollowUp:       {maxChars: 700, maxAttachments: 2},
	intent.ComplexRequest: {maxChars: 2200, maxAttachments: 4},
}

// Shaped is the result of applying per-intent budgets to raw content.
type Shaped struct {
	Content     string
	Attachments []Attachment
	Intent      string
	Truncated   bool
}

// Shaper trims responses to per-intent budgets and picks the most relevant
// attachments for the triggering message.
type Shaper struct {
	classifier intent.Classifier
}

func NewShaper(classifier intent.Classifier) *Shaper {
	if classifier == nil {
		classifier = intent.NewKeywordClassifier()
	}
	return &Shaper{classifier: classifier}
}

// Shape classifies the message, truncates oversized content at a sentence
// boundary and caps attachments, keeping the ones most relevant to the
// message itself.
func (s *Shaper) Shape(message string, conversationLength int, content string, attachments []Attachment) Shaped {
	class := s.classifier.Classify(message, conversationLength)
	budget, ok := budgets[class]
	if !ok {
		budget = budgets[intent.SimpleQuestion]
	}

	shaped := Shaped{Intent: class, Content: content}
	if len(content) > budget.maxChars {
		shaped.Content = truncate(content, budget.maxChars) + continuationPrompt
		shaped.Truncated = true
	}

	shaped.Attachments = selectAttachments(message, attachments, budget.maxAttachments)
	return shaped
}

// truncate cuts text to at most limit characters, preferring the last
// sentence end and falling back to the last word boundary.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := text[:limit]

	if idx := lastSentenceEnd(cut); idx > limit/2 {
		return strings.TrimSpace(cut[:idx+1])
	}
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		return strings.TrimSpace(cut[:idx])
	}
	return strings.TrimSpace(cut)
}

func lastSentenceEnd(text string) int {
	best := -1
	for _, term := range []string{".", "!", "?"} {
		if idx := strings.LastIndex(text, term); idx > best {
			best = idx
		}
	}
	return best
}

// selectAttachments keeps at most limit attachments, ordered by keyword
// overlap with the message so the most on-topic material survives the cap.
func selectAttachments(message string, attachments []Attachment, limit int) []Attachment {
	if limit <= 0 || len(attachments) == 0 {
		return nil
	}
	if len(attachments) <= limit {
		out := make([]Attachment, len(attachments))
		copy(out, attachments)
		return out
	}

	queryTokens := tokenSet(message)
	type ranked struct {
		att   Attachment
		score int
		pos   int
	}
	rankedList := make([]ranked, len(attachments))
	for i, att := range attachments {
		rankedList[i] = ranked{att: att, score: overlap(queryTokens, att.Title+" "+att.Content), pos: i}
	}
	sort.SliceStable(rankedList, func(i, j int) bool {
		if rankedList[i].score != rankedList[j].score {
			return rankedList[i].score > rankedList[j].score
		}
		return rankedList[i].pos < rankedList[j].pos
	})

	out := make([]Attachment, 0, limit)
	for _, r := range rankedList[:limit] {
		out = append(out, r.att)
	}
	return out
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range embedding.Tokenize(text) {
		set[tok] = true
	}
	return set
}

func overlap(query map[string]bool, text string) int {
	count := 0
	for _, tok := range embedding.Tokenize(text) {
		if query[tok] {
			count++
		}
	}
	return count
}
