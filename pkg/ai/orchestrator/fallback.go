package orchestrator

import (
	"strings"
	"time"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm"

	"github.com/google/uuid"
)

// topicBucket pairs a keyword set with its canned response and the
// generator's own confidence in that response.
type topicBucket struct {
	name       string
	keywords   []string
	response   string
	confidence float64
}

// FallbackGenerator is a pure function of message content: keyword matching
// against a small set of topic buckets. It always succeeds.
type FallbackGenerator struct {
	buckets      []topicBucket
	defaultReply topicBucket
}

func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{
		buckets: []topicBucket{
			{
				name:       "greeting",
				keywords:   []string{"hello", "hi", "hey", "good morning", "good afternoon", "greetings"},
				response:   "Hello! I'm the Meta3 Ventures assistant. I can tell you about our investment focus, portfolio, and how to get in touch with the team. What would you like to know?",
				confidence: 0.8,
			},
			{
				name:       "investment",
				keywords:   []string{"invest", "funding", "capital", "raise", "seed", "series", "valuation", "portfolio"},
				response:   "Meta3 Ventures invests in early-stage companies, typically from pre-seed through Series A, with a focus on applied AI and web3 infrastructure. If you're raising, the best first step is to share a short deck through our contact form and the investment team will follow up.",
				confidence: 0.8,
			},
			{
				name:       "product",
				keywords:   []string{"product", "platform", "service", "technology", "solution", "tool"},
				response:   "Our platform gives founders and limited partners a single view of portfolio performance, plus hands-on support from our operating team. Ask me about a specific capability and I'll point you to the right material.",
				confidence: 0.75,
			},
			{
				name:       "support",
				keywords:   []string{"help", "problem", "issue", "error", "trouble", "stuck", "support"},
				response:   "Sorry you're running into trouble. Describe what you were trying to do and what happened, and I'll do my best to help or route you to the right person on the team.",
				confidence: 0.7,
			},
			{
				name:       "contact",
				keywords:   []string{"contact", "email", "reach", "meeting", "call", "schedule", "talk", "connect"},
				response:   "You can reach the Meta3 Ventures team through the contact form on this site, or ask me to schedule an introduction call and I'll capture the details for the partnership team.",
				confidence: 0.8,
			},
		},
		defaultReply: topicBucket{
			name:       "default",
			response:   "I can help with questions about Meta3 Ventures: our investment thesis, portfolio companies, platform, and how to get in touch. Could you tell me a bit more about what you're looking for?",
			confidence: 0.7,
		},
	}
}

// Generate matches the last user message against the topic buckets and
// returns the templated response plus the generator's own confidence.
func (g *FallbackGenerator) Generate(messages []llm.Message) (*llm.GenerationResponse, float64) {
	start := time.Now()

	text := strings.ToLower(lastUserContent(messages))

	bucket := g.defaultReply
	for _, b := range g.buckets {
		if matchesAny(text, b.keywords) {
			bucket = b
			break
		}
	}

	return &llm.GenerationResponse{
		Id:             uuid.NewString(),
		Content:        bucket.response,
		Model:          "template",
		Provider:       "fallback",
		FinishReason:   llm.FinishStop,
		ProcessingTime: time.Since(start),
	}, bucket.confidence
}

func lastUserContent(messages []llm.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}

func matchesAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
