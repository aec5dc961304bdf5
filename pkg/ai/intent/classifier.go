package intent

import "strings"

// Intent classes used by the shaping controller
const (
	Greeting       = "greeting"
	About          = "about"
	SimpleQuestion = "simple_question"
	ComplexRequest = "complex_request"
	FollowUp       = "follow_up"
)

// Classifier decides the message-intent class from the triggering message
// and the conversation length. Kept behind an interface so the keyword
// heuristic can be replaced with a real classifier without touching the
// pipeline.
type Classifier interface {
	Classify(message string, conversationLength int) string
}

// KeywordClassifier is the default heuristic implementation.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier { return &KeywordClassifier{} }

func (c *KeywordClassifier) Classify(message string, conversationLength int) string {
	text := strings.ToLower(strings.TrimSpace(message))

	if isGreeting(text) {
		return Greeting
	}

	if containsAny(text, []string{"who are you", "about you", "about meta3", "your team", "what do you do", "tell me about the fund"}) {
		return About
	}

	// Short references back into an ongoing conversation
	if conversationLength > 2 && (len(text) < 40 || hasFollowUpLead(text)) {
		return FollowUp
	}

	if len(text) > 120 || containsAny(text, []string{"analyze", "compare", "evaluate", "walk me through", "step by step", "in detail", "plan"}) {
		return ComplexRequest
	}

	return SimpleQuestion
}

func isGreeting(text string) bool {
	if len(text) > 60 {
		return false
	}
	return containsAny(text, []string{"hello", "hi ", "hey", "good morning", "good afternoon", "good evening", "greetings"}) ||
		text == "hi"
}

func hasFollowUpLead(text string) bool {
	leads := []string{"and ", "also ", "what about", "how about", "why", "then"}
	for _, l := range leads {
		if strings.HasPrefix(text, l) {
			return true
		}
	}
	return false
}

func containsAny(text string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
