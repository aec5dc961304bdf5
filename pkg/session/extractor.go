package session

import (
	"regexp"
	"strings"
)

// Extraction strategies are deliberately small interfaces so the keyword
// heuristics can be swapped for a real classifier without touching the
// manager or the pipeline.

// TopicExtractor pulls domain topics from one user message.
type TopicExtractor interface {
	Extract(text string) []string
}

// ProfileExtractor updates the user profile from one user message.
type ProfileExtractor interface {
	Extract(text string, profile *UserProfile)
}

// Summarizer regenerates the session summary from the recent messages.
type Summarizer interface {
	Summarize(messages []Message) string
}

// --- Default keyword/regex implementations ---

// KeywordTopicExtractor matches a fixed domain vocabulary.
type KeywordTopicExtractor struct {
	keywords []string
}

func NewKeywordTopicExtractor() *KeywordTopicExtractor {
	return &KeywordTopicExtractor{
		keywords: []string{
			"funding", "investment", "seed", "series", "valuation", "pitch",
			"portfolio", "startup", "accelerator", "partnership",
			"ai", "web3", "blockchain", "product", "platform", "technology",
			"meeting", "contact", "support",
		},
	}
}

func (e *KeywordTopicExtractor) Extract(text string) []string {
	lower := strings.ToLower(text)
	var topics []string
	for _, k := range e.keywords {
		if strings.Contains(lower, k) {
			topics = append(topics, k)
		}
	}
	return topics
}

// RegexProfileExtractor detects company-name mentions and funding/partnership
// intent signals.
type RegexProfileExtractor struct {
	companyPattern *regexp.Regexp
	intentSignals  map[string][]string
}

func NewRegexProfileExtractor() *RegexProfileExtractor {
	return &RegexProfileExtractor{
		// "my company X", "I'm from X", "we at X" with a capitalized name
		companyPattern: regexp.MustCompile(`(?i:my company(?: is| called)?|i'?m from|we(?:'re)? at|on behalf of)\s+([A-Z][A-Za-z0-9&.-]*(?:\s+[A-Z][A-Za-z0-9&.-]*)?)`),
		intentSignals: map[string][]string{
			"fundraising": {"raising", "raise", "fundraising", "seeking investment", "looking for funding", "seed round", "series a", "series b"},
			"partnership": {"partner", "partnership", "collaborate", "collaboration", "joint venture"},
			"hiring":      {"hiring", "job", "career", "position", "join the team"},
		},
	}
}

func (e *RegexProfileExtractor) Extract(text string, profile *UserProfile) {
	if m := e.companyPattern.FindStringSubmatch(text); len(m) > 1 {
		profile.Companies = appendUnique(profile.Companies, strings.TrimSpace(m[1]))
	}

	lower := strings.ToLower(text)
	for intent, signals := range e.intentSignals {
		for _, s := range signals {
			if strings.Contains(lower, s) {
				profile.Intents = appendUnique(profile.Intents, intent)
				break
			}
		}
	}
}

// ExcerptSummarizer is a cheap deterministic placeholder: a truncated
// concatenation of the last messages' excerpts. Not true summarization.
type ExcerptSummarizer struct {
	window     int
	excerptLen int
	maxLen     int
}

func NewExcerptSummarizer() *ExcerptSummarizer {
	return &ExcerptSummarizer{window: 10, excerptLen: 60, maxLen: 600}
}

func (s *ExcerptSummarizer) Summarize(messages []Message) string {
	start := 0
	if len(messages) > s.window {
		start = len(messages) - s.window
	}

	var parts []string
	for _, m := range messages[start:] {
		text := strings.TrimSpace(m.Content)
		if text == "" {
			continue
		}
		if len(text) > s.excerptLen {
			text = text[:s.excerptLen] + "..."
		}
		parts = append(parts, m.Role+": "+text)
	}

	summary := strings.Join(parts, " | ")
	if len(summary) > s.maxLen {
		summary = summary[:s.maxLen]
	}
	return summary
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
