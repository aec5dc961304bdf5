package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ErrSessionNotFound marks lookups against unknown or archived sessions.
var ErrSessionNotFound = errors.New("session not found")

const (
	// DefaultArchiveWindow is the inactivity window after which a session
	// leaves the active store. Archival is the cache's expiry; nothing
	// hard-deletes sessions inside the pipeline itself.
	DefaultArchiveWindow = 7 * 24 * time.Hour

	// DefaultTopicCap bounds the most-recent topic set per session
	DefaultTopicCap = 10

	// summaryInterval regenerates the summary every Nth appended message
	summaryInterval = 5

	// recentWindow bounds Context's recent message slice
	recentWindow = 10
)

// Manager owns all session state. A single mutex serializes mutation, which
// also gives the per-session append ordering guarantee; there is no ordering
// between concurrent sessions.
type Manager struct {
	mu           sync.Mutex
	store        *cache.Cache
	activeByUser map[string]string // userId -> active sessionId

	topicCap  int
	topics    TopicExtractor
	profile   ProfileExtractor
	summarize Summarizer
}

func NewManager(topicCap int, archiveWindow time.Duration) *Manager {
	if topicCap <= 0 {
		topicCap = DefaultTopicCap
	}
	if archiveWindow <= 0 {
		archiveWindow = DefaultArchiveWindow
	}
	return &Manager{
		store:        cache.New(archiveWindow, time.Hour),
		activeByUser: make(map[string]string),
		topicCap:     topicCap,
		topics:       NewKeywordTopicExtractor(),
		profile:      NewRegexProfileExtractor(),
		summarize:    NewExcerptSummarizer(),
	}
}

// WithStrategies overrides the extraction strategies. For tests and for
// substituting a real classifier.
func (m *Manager) WithStrategies(topics TopicExtractor, profile ProfileExtractor, summarizer Summarizer) *Manager {
	if topics != nil {
		m.topics = topics
	}
	if profile != nil {
		m.profile = profile
	}
	if summarizer != nil {
		m.summarize = summarizer
	}
	return m
}

// GetOrCreate resolves the session for a request. An explicit sessionId hit
// wins and refreshes LastActivity; otherwise the user's active session is
// reused unless the agent hint forces a different agent; otherwise a new
// session is created. The returned session is a copy; the live object never
// leaves the mutex.
func (m *Manager) GetOrCreate(userId, sessionId, agentHint string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sessionId != "" {
		if s, ok := m.get(sessionId); ok {
			s.LastActivity = time.Now()
			m.put(s)
			return s.clone()
		}
	}

	if activeId, ok := m.activeByUser[userId]; ok {
		if s, found := m.get(activeId); found {
			if agentHint == "" || agentHint == s.AgentId {
				s.LastActivity = time.Now()
				m.put(s)
				return s.clone()
			}
		}
	}

	now := time.Now()
	s := &Session{
		Id:           uuid.NewString(),
		UserId:       userId,
		AgentId:      agentHint,
		CreatedAt:    now,
		LastActivity: now,
	}
	m.put(s)
	m.activeByUser[userId] = s.Id
	return s.clone()
}

// Get returns a copy of the session without refreshing activity.
func (m *Manager) Get(sessionId string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.get(sessionId)
	if !ok {
		return nil, false
	}
	return s.clone(), true
}

// AddMessage appends to the session log. User-authored messages feed the
// topic and profile extractors; every summaryInterval-th message regenerates
// the summary.
func (m *Manager) AddMessage(sessionId, role, content string, metadata map[string]interface{}) (*Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.get(sessionId)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionId, ErrSessionNotFound)
	}

	msg := Message{
		Id:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
	s.Messages = append(s.Messages, msg)
	s.LastActivity = msg.Timestamp

	if role == RoleUser {
		for _, topic := range m.topics.Extract(content) {
			s.Context.Topics = appendBounded(s.Context.Topics, topic, m.topicCap)
		}
		m.profile.Extract(content, &s.Context.UserProfile)
	}

	if len(s.Messages)%summaryInterval == 0 {
		s.Context.Summary = m.summarize.Summarize(s.Messages)
	}

	m.put(s)
	return &msg, nil
}

// Context returns the bounded recent window plus derived state.
func (m *Manager) Context(sessionId string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.get(sessionId)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionId, ErrSessionNotFound)
	}

	start := 0
	if len(s.Messages) > recentWindow {
		start = len(s.Messages) - recentWindow
	}
	recent := make([]Message, len(s.Messages)-start)
	copy(recent, s.Messages[start:])

	return &Snapshot{
		RecentMessages: recent,
		Summary:        s.Context.Summary,
		Topics:         append([]string(nil), s.Context.Topics...),
		UserProfile:    s.Context.UserProfile,
	}, nil
}

// clone copies the session deeply enough that callers can read it outside
// the mutex: fresh messages, topics, and profile slices. Message metadata
// maps are shared but never mutated after append.
func (s *Session) clone() *Session {
	out := *s
	out.Messages = append([]Message(nil), s.Messages...)
	out.Context.Topics = append([]string(nil), s.Context.Topics...)
	out.Context.UserProfile.Companies = append([]string(nil), s.Context.UserProfile.Companies...)
	out.Context.UserProfile.Intents = append([]string(nil), s.Context.UserProfile.Intents...)
	return &out
}

func (m *Manager) get(sessionId string) (*Session, bool) {
	if x, found := m.store.Get(sessionId); found {
		return x.(*Session), true
	}
	return nil, false
}

func (m *Manager) put(s *Session) {
	// Reset the expiry window on every touch: archival is inactivity-based
	m.store.Set(s.Id, s, cache.DefaultExpiration)
}

// appendBounded keeps the most-recent cap entries, deduplicated by moving a
// re-seen topic to the back.
func appendBounded(list []string, value string, limit int) []string {
	for i, v := range list {
		if v == value {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	list = append(list, value)
	if len(list) > limit {
		list = list[len(list)-limit:]
	}
	return list
}
