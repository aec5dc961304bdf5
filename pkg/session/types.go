package session

import "time"

// Roles mirrored from the generation layer
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one append-only conversation entry. Never reordered or mutated
// after append.
type Message struct {
	Id        string                 `json:"id"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// UserProfile accumulates lightweight signals extracted from user messages.
type UserProfile struct {
	Companies []string `json:"companies,omitempty"`
	Intents   []string `json:"intents,omitempty"`
}

// Context is the derived conversational state handed to the prompt builder.
type Context struct {
	Topics      []string    `json:"topics"`
	UserProfile UserProfile `json:"user_profile"`
	Summary     string      `json:"summary"`
}

// Session is the per-conversation state. The Manager owns the one live
// object per id; everything it hands out is a clone, and all mutation goes
// through the Manager.
type Session struct {
	Id           string    `json:"id"`
	UserId       string    `json:"user_id"`
	AgentId      string    `json:"agent_id"`
	Messages     []Message `json:"messages"`
	Context      Context   `json:"context"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// Snapshot is what Context() returns to the pipeline: the bounded recent
// window plus derived state.
type Snapshot struct {
	RecentMessages []Message   `json:"recent_messages"`
	Summary        string      `json:"summary"`
	Topics         []string    `json:"topics"`
	UserProfile    UserProfile `json:"user_profile"`
}
