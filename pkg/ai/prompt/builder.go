package prompt

import (
	"fmt"
	"strings"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/knowledge"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/session"
)

// Input carries everything the builder folds into the model messages.
type Input struct {
	SystemPrompt string
	Query        string
	References   []knowledge.SearchResult
	Snapshot     session.Snapshot
	ToolHints    []string
}

// Builder composes the message list sent to a provider. Reference material
// and conversation memory are injected into the system message, the recent
// exchange is replayed as chat turns and the query goes last.
type Builder struct {
	maxReferenceChars int
}

func NewBuilder() *Builder {
	return &Builder{maxReferenceChars: 2400}
}

// Build assembles the ordered message list for a generation request.
func (b *Builder) Build(in Input) []llm.Message {
	var sys strings.Builder
	sys.WriteString(strings.TrimSpace(in.SystemPrompt))

	if ref := b.renderReferences(in.References); ref != "" {
		sys.WriteString("\n\n<reference_material>\n")
		sys.WriteString(ref)
		sys.WriteString("\n</reference_material>\n")
		sys.WriteString("Ground your answer in the reference material above when it is relevant. Do not invent facts about the firm.")
	}

	if memory := renderMemory(in.Snapshot); memory != "" {
		sys.WriteString("\n\n")
		sys.WriteString(memory)
	}

	if len(in.ToolHints) > 0 {
		sys.WriteString("\n\nYou may invoke tools by emitting a directive of the form [[tool:<id> {\"param\":\"value\"}]]. Available tools: ")
		sys.WriteString(strings.Join(in.ToolHints, ", "))
		sys.WriteString(".")
	}

	messages := []llm.Message{{Role: session.RoleSystem, Content: sys.String()}}

	for _, m := range in.Snapshot.RecentMessages {
		if m.Role == session.RoleSystem {
			continue
		}
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	messages = append(messages, llm.Message{Role: session.RoleUser, Content: in.Query})
	return messages
}

func (b *Builder) renderReferences(refs []knowledge.SearchResult) string {
	if len(refs) == 0 {
		return ""
	}
	var sb strings.Builder
	used := 0
	for _, r := range refs {
		entry := fmt.Sprintf("[%d] %s (%s)\n%s\n", r.Rank, r.Document.Metadata.Title, r.Document.Metadata.Category, r.Document.Content)
		if used+len(entry) > b.maxReferenceChars {
			break
		}
		sb.WriteString(entry)
		used += len(entry)
	}
	return strings.TrimSpace(sb.String())
}

func renderMemory(snap session.Snapshot) string {
	var parts []string
	if snap.Summary != "" {
		parts = append(parts, "Conversation so far: "+snap.Summary)
	}
	if len(snap.Topics) > 0 {
		parts = append(parts, "Active topics: "+strings.Join(snap.Topics, ", "))
	}
	if len(snap.UserProfile.Companies) > 0 {
		parts = append(parts, "The visitor mentioned being affiliated with: "+strings.Join(snap.UserProfile.Companies, ", "))
	}
	if len(snap.UserProfile.Intents) > 0 {
		parts = append(parts, "The visitor's interests include: "+strings.Join(snap.UserProfile.Intents, ", "))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n")
}
