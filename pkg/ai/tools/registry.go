package tools

import (
	"context"
	"fmt"
	"sync"
)

// Tool is one executable capability the agent can request inline.
// Implementations may perform I/O and must respect the context.
type Tool interface {
	Id() string
	Name() string
	Description() string
	Execute(ctx context.Context, params map[string]interface{}) (string, error)
}

// Registry maps stable tool ids to capabilities. Registration happens at
// bootstrap; lookups at request time take the read lock only.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func (r *Registry) Register(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[tool.Id()]; exists {
		return fmt.Errorf("tool %s already registered", tool.Id())
	}
	r.tools[tool.Id()] = tool
	return nil
}

func (r *Registry) Get(id string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[id]
	return t, ok
}

func (r *Registry) Ids() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.tools))
	for id := range r.tools {
		ids = append(ids, id)
	}
	return ids
}
