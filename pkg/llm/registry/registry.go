package registry

import (
	"context"
	"sort"
	"time"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm"

	"github.com/patrickmn/go-cache"
)

// FallbackProviderId identifies the synthetic descriptor that is always
// reported available at the lowest priority so it is only ever chosen last.
const FallbackProviderId = "fallback"

const snapshotKey = "provider_snapshot"

// Registry probes adapter availability and caches the result for a fixed
// window. Cloud providers missing a credential are demoted, not removed.
type Registry struct {
	providers []llm.Provider
	byId      map[string]llm.Provider
	cache     *cache.Cache
	probeTTL  time.Duration
}

func NewRegistry(providers []llm.Provider, probeTTL time.Duration) *Registry {
	if probeTTL <= 0 {
		probeTTL = 5 * time.Minute
	}
	byId := make(map[string]llm.Provider, len(providers))
	for _, p := range providers {
		byId[p.Descriptor().Id] = p
	}
	return &Registry{
		providers: providers,
		byId:      byId,
		cache:     cache.New(probeTTL, 10*time.Minute),
		probeTTL:  probeTTL,
	}
}

// Snapshot returns the probed descriptor list sorted by descending priority,
// ending with the synthetic fallback descriptor. Probe results are cached
// for the registry's TTL window.
func (r *Registry) Snapshot(ctx context.Context) []llm.Descriptor {
	if x, found := r.cache.Get(snapshotKey); found {
		return x.([]llm.Descriptor)
	}

	descriptors := make([]llm.Descriptor, 0, len(r.providers)+1)
	for _, p := range r.providers {
		d := p.Descriptor()
		d.Available = p.IsAvailable(ctx)
		descriptors = append(descriptors, d)
	}

	sort.SliceStable(descriptors, func(i, j int) bool {
		return descriptors[i].Priority > descriptors[j].Priority
	})

	descriptors = append(descriptors, llm.Descriptor{
		Id:        FallbackProviderId,
		Name:      "Deterministic fallback",
		Priority:  0,
		Available: true,
	})

	r.cache.Set(snapshotKey, descriptors, cache.DefaultExpiration)
	return descriptors
}

// Provider looks an adapter up by descriptor id. The synthetic fallback id
// has no adapter and returns false.
func (r *Registry) Provider(id string) (llm.Provider, bool) {
	p, ok := r.byId[id]
	return p, ok
}

// Invalidate drops the cached snapshot so the next Snapshot re-probes.
func (r *Registry) Invalidate() {
	r.cache.Delete(snapshotKey)
}
