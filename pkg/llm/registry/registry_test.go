package registry

import (
	"context"
	"testing"
	"time"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	descriptor llm.Descriptor
	available  bool
	probes     int
}

func (f *fakeProvider) Descriptor() llm.Descriptor { return f.descriptor }

func (f *fakeProvider) IsAvailable(ctx context.Context) bool {
	f.probes++
	return f.available
}

func (f *fakeProvider) Generate(ctx context.Context, req *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	return nil, llm.ErrProviderUnavailable
}

func TestSnapshotOrderAndFallbackLast(t *testing.T) {
	low := &fakeProvider{descriptor: llm.Descriptor{Id: "low", Priority: 10}, available: true}
	high := &fakeProvider{descriptor: llm.Descriptor{Id: "high", Priority: 30}, available: true}
	keyless := &fakeProvider{descriptor: llm.Descriptor{Id: "cloud", Priority: 20, RequiresKey: true}, available: false}

	reg := NewRegistry([]llm.Provider{low, high, keyless}, time.Minute)
	snapshot := reg.Snapshot(context.Background())

	require.Len(t, snapshot, 4)
	assert.Equal(t, "high", snapshot[0].Id)
	assert.Equal(t, "cloud", snapshot[1].Id)
	assert.Equal(t, "low", snapshot[2].Id)

	// Keyless cloud provider is demoted, not removed
	assert.False(t, snapshot[1].Available)

	// Synthetic fallback always reported available at the lowest priority
	last := snapshot[len(snapshot)-1]
	assert.Equal(t, FallbackProviderId, last.Id)
	assert.True(t, last.Available)
	assert.Equal(t, 0, last.Priority)
}

func TestSnapshotCachesProbes(t *testing.T) {
	p := &fakeProvider{descriptor: llm.Descriptor{Id: "p", Priority: 10}, available: true}
	reg := NewRegistry([]llm.Provider{p}, time.Minute)

	reg.Snapshot(context.Background())
	reg.Snapshot(context.Background())
	assert.Equal(t, 1, p.probes, "second snapshot must be served from cache")

	reg.Invalidate()
	reg.Snapshot(context.Background())
	assert.Equal(t, 2, p.probes)
}

func TestProviderLookup(t *testing.T) {
	p := &fakeProvider{descriptor: llm.Descriptor{Id: "p", Priority: 10}}
	reg := NewRegistry([]llm.Provider{p}, time.Minute)

	got, ok := reg.Provider("p")
	assert.True(t, ok)
	assert.Equal(t, p, got)

	_, ok = reg.Provider(FallbackProviderId)
	assert.False(t, ok)
}
