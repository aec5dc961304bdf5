package orchestrator

import (
	"context"
	"time"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/logger"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm/registry"
)

// DefaultAttemptTimeout is the hard deadline attached to every provider
// invocation so a hung backend cannot stall the fallback chain.
const DefaultAttemptTimeout = 15 * time.Second

// Options tunes a single generation call.
type Options struct {
	Temperature       float64
	MaxTokens         int
	TopP              float64
	PreferredProvider string
}

// Result is what the orchestrator hands back to the pipeline. Degraded marks
// the deterministic fallback path; FallbackConfidence then carries the
// generator's own confidence for the scorer.
type Result struct {
	Response           *llm.GenerationResponse
	Degraded           bool
	DegradedReason     string
	FallbackConfidence float64
}

// Orchestrator selects a provider from the health registry, retries across
// the priority-ordered candidate list on failure, and as a last resort
// invokes the pure template generator. Generate never fails.
type Orchestrator struct {
	registry       *registry.Registry
	fallback       *FallbackGenerator
	attemptTimeout time.Duration
	logger         logger.ILogger
}

func NewOrchestrator(reg *registry.Registry, attemptTimeout time.Duration, log logger.ILogger) *Orchestrator {
	if attemptTimeout <= 0 {
		attemptTimeout = DefaultAttemptTimeout
	}
	return &Orchestrator{
		registry:       reg,
		fallback:       NewFallbackGenerator(),
		attemptTimeout: attemptTimeout,
		logger:         log,
	}
}

// Generate runs the fallback chain for the given model and messages.
// A single adapter failure moves immediately to the next candidate; there is
// no same-provider retry. Exhausting the chain falls through to the
// deterministic generator, which cannot fail.
func (o *Orchestrator) Generate(ctx context.Context, model string, messages []llm.Message, opts Options) *Result {
	applyDefaults(&opts)

	snapshot := o.registry.Snapshot(ctx)
	candidates := orderCandidates(snapshot, opts.PreferredProvider)

	var lastReason string
	for _, d := range candidates {
		if !d.Available {
			continue
		}

		provider, ok := o.registry.Provider(d.Id)
		if !ok {
			continue
		}

		// Substitute the provider's own default model when the requested
		// one isn't offered.
		attemptModel := model
		if attemptModel == "" || !d.Supports(attemptModel) {
			attemptModel = d.DefaultModel
		}

		resp, err := o.attempt(ctx, provider, attemptModel, messages, opts)
		if err != nil {
			lastReason = err.Error()
			o.logger.Warn("Orchestrator", "Provider attempt failed, advancing chain", map[string]interface{}{
				"provider": d.Id,
				"model":    attemptModel,
				"error":    err.Error(),
			})
			continue
		}

		return &Result{Response: resp}
	}

	// Chain exhausted: deterministic template generation.
	if lastReason == "" {
		lastReason = llm.ErrAllProvidersExhausted.Error()
	}
	o.logger.Warn("Orchestrator", "All providers exhausted, using deterministic fallback", map[string]interface{}{
		"reason": lastReason,
	})

	resp, confidence := o.fallback.Generate(messages)
	return &Result{
		Response:           resp,
		Degraded:           true,
		DegradedReason:     lastReason,
		FallbackConfidence: confidence,
	}
}

func (o *Orchestrator) attempt(ctx context.Context, provider llm.Provider, model string, messages []llm.Message, opts Options) (*llm.GenerationResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, o.attemptTimeout)
	defer cancel()

	return provider.Generate(attemptCtx, &llm.GenerationRequest{
		Model:       model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		TopP:        opts.TopP,
	})
}

func applyDefaults(opts *Options) {
	if opts.Temperature <= 0 {
		opts.Temperature = 0.7
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1000
	}
	if opts.TopP <= 0 {
		opts.TopP = 0.9
	}
}

// orderCandidates keeps the snapshot's descending-priority order, moving the
// preferred provider (when named) to the front. The synthetic fallback
// descriptor is excluded; the generator handles that path directly.
func orderCandidates(snapshot []llm.Descriptor, preferred string) []llm.Descriptor {
	ordered := make([]llm.Descriptor, 0, len(snapshot))

	if preferred != "" {
		for _, d := range snapshot {
			if d.Id == preferred && d.Id != registry.FallbackProviderId {
				ordered = append(ordered, d)
				break
			}
		}
	}

	for _, d := range snapshot {
		if d.Id == registry.FallbackProviderId || d.Id == preferred {
			continue
		}
		ordered = append(ordered, d)
	}
	return ordered
}
