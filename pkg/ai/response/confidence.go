package response

import (
	"time"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm"
)

const (
	baseConfidence = 0.8
	minConfidence  = 0.3
	maxConfidence  = 1.0

	fallbackPenalty = 0.2
	fallbackFloor   = 0.5
	fallbackCeiling = 0.6

	slowGenerationCutoff = 10 * time.Second
)

// Score rates a provider-generated response. The base score is adjusted by
// observable signals of answer quality and then clamped to [0.3, 1.0].
func Score(resp *llm.GenerationResponse) float64 {
	score := baseConfidence

	contentLen := len(resp.Content)
	if contentLen < 50 {
		score -= 0.2
	} else if contentLen > 500 {
		score += 0.1
	}

	switch resp.FinishReason {
	case llm.FinishLength:
		score -= 0.1
	case llm.FinishContentFilter:
		score -= 0.3
	}

	if resp.ProcessingTime > slowGenerationCutoff {
		score -= 0.1
	}

	return clamp(score, minConfidence, maxConfidence)
}

// ScoreFallback rates a template-generated response. The template bucket
// supplies its own confidence; the degraded path carries a flat penalty and
// the result stays within [0.5, 0.6]. The ceiling also absorbs float error
// from the subtraction, which otherwise lands a hair above 0.6.
func ScoreFallback(bucketConfidence float64) float64 {
	return clamp(bucketConfidence-fallbackPenalty, fallbackFloor, fallbackCeiling)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
