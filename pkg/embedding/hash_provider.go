package embedding

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultDimension is the bucket count used when no dimension is configured.
const DefaultDimension = 384

// HashProvider is a deterministic bag-of-words embedder: each token is hashed
// into one of a fixed number of buckets weighted by term frequency, and the
// resulting vector is L2-normalized. It is a stand-in for a trained embedding
// model, not a semantic encoder.
type HashProvider struct {
	dimension int
}

var _ Provider = &HashProvider{}

func NewHashProvider(dimension int) *HashProvider {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &HashProvider{dimension: dimension}
}

func (p *HashProvider) Dimension() int {
	return p.dimension
}

func (p *HashProvider) Generate(text string) ([]float64, error) {
	vec := make([]float64, p.dimension)

	for _, token := range Tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(token))
		bucket := int(h.Sum32()) % p.dimension
		if bucket < 0 {
			bucket += p.dimension
		}
		vec[bucket]++
	}

	return NormalizeVector(vec), nil
}

// Tokenize lowercases and splits on any non-alphanumeric rune.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// NormalizeVector normalizes a vector to unit length (magnitude = 1).
// Cosine similarity between normalized vectors reduces to a dot product.
func NormalizeVector(vec []float64) []float64 {
	var magnitude float64
	for _, v := range vec {
		magnitude += v * v
	}
	magnitude = math.Sqrt(magnitude)

	// Avoid division by zero
	if magnitude == 0 {
		return vec
	}

	normalized := make([]float64, len(vec))
	for i, v := range vec {
		normalized[i] = v / magnitude
	}
	return normalized
}
