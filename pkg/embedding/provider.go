package embedding

// Provider defines the interface for generating text embeddings.
// The default implementation is the deterministic hash provider; a real
// embedding service (e.g. Ollama) can be substituted without touching the
// similarity/search algorithm.
type Provider interface {
	// Generate returns an L2-normalized vector for the given text
	Generate(text string) ([]float64, error)

	// Dimension returns the fixed vector dimension for the process lifetime
	Dimension() int
}
