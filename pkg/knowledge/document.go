package knowledge

import "time"

// Metadata describes where a document came from and how it is categorized.
type Metadata struct {
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Tags      []string  `json:"tags,omitempty"`
}

// Document is one indexed knowledge entry. The embedding is L2-normalized and
// its dimension is fixed for the process lifetime. Documents are never
// implicitly deleted; the index is rebuilt from seed data on restart.
type Document struct {
	Id        string    `json:"id"`
	Content   string    `json:"content"`
	Metadata  Metadata  `json:"metadata"`
	Embedding []float64 `json:"-"`
}

// SearchResult pairs a document with its similarity and 1-based rank within
// a single ranked result set.
type SearchResult struct {
	Document   *Document `json:"document"`
	Similarity float64   `json:"similarity"`
	Rank       int       `json:"rank"`
}

// Stats summarizes the index content.
type Stats struct {
	TotalDocuments int            `json:"total_documents"`
	Categories     map[string]int `json:"categories"`
	Sources        map[string]int `json:"sources"`
}
