package knowledge

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/embedding"

	"github.com/google/uuid"
)

// Default search parameters
const (
	DefaultTopK                = 5
	DefaultThreshold           = 0.1
	DefaultContextualThreshold = 0.15
)

// SearchOptions tunes a single search call.
type SearchOptions struct {
	TopK      int
	Threshold float64
	Category  string
}

// Index is the in-memory document store with cosine-similarity search.
// All mutation goes through AddDocument under a single write lock; searches
// take the read lock only.
type Index struct {
	mu       sync.RWMutex
	docs     map[string]*Document
	order    []string // insertion order, for stable iteration
	embedder embedding.Provider
}

func NewIndex(embedder embedding.Provider) *Index {
	return &Index{
		docs:     make(map[string]*Document),
		embedder: embedder,
	}
}

// AddDocument embeds the content and stores the document, assigning an id
// when none is given. Ids are unique; re-adding an existing id is rejected.
func (idx *Index) AddDocument(doc Document) (string, error) {
	if strings.TrimSpace(doc.Content) == "" {
		return "", fmt.Errorf("document content is empty")
	}
	if doc.Id == "" {
		doc.Id = uuid.NewString()
	}
	if doc.Metadata.Timestamp.IsZero() {
		doc.Metadata.Timestamp = time.Now()
	}

	vec, err := idx.embedder.Generate(doc.Content)
	if err != nil {
		return "", fmt.Errorf("embed document: %w", err)
	}
	doc.Embedding = vec

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.docs[doc.Id]; exists {
		return "", fmt.Errorf("document id %s already indexed", doc.Id)
	}

	stored := doc
	idx.docs[doc.Id] = &stored
	idx.order = append(idx.order, doc.Id)
	return doc.Id, nil
}

// Search ranks documents by cosine similarity against the query embedding.
// Results below the threshold are excluded; the remainder is sorted
// descending and truncated to TopK with 1-based ranks.
func (idx *Index) Search(query string, opts SearchOptions) ([]SearchResult, error) {
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}

	queryVec, err := idx.embedder.Generate(query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	idx.mu.RLock()
	var results []SearchResult
	for _, id := range idx.order {
		doc := idx.docs[id]
		if opts.Category != "" && doc.Metadata.Category != opts.Category {
			continue
		}
		sim := dot(queryVec, doc.Embedding)
		if sim < opts.Threshold {
			continue
		}
		results = append(results, SearchResult{Document: doc, Similarity: sim})
	}
	idx.mu.RUnlock()

	sortAndRank(results)
	if len(results) > opts.TopK {
		results = results[:opts.TopK]
	}
	return results, nil
}

// MultiCategorySearch runs the query independently per category, concatenates,
// re-sorts by similarity and truncates to a single global topK. Per-category
// thresholds apply before the merge, which can under-represent a category
// whose best matches individually score below threshold.
func (idx *Index) MultiCategorySearch(query string, categories []string, topK int) ([]SearchResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	var merged []SearchResult
	for _, category := range categories {
		partial, err := idx.Search(query, SearchOptions{TopK: topK, Category: category})
		if err != nil {
			return nil, err
		}
		merged = append(merged, partial...)
	}

	sortAndRank(merged)
	if len(merged) > topK {
		merged = merged[:topK]
	}
	return merged, nil
}

// ContextualSearch concatenates the query with conversation context before
// embedding and applies a slightly stricter default threshold.
func (idx *Index) ContextualSearch(query, context string, topK int) ([]SearchResult, error) {
	combined := query
	if strings.TrimSpace(context) != "" {
		combined = query + " " + context
	}
	return idx.Search(combined, SearchOptions{TopK: topK, Threshold: DefaultContextualThreshold})
}

// Get returns a document by id.
func (idx *Index) Get(id string) (*Document, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	doc, ok := idx.docs[id]
	return doc, ok
}

// Stats reports document, category and source counts.
func (idx *Index) Stats() Stats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	stats := Stats{
		TotalDocuments: len(idx.docs),
		Categories:     make(map[string]int),
		Sources:        make(map[string]int),
	}
	for _, doc := range idx.docs {
		stats.Categories[doc.Metadata.Category]++
		stats.Sources[doc.Metadata.Source]++
	}
	return stats
}

// dot assumes both vectors are L2-normalized, so the dot product equals the
// cosine similarity. A dimension mismatch yields 0.
func dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func sortAndRank(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}
