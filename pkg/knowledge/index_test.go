package knowledge

import (
	"testing"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	return NewIndex(embedding.NewHashProvider(256))
}

func seedTestDocs(t *testing.T, idx *Index) {
	t.Helper()
	docs := []Document{
		{Content: "Seed and Series A funding stages for early stage startups", Metadata: Metadata{Title: "Funding stages", Category: "funding", Source: "site"}},
		{Content: "Our investment thesis focuses on pre-seed ventures in applied AI", Metadata: Metadata{Title: "Thesis", Category: "funding", Source: "site"}},
		{Content: "Term sheets, valuation caps and convertible notes explained", Metadata: Metadata{Title: "Term sheets", Category: "funding", Source: "blog"}},
		{Content: "Our product platform provides portfolio analytics dashboards", Metadata: Metadata{Title: "Platform", Category: "product", Source: "site"}},
		{Content: "Integrations and API access for portfolio companies", Metadata: Metadata{Title: "Integrations", Category: "product", Source: "docs"}},
		{Content: "Contact the partnership team to schedule an introduction call", Metadata: Metadata{Title: "Contact", Category: "contact", Source: "site"}},
	}
	for _, d := range docs {
		_, err := idx.AddDocument(d)
		require.NoError(t, err)
	}
}

func TestSelfSearchRanksFirst(t *testing.T) {
	idx := newTestIndex(t)
	seedTestDocs(t, idx)

	content := "Seed and Series A funding stages for early stage startups"
	results, err := idx.Search(content, SearchOptions{TopK: 3})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "Funding stages", results[0].Document.Metadata.Title)
	assert.Equal(t, 1, results[0].Rank)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-9)
}

func TestAddThenSubstringSearch(t *testing.T) {
	idx := newTestIndex(t)
	seedTestDocs(t, idx)

	id, err := idx.AddDocument(Document{
		Content:  "Meta3 Ventures operates an accelerator program for web3 founders in Tel Aviv",
		Metadata: Metadata{Title: "Accelerator", Category: "company", Source: "site"},
	})
	require.NoError(t, err)

	results, err := idx.Search("accelerator program for web3 founders", SearchOptions{TopK: 5, Threshold: 0.1})
	require.NoError(t, err)

	found := false
	for _, r := range results {
		if r.Document.Id == id {
			found = true
		}
	}
	assert.True(t, found, "freshly added document should surface within topK=5")
}

func TestCategoryFilter(t *testing.T) {
	idx := newTestIndex(t)
	seedTestDocs(t, idx)

	results, err := idx.Search("startup funding stages", SearchOptions{TopK: 3, Category: "funding"})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, r := range results {
		assert.Equal(t, "funding", r.Document.Metadata.Category)
	}
	assert.LessOrEqual(t, len(results), 3)
}

func TestMultiCategorySearch(t *testing.T) {
	idx := newTestIndex(t)
	seedTestDocs(t, idx)

	results, err := idx.MultiCategorySearch("portfolio funding analytics", []string{"funding", "product"}, 4)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(results), 4)
	for i, r := range results {
		assert.Contains(t, []string{"funding", "product"}, r.Document.Metadata.Category)
		assert.Equal(t, i+1, r.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, results[i-1].Similarity, r.Similarity)
		}
	}
}

func TestContextualSearchUsesContext(t *testing.T) {
	idx := newTestIndex(t)
	seedTestDocs(t, idx)

	results, err := idx.ContextualSearch("what are the stages", "startup funding seed series", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "funding", results[0].Document.Metadata.Category)
}

func TestDuplicateIdRejected(t *testing.T) {
	idx := newTestIndex(t)

	id, err := idx.AddDocument(Document{Content: "first", Metadata: Metadata{Category: "company"}})
	require.NoError(t, err)

	_, err = idx.AddDocument(Document{Id: id, Content: "second", Metadata: Metadata{Category: "company"}})
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	idx := newTestIndex(t)
	seedTestDocs(t, idx)

	stats := idx.Stats()
	assert.Equal(t, 6, stats.TotalDocuments)
	assert.Equal(t, 3, stats.Categories["funding"])
	assert.Equal(t, 2, stats.Categories["product"])
	assert.Equal(t, 4, stats.Sources["site"])
}
