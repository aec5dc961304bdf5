package service

import (
	"context"
	"fmt"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/constant"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/dto"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/logger"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/events"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/knowledge"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/utils"
)

type IKnowledgeService interface {
	AddDocument(ctx context.Context, req *dto.AddDocumentRequest) (*dto.AddDocumentResponse, error)
	Search(req *dto.SearchRequest) ([]dto.SearchResultDTO, error)
	Stats() dto.KnowledgeStatsResponse
	Seed() error
}

// knowledgeService fronts the in-memory index. Oversized documents are split
// into overlapping chunks before indexing so retrieval granularity stays
// paragraph sized.
type knowledgeService struct {
	index        *knowledge.Index
	chunkSize    int
	chunkOverlap int
	publisher    IPublisherService
	logger       logger.ILogger
}

func NewKnowledgeService(index *knowledge.Index, chunkSize, chunkOverlap int, publisher IPublisherService, log logger.ILogger) IKnowledgeService {
	return &knowledgeService{
		index:        index,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		publisher:    publisher,
		logger:       log,
	}
}

func (s *knowledgeService) AddDocument(ctx context.Context, req *dto.AddDocumentRequest) (*dto.AddDocumentResponse, error) {
	chunks := utils.SplitText(req.Content, s.chunkSize, s.chunkOverlap)

	ids := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		title := req.Title
		if len(chunks) > 1 {
			title = fmt.Sprintf("%s (part %d)", req.Title, i+1)
		}
		id, err := s.index.AddDocument(knowledge.Document{
			Content: chunk,
			Metadata: knowledge.Metadata{
				Title:    title,
				Category: req.Category,
				Source:   req.Source,
				Tags:     req.Tags,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to index document chunk %d: %w", i+1, err)
		}
		ids = append(ids, id)
		s.publisher.Publish(ctx, events.NewKnowledgeIndexed(id, req.Category, len(chunks)))
	}

	return &dto.AddDocumentResponse{
		DocumentIds: ids,
		Chunks:      len(chunks),
	}, nil
}

func (s *knowledgeService) Search(req *dto.SearchRequest) ([]dto.SearchResultDTO, error) {
	var (
		results []knowledge.SearchResult
		err     error
	)
	switch len(req.Categories) {
	case 0:
		results, err = s.index.Search(req.Query, knowledge.SearchOptions{TopK: req.TopK, Threshold: req.Threshold})
	case 1:
		results, err = s.index.Search(req.Query, knowledge.SearchOptions{TopK: req.TopK, Threshold: req.Threshold, Category: req.Categories[0]})
	default:
		results, err = s.index.MultiCategorySearch(req.Query, req.Categories, req.TopK)
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.SearchResultDTO, 0, len(results))
	for _, r := range results {
		out = append(out, dto.SearchResultDTO{
			DocumentId: r.Document.Id,
			Title:      r.Document.Metadata.Title,
			Category:   r.Document.Metadata.Category,
			Content:    r.Document.Content,
			Similarity: r.Similarity,
			Rank:       r.Rank,
		})
	}
	return out, nil
}

func (s *knowledgeService) Stats() dto.KnowledgeStatsResponse {
	stats := s.index.Stats()
	return dto.KnowledgeStatsResponse{
		TotalDocuments: stats.TotalDocuments,
		Categories:     stats.Categories,
		Sources:        stats.Sources,
	}
}

// Seed loads the built-in corpus. Called once at startup against the empty
// index.
func (s *knowledgeService) Seed() error {
	for _, doc := range constant.SeedCorpus {
		_, err := s.index.AddDocument(knowledge.Document{
			Content: doc.Content,
			Metadata: knowledge.Metadata{
				Title:    doc.Title,
				Category: doc.Category,
				Source:   doc.Source,
				Tags:     doc.Tags,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to seed document %q: %w", doc.Title, err)
		}
	}
	s.logger.Info("KnowledgeService", "Seed corpus loaded", map[string]interface{}{
		"documents": len(constant.SeedCorpus),
	})
	return nil
}
