package service

import (
	"context"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/dto"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/llm/registry"
)

type IProviderService interface {
	Status(ctx context.Context) dto.ProviderStatusResponse
	Refresh(ctx context.Context) dto.ProviderStatusResponse
}

// providerService exposes the health registry for the ops endpoints.
type providerService struct {
	registry *registry.Registry
}

func NewProviderService(reg *registry.Registry) IProviderService {
	return &providerService{registry: reg}
}

func (s *providerService) Status(ctx context.Context) dto.ProviderStatusResponse {
	snapshot := s.registry.Snapshot(ctx)

	providers := make([]dto.ProviderStatusDTO, 0, len(snapshot))
	for _, d := range snapshot {
		providers = append(providers, dto.ProviderStatusDTO{
			Id:           d.Id,
			Name:         d.Name,
			Available:    d.Available,
			Priority:     d.Priority,
			DefaultModel: d.DefaultModel,
			Models:       d.SupportedModels,
		})
	}
	return dto.ProviderStatusResponse{Providers: providers}
}

// Refresh drops the cached probe results and re-probes immediately.
func (s *providerService) Refresh(ctx context.Context) dto.ProviderStatusResponse {
	s.registry.Invalidate()
	return s.Status(ctx)
}
