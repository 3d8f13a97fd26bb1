package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/industry"
)

type IndustryService struct {
	repo industry.Repository
}

func NewIndustryService(repo industry.Repository) *IndustryService {
	return &IndustryService{repo: repo}
}

func (s *IndustryService) GetPaginated(ctx context.Context, params *industry.FindParams) ([]industry.Industry, int64, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *IndustryService) GetByID(ctx context.Context, id uuid.UUID) (industry.Industry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *IndustryService) GetBySlug(ctx context.Context, slug string) (industry.Industry, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *IndustryService) Create(ctx context.Context, dto *industry.UpsertDTO) (industry.Industry, error) {
	return s.repo.Create(ctx, dto.ToEntity())
}

func (s *IndustryService) Update(ctx context.Context, id uuid.UUID, dto *industry.UpsertDTO) (industry.Industry, error) {
	return s.repo.Update(ctx, id, dto.ToEntity())
}

func (s *IndustryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
