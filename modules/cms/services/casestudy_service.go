package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/casestudy"
	"github.com/solstice-web/sitekit/modules/cms/richtext"
)

type CaseStudyService struct {
	repo casestudy.Repository
}

func NewCaseStudyService(repo casestudy.Repository) *CaseStudyService {
	return &CaseStudyService{repo: repo}
}

func (s *CaseStudyService) GetPaginated(ctx context.Context, params *casestudy.FindParams) ([]casestudy.CaseStudy, int64, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *CaseStudyService) GetByID(ctx context.Context, id uuid.UUID) (casestudy.CaseStudy, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CaseStudyService) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (casestudy.CaseStudy, error) {
	return s.repo.GetBySlug(ctx, slug, publishedOnly)
}

func (s *CaseStudyService) Create(ctx context.Context, dto *casestudy.UpsertDTO) (casestudy.CaseStudy, error) {
	return s.repo.Create(ctx, dto.ToEntity())
}

func (s *CaseStudyService) Update(ctx context.Context, id uuid.UUID, dto *casestudy.UpsertDTO) (casestudy.CaseStudy, error) {
	return s.repo.Update(ctx, id, dto.ToEntity())
}

func (s *CaseStudyService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (casestudy.CaseStudy, error) {
	var publishedAt *time.Time
	if published {
		now := time.Now().UTC()
		publishedAt = &now
		if current, err := s.repo.GetByID(ctx, id); err == nil && current.PublishedAt() != nil {
			publishedAt = current.PublishedAt()
		}
	}
	return s.repo.SetPublished(ctx, id, published, publishedAt)
}

func (s *CaseStudyService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *CaseStudyService) RenderHTML(c casestudy.CaseStudy) (string, error) {
	return richtext.Render(c.Content())
}
