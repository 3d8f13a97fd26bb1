package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/post"
	"github.com/solstice-web/sitekit/modules/cms/richtext"
)

type PostService struct {
	repo post.Repository
}

func NewPostService(repo post.Repository) *PostService {
	return &PostService{repo: repo}
}

func (s *PostService) GetPaginated(ctx context.Context, params *post.FindParams) ([]post.Post, int64, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *PostService) GetByID(ctx context.Context, id uuid.UUID) (post.Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PostService) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (post.Post, error) {
	return s.repo.GetBySlug(ctx, slug, publishedOnly)
}

func (s *PostService) Create(ctx context.Context, dto *post.UpsertDTO) (post.Post, error) {
	return s.repo.Create(ctx, dto.ToEntity())
}

func (s *PostService) Update(ctx context.Context, id uuid.UUID, dto *post.UpsertDTO) (post.Post, error) {
	return s.repo.Update(ctx, id, dto.ToEntity())
}

// SetPublished toggles visibility. The publish timestamp is set on the first
// transition to published and cleared when unpublished.
func (s *PostService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (post.Post, error) {
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

func (s *PostService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// RenderHTML renders the stored rich-text document of a post.
func (s *PostService) RenderHTML(p post.Post) (string, error) {
	return richtext.Render(p.Content())
}
