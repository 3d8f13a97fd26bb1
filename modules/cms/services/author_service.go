package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/cms/domain/entities/author"
)

type AuthorService struct {
	repo author.Repository
}

func NewAuthorService(repo author.Repository) *AuthorService {
	return &AuthorService{repo: repo}
}

func (s *AuthorService) GetPaginated(ctx context.Context, params *author.FindParams) ([]author.Author, int64, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *AuthorService) GetByID(ctx context.Context, id uuid.UUID) (author.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AuthorService) GetBySlug(ctx context.Context, slug string) (author.Author, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *AuthorService) Create(ctx context.Context, dto *author.UpsertDTO) (author.Author, error) {
	return s.repo.Create(ctx, dto.ToEntity())
}

func (s *AuthorService) Update(ctx context.Context, id uuid.UUID, dto *author.UpsertDTO) (author.Author, error) {
	return s.repo.Update(ctx, id, dto.ToEntity())
}

func (s *AuthorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
