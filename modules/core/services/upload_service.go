package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/core/domain/entities/upload"
)

type UploadService struct {
	repo    upload.Repository
	storage upload.Storage
}

func NewUploadService(repo upload.Repository, storage upload.Storage) *UploadService {
	return &UploadService{repo: repo, storage: storage}
}

func (s *UploadService) GetPaginated(ctx context.Context, params *upload.FindParams) ([]upload.Upload, int64, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *UploadService) GetByID(ctx context.Context, id uuid.UUID) (upload.Upload, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores the file content and its metadata row. Content is addressed
// by its sha256, so uploading the same bytes twice returns the existing row
// without writing anything.
func (s *UploadService) Create(ctx context.Context, name string, data []byte) (upload.Upload, error) {
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	existing, err := s.repo.GetByHash(ctx, hash)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, upload.ErrNotFound) {
		return upload.Upload{}, err
	}

	mime := mimetype.Detect(data)
	relPath := path.Join(hash[:2], hash+mime.Extension())
	if err := s.storage.Save(ctx, relPath, data); err != nil {
		return upload.Upload{}, err
	}
	return s.repo.Create(ctx, upload.New(name, relPath, hash, int64(len(data)), mime.String()))
}

func (s *UploadService) Delete(ctx context.Context, id uuid.UUID) error {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.storage.Remove(ctx, entity.Path())
}
