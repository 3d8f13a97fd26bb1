package services

import (
	"context"

	"github.com/solstice-web/sitekit/modules/core/domain/entities/setting"
	"github.com/solstice-web/sitekit/pkg/secrets"
)

// SettingService encrypts values on the way into the repository and decrypts
// them on the way out. The repository only ever sees ciphertext.
type SettingService struct {
	repo  setting.Repository
	codec *secrets.Codec
}

func NewSettingService(repo setting.Repository, codec *secrets.Codec) *SettingService {
	return &SettingService{repo: repo, codec: codec}
}

func (s *SettingService) Keys(ctx context.Context) ([]string, error) {
	return s.repo.Keys(ctx)
}

func (s *SettingService) GetByKey(ctx context.Context, key string) (setting.Setting, error) {
	stored, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return setting.Setting{}, err
	}
	plaintext, err := s.codec.Decrypt(stored.Value())
	if err != nil {
		return setting.Setting{}, err
	}
	return setting.Hydrate(stored.Key(), plaintext, stored.UpdatedAt()), nil
}

func (s *SettingService) Upsert(ctx context.Context, key, value string) (setting.Setting, error) {
	ciphertext, err := s.codec.Encrypt(value)
	if err != nil {
		return setting.Setting{}, err
	}
	stored, err := s.repo.Upsert(ctx, setting.New(key, ciphertext))
	if err != nil {
		return setting.Setting{}, err
	}
	return setting.Hydrate(stored.Key(), value, stored.UpdatedAt()), nil
}

func (s *SettingService) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}
