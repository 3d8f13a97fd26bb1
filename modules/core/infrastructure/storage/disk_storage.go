package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"

	"github.com/solstice-web/sitekit/modules/core/domain/entities/upload"
)

// DiskStorage writes upload content under a single root directory. Paths are
// always relative; anything trying to escape the root is rejected.
type DiskStorage struct {
	root string
}

func NewDiskStorage(root string) upload.Storage {
	return &DiskStorage{root: root}
}

func (s *DiskStorage) resolve(path string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", errors.Errorf("storage: invalid path %q", path)
	}
	return filepath.Join(s.root, cleaned), nil
}

func (s *DiskStorage) Save(_ context.Context, path string, data []byte) error {
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrap(err, "storage: mkdir")
	}
	return os.WriteFile(target, data, 0o644)
}

func (s *DiskStorage) Remove(_ context.Context, path string) error {
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "storage: remove")
	}
	return nil
}
