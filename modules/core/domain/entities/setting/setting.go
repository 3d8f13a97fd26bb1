package setting

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/solstice-web/sitekit/pkg/serrors"
)

var ErrNotFound = errors.New("setting not found")

// Setting is a single key/value pair. The value held here is always the
// plaintext; encryption happens below the repository boundary.
type Setting struct {
	key       string
	value     string
	updatedAt time.Time
}

func New(key, value string) Setting {
	return Setting{key: key, value: value}
}

func Hydrate(key, value string, updatedAt time.Time) Setting {
	return Setting{key: key, value: value, updatedAt: updatedAt}
}

func (s Setting) Key() string          { return s.key }
func (s Setting) Value() string        { return s.value }
func (s Setting) UpdatedAt() time.Time { return s.updatedAt }

// ValidKey reports whether a key is usable as a settings identifier:
// non-empty, lowercase dotted segments like "site.title".
func ValidKey(key string) bool {
	if key == "" || len(key) > 255 {
		return false
	}
	for _, segment := range strings.Split(key, ".") {
		if segment == "" {
			return false
		}
		for _, r := range segment {
			if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '_' && r != '-' {
				return false
			}
		}
	}
	return true
}

type UpsertDTO struct {
	Value string `json:"value"`
}

func (d *UpsertDTO) Ok() (serrors.ValidationErrors, bool) {
	validationErrors := make(serrors.ValidationErrors)
	if len(d.Value) > 64*1024 {
		validationErrors["Value"] = "Value must not exceed 64KiB"
	}
	return validationErrors, len(validationErrors) == 0
}

type Repository interface {
	// Keys returns every stored key in lexical order. Values stay on disk.
	Keys(ctx context.Context) ([]string, error)
	GetByKey(ctx context.Context, key string) (Setting, error)
	// Upsert stores the (already encrypted) value under key.
	Upsert(ctx context.Context, s Setting) (Setting, error)
	Delete(ctx context.Context, key string) error
}
