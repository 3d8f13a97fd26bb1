package upload

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("upload not found")

// Upload is the metadata row for a file stored on disk. The bytes themselves
// live under the uploads root at Path; Hash is the sha256 of the content and
// doubles as the dedup key.
type Upload struct {
	id        uuid.UUID
	name      string
	path      string
	hash      string
	size      int64
	mimetype  string
	createdAt time.Time
}

func New(name, path, hash string, size int64, mimetype string) Upload {
	return Upload{
		name:     name,
		path:     path,
		hash:     hash,
		size:     size,
		mimetype: mimetype,
	}
}

func Hydrate(
	id uuid.UUID,
	name, path, hash string,
	size int64,
	mimetype string,
	createdAt time.Time,
) Upload {
	return Upload{
		id:        id,
		name:      name,
		path:      path,
		hash:      hash,
		size:      size,
		mimetype:  mimetype,
		createdAt: createdAt,
	}
}

func (u Upload) ID() uuid.UUID        { return u.id }
func (u Upload) Name() string         { return u.name }
func (u Upload) Path() string         { return u.path }
func (u Upload) Hash() string         { return u.hash }
func (u Upload) Size() int64          { return u.size }
func (u Upload) Mimetype() string     { return u.mimetype }
func (u Upload) CreatedAt() time.Time { return u.createdAt }

type FindParams struct {
	Limit  int
	Offset int
	// Case-insensitive substring match on the original file name.
	Search string
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Upload, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Upload, error)
	GetByHash(ctx context.Context, hash string) (Upload, error)
	Create(ctx context.Context, u Upload) (Upload, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Storage persists upload content addressed by a path relative to the
// uploads root.
type Storage interface {
	Save(ctx context.Context, path string, data []byte) error
	Remove(ctx context.Context, path string) error
}
