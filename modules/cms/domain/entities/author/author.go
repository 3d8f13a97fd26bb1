package author

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/cms/domain/slugs"
)

var (
	ErrNotFound  = errors.New("author not found")
	ErrSlugTaken = errors.New("author slug already exists")
)

type Author struct {
	id             uuid.UUID
	name           string
	slug           string
	bio            string
	avatarUploadID uuid.UUID
	createdAt      time.Time
	updatedAt      time.Time
}

func New(name, slug, bio string, avatarUploadID uuid.UUID) Author {
	if slug == "" {
		slug = slugs.Slugify(name)
	}
	return Author{
		name:           name,
		slug:           slug,
		bio:            bio,
		avatarUploadID: avatarUploadID,
	}
}

func Hydrate(
	id uuid.UUID,
	name, slug, bio string,
	avatarUploadID uuid.UUID,
	createdAt, updatedAt time.Time,
) Author {
	return Author{
		id:             id,
		name:           name,
		slug:           slug,
		bio:            bio,
		avatarUploadID: avatarUploadID,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (a Author) ID() uuid.UUID             { return a.id }
func (a Author) Name() string              { return a.name }
func (a Author) Slug() string              { return a.slug }
func (a Author) Bio() string               { return a.bio }
func (a Author) AvatarUploadID() uuid.UUID { return a.avatarUploadID }
func (a Author) CreatedAt() time.Time      { return a.createdAt }
func (a Author) UpdatedAt() time.Time      { return a.updatedAt }

type FindParams struct {
	Limit  int
	Offset int
	// Case-insensitive substring match on name.
	Search string
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Author, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Author, error)
	GetBySlug(ctx context.Context, slug string) (Author, error)
	Create(ctx context.Context, a Author) (Author, error)
	Update(ctx context.Context, id uuid.UUID, a Author) (Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
