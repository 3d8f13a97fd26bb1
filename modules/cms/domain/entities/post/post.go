package post

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/cms/domain/slugs"
)

var (
	ErrNotFound  = errors.New("post not found")
	ErrSlugTaken = errors.New("post slug already exists")
)

// Post is a blog entry. Content is a rich-text JSON document stored verbatim;
// rendering to HTML happens on the public read path only.
type Post struct {
	id            uuid.UUID
	title         string
	slug          string
	excerpt       string
	content       json.RawMessage
	authorID      uuid.UUID
	categoryID    uuid.UUID
	coverUploadID uuid.UUID
	published     bool
	publishedAt   *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func New(
	title, slug, excerpt string,
	content json.RawMessage,
	authorID, categoryID, coverUploadID uuid.UUID,
) Post {
	if slug == "" {
		slug = slugs.Slugify(title)
	}
	return Post{
		title:         title,
		slug:          slug,
		excerpt:       excerpt,
		content:       content,
		authorID:      authorID,
		categoryID:    categoryID,
		coverUploadID: coverUploadID,
	}
}

func Hydrate(
	id uuid.UUID,
	title, slug, excerpt string,
	content json.RawMessage,
	authorID, categoryID, coverUploadID uuid.UUID,
	published bool,
	publishedAt *time.Time,
	createdAt, updatedAt time.Time,
) Post {
	return Post{
		id:            id,
		title:         title,
		slug:          slug,
		excerpt:       excerpt,
		content:       content,
		authorID:      authorID,
		categoryID:    categoryID,
		coverUploadID: coverUploadID,
		published:     published,
		publishedAt:   publishedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p Post) ID() uuid.UUID            { return p.id }
func (p Post) Title() string            { return p.title }
func (p Post) Slug() string             { return p.slug }
func (p Post) Excerpt() string          { return p.excerpt }
func (p Post) Content() json.RawMessage { return p.content }
func (p Post) AuthorID() uuid.UUID      { return p.authorID }
func (p Post) CategoryID() uuid.UUID    { return p.categoryID }
func (p Post) CoverUploadID() uuid.UUID { return p.coverUploadID }
func (p Post) Published() bool          { return p.published }
func (p Post) PublishedAt() *time.Time  { return p.publishedAt }
func (p Post) CreatedAt() time.Time     { return p.createdAt }
func (p Post) UpdatedAt() time.Time     { return p.updatedAt }

type FindParams struct {
	Limit  int
	Offset int
	// Case-insensitive substring match on title.
	Search string
	// Only rows with published = true. Set on every public read path.
	PublishedOnly bool
	CategoryID    uuid.UUID
	AuthorID      uuid.UUID
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Post, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	// GetBySlug honors publishedOnly so public handlers cannot leak drafts.
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (Post, error)
	Create(ctx context.Context, p Post) (Post, error)
	Update(ctx context.Context, id uuid.UUID, p Post) (Post, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool, publishedAt *time.Time) (Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
