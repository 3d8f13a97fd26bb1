package casestudy

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/cms/domain/slugs"
)

var (
	ErrNotFound  = errors.New("case study not found")
	ErrSlugTaken = errors.New("case study slug already exists")
)

type CaseStudy struct {
	id          uuid.UUID
	title       string
	slug        string
	summary     string
	content     json.RawMessage
	industryID  uuid.UUID
	clientName  string
	published   bool
	publishedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func New(
	title, slug, summary string,
	content json.RawMessage,
	industryID uuid.UUID,
	clientName string,
) CaseStudy {
	if slug == "" {
		slug = slugs.Slugify(title)
	}
	return CaseStudy{
		title:      title,
		slug:       slug,
		summary:    summary,
		content:    content,
		industryID: industryID,
		clientName: clientName,
	}
}

func Hydrate(
	id uuid.UUID,
	title, slug, summary string,
	content json.RawMessage,
	industryID uuid.UUID,
	clientName string,
	published bool,
	publishedAt *time.Time,
	createdAt, updatedAt time.Time,
) CaseStudy {
	return CaseStudy{
		id:          id,
		title:       title,
		slug:        slug,
		summary:     summary,
		content:     content,
		industryID:  industryID,
		clientName:  clientName,
		published:   published,
		publishedAt: publishedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (c CaseStudy) ID() uuid.UUID            { return c.id }
func (c CaseStudy) Title() string            { return c.title }
func (c CaseStudy) Slug() string             { return c.slug }
func (c CaseStudy) Summary() string          { return c.summary }
func (c CaseStudy) Content() json.RawMessage { return c.content }
func (c CaseStudy) IndustryID() uuid.UUID    { return c.industryID }
func (c CaseStudy) ClientName() string       { return c.clientName }
func (c CaseStudy) Published() bool          { return c.published }
func (c CaseStudy) PublishedAt() *time.Time  { return c.publishedAt }
func (c CaseStudy) CreatedAt() time.Time     { return c.createdAt }
func (c CaseStudy) UpdatedAt() time.Time     { return c.updatedAt }

type FindParams struct {
	Limit         int
	Offset        int
	Search        string
	PublishedOnly bool
	IndustryID    uuid.UUID
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]CaseStudy, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (CaseStudy, error)
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (CaseStudy, error)
	Create(ctx context.Context, c CaseStudy) (CaseStudy, error)
	Update(ctx context.Context, id uuid.UUID, c CaseStudy) (CaseStudy, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool, publishedAt *time.Time) (CaseStudy, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
