package category

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/cms/domain/slugs"
	"github.com/solstice-web/sitekit/pkg/constants"
	"github.com/solstice-web/sitekit/pkg/serrors"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrSlugTaken = errors.New("category slug already exists")
)

type Category struct {
	id        uuid.UUID
	name      string
	slug      string
	createdAt time.Time
	updatedAt time.Time
}

func New(name, slug string) Category {
	if slug == "" {
		slug = slugs.Slugify(name)
	}
	return Category{name: name, slug: slug}
}

func Hydrate(id uuid.UUID, name, slug string, createdAt, updatedAt time.Time) Category {
	return Category{id: id, name: name, slug: slug, createdAt: createdAt, updatedAt: updatedAt}
}

func (c Category) ID() uuid.UUID        { return c.id }
func (c Category) Name() string         { return c.name }
func (c Category) Slug() string         { return c.slug }
func (c Category) CreatedAt() time.Time { return c.createdAt }
func (c Category) UpdatedAt() time.Time { return c.updatedAt }

type UpsertDTO struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug"`
}

func (d *UpsertDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Name = strings.TrimSpace(d.Name)
	d.Slug = strings.TrimSpace(d.Slug)

	validationErrors := make(serrors.ValidationErrors)
	if errs := constants.Validate.Struct(d); errs != nil {
		for field, err := range serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors), nil) {
			validationErrors[field] = err
		}
	}
	if d.Slug != "" && !slugs.Valid(d.Slug) {
		validationErrors["Slug"] = "Slug must contain only lowercase letters, digits and hyphens"
	}
	return validationErrors, len(validationErrors) == 0
}

func (d *UpsertDTO) ToEntity() Category {
	return New(d.Name, d.Slug)
}

type FindParams struct {
	Limit  int
	Offset int
	Search string
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Category, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Category, error)
	GetBySlug(ctx context.Context, slug string) (Category, error)
	Create(ctx context.Context, c Category) (Category, error)
	Update(ctx context.Context, id uuid.UUID, c Category) (Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
