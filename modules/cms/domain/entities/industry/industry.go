package industry

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
	ErrNotFound  = errors.New("industry not found")
	ErrSlugTaken = errors.New("industry slug already exists")
)

type Industry struct {
	id          uuid.UUID
	name        string
	slug        string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

func New(name, slug, description string) Industry {
	if slug == "" {
		slug = slugs.Slugify(name)
	}
	return Industry{name: name, slug: slug, description: description}
}

func Hydrate(id uuid.UUID, name, slug, description string, createdAt, updatedAt time.Time) Industry {
	return Industry{
		id:          id,
		name:        name,
		slug:        slug,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (i Industry) ID() uuid.UUID        { return i.id }
func (i Industry) Name() string         { return i.name }
func (i Industry) Slug() string         { return i.slug }
func (i Industry) Description() string  { return i.description }
func (i Industry) CreatedAt() time.Time { return i.createdAt }
func (i Industry) UpdatedAt() time.Time { return i.updatedAt }

type UpsertDTO struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
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

func (d *UpsertDTO) ToEntity() Industry {
	return New(d.Name, d.Slug, strings.TrimSpace(d.Description))
}

type FindParams struct {
	Limit  int
	Offset int
	Search string
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Industry, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Industry, error)
	GetBySlug(ctx context.Context, slug string) (Industry, error)
	Create(ctx context.Context, i Industry) (Industry, error)
	Update(ctx context.Context, id uuid.UUID, i Industry) (Industry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
