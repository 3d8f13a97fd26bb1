package author

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/cms/domain/slugs"
	"github.com/solstice-web/sitekit/pkg/constants"
	"github.com/solstice-web/sitekit/pkg/serrors"
)

type UpsertDTO struct {
	Name           string `json:"name" validate:"required"`
	Slug           string `json:"slug"`
	Bio            string `json:"bio"`
	AvatarUploadID string `json:"avatarUploadId"`
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
	if d.AvatarUploadID != "" {
		if _, err := uuid.Parse(d.AvatarUploadID); err != nil {
			validationErrors["AvatarUploadID"] = "AvatarUploadID must be a valid UUID"
		}
	}
	return validationErrors, len(validationErrors) == 0
}

func (d *UpsertDTO) ToEntity() Author {
	avatarID := uuid.Nil
	if d.AvatarUploadID != "" {
		avatarID, _ = uuid.Parse(d.AvatarUploadID)
	}
	return New(d.Name, d.Slug, strings.TrimSpace(d.Bio), avatarID)
}
