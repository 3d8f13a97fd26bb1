package post

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/solstice-web/sitekit/modules/cms/domain/slugs"
	"github.com/solstice-web/sitekit/pkg/constants"
	"github.com/solstice-web/sitekit/pkg/serrors"
)

type UpsertDTO struct {
	Title         string          `json:"title" validate:"required"`
	Slug          string          `json:"slug"`
	Excerpt       string          `json:"excerpt"`
	Content       json.RawMessage `json:"content"`
	AuthorID      string          `json:"authorId" validate:"required"`
	CategoryID    string          `json:"categoryId"`
	CoverUploadID string          `json:"coverUploadId"`
}

func (d *UpsertDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Title = strings.TrimSpace(d.Title)
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
	if d.AuthorID != "" {
		if _, err := uuid.Parse(d.AuthorID); err != nil {
			validationErrors["AuthorID"] = "AuthorID must be a valid UUID"
		}
	}
	for field, raw := range map[string]string{"CategoryID": d.CategoryID, "CoverUploadID": d.CoverUploadID} {
		if raw == "" {
			continue
		}
		if _, err := uuid.Parse(raw); err != nil {
			validationErrors[field] = field + " must be a valid UUID"
		}
	}
	if len(d.Content) > 0 && !json.Valid(d.Content) {
		validationErrors["Content"] = "Content must be a valid JSON document"
	}
	return validationErrors, len(validationErrors) == 0
}

func (d *UpsertDTO) ToEntity() Post {
	authorID, _ := uuid.Parse(d.AuthorID)
	categoryID := uuid.Nil
	if d.CategoryID != "" {
		categoryID, _ = uuid.Parse(d.CategoryID)
	}
	coverID := uuid.Nil
	if d.CoverUploadID != "" {
		coverID, _ = uuid.Parse(d.CoverUploadID)
	}
	return New(d.Title, d.Slug, strings.TrimSpace(d.Excerpt), d.Content, authorID, categoryID, coverID)
}
