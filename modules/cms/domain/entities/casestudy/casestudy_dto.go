package casestudy

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
	Title      string          `json:"title" validate:"required"`
	Slug       string          `json:"slug"`
	Summary    string          `json:"summary"`
	Content    json.RawMessage `json:"content"`
	IndustryID string          `json:"industryId"`
	ClientName string          `json:"clientName"`
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
	if d.IndustryID != "" {
		if _, err := uuid.Parse(d.IndustryID); err != nil {
			validationErrors["IndustryID"] = "IndustryID must be a valid UUID"
		}
	}
	if len(d.Content) > 0 && !json.Valid(d.Content) {
		validationErrors["Content"] = "Content must be a valid JSON document"
	}
	return validationErrors, len(validationErrors) == 0
}

func (d *UpsertDTO) ToEntity() CaseStudy {
	industryID := uuid.Nil
	if d.IndustryID != "" {
		industryID, _ = uuid.Parse(d.IndustryID)
	}
	return New(d.Title, d.Slug, strings.TrimSpace(d.Summary), d.Content, industryID, strings.TrimSpace(d.ClientName))
}
