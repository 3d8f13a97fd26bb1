package lead

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/solstice-web/sitekit/pkg/constants"
	"github.com/solstice-web/sitekit/pkg/serrors"
)

// Digits plus common separators; deliberately permissive.
var phonePattern = regexp.MustCompile(`^[0-9+\-() ]{10,20}$`)

type CreateDTO struct {
	FullName       string `json:"fullName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	Company        string `json:"company" validate:"required"`
	Message        string `json:"message"`
	SourceFormName string `json:"sourceFormName" validate:"required"`
	SubmissionURL  string `json:"submissionUrl" validate:"required"`
}

func (d *CreateDTO) Normalize() {
	d.FullName = strings.TrimSpace(d.FullName)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Company = strings.TrimSpace(d.Company)
	d.Message = strings.TrimSpace(d.Message)
	d.SourceFormName = strings.TrimSpace(d.SourceFormName)
	d.SubmissionURL = strings.TrimSpace(d.SubmissionURL)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()

	validationErrors := make(serrors.ValidationErrors)
	if errs := constants.Validate.Struct(d); errs != nil {
		validatorErrs := errs.(validator.ValidationErrors)
		for field, err := range serrors.ProcessValidatorErrors(validatorErrs, nil) {
			validationErrors[field] = err
		}
	}

	if _, taken := validationErrors["Phone"]; !taken && !phonePattern.MatchString(d.Phone) {
		validationErrors["Phone"] = "Phone must be 10-20 characters of digits, spaces, +, -, or parentheses"
	}

	return validationErrors, len(validationErrors) == 0
}

func (d *CreateDTO) ToEntity(ipAddress string) Lead {
	return New(
		d.FullName,
		d.Email,
		d.Phone,
		d.Company,
		d.Message,
		d.SourceFormName,
		d.SubmissionURL,
		ipAddress,
	)
}
