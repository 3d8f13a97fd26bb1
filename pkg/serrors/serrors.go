package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Base is a coded error shared across API namespaces.
type Base struct {
	Code    string
	Message string
}

func (e *Base) Error() string {
	return e.Message
}

func NewError(code, message string) *Base {
	return &Base{Code: code, Message: message}
}

// ValidationErrors maps struct field names to human-readable messages.
type ValidationErrors map[string]string

func (v ValidationErrors) First(fields ...string) string {
	for _, f := range fields {
		if msg, ok := v[f]; ok && msg != "" {
			return msg
		}
	}
	for _, msg := range v {
		if msg != "" {
			return msg
		}
	}
	return ""
}

// ProcessValidatorErrors converts go-playground validator errors into field
// messages. label maps a struct field name to its user-facing name; when it
// returns "" the field name itself is used.
func ProcessValidatorErrors(errs validator.ValidationErrors, label func(field string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		name := fe.Field()
		if label != nil {
			if l := label(name); l != "" {
				name = l
			}
		}
		out[fe.Field()] = messageFor(name, fe)
	}
	return out
}

func messageFor(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", name)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
