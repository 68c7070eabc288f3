package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

// FieldViolation is one failed rule on one field, named by its JSON key.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// required only rejects "", notblank also rejects whitespace-only strings
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// ValidateStruct returns the violations in struct field order, nil when data is valid.
func ValidateStruct(data any) []FieldViolation {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldViolation{{Field: "", Message: err.Error()}}
	}

	violations := make([]FieldViolation, 0, len(validationErrors))
	for _, fe := range validationErrors {
		violations = append(violations, FieldViolation{
			Field:   fe.Field(),
			Message: getErrorMessage(fe),
		})
	}
	return violations
}

// ruleMessages overrides the generic message for a field/tag pair.
var ruleMessages = map[string]string{
	"title.required":    "title is required",
	"title.notblank":    "title is required",
	"genre.required":    "genre is required",
	"genre.notblank":    "genre is required",
	"genre.max":         "genre must not exceed 50 characters",
	"duration.required": "duration is required",
	"duration.min":      "duration must be between 70 and 600 minutes",
	"duration.max":      "duration must be between 70 and 600 minutes",
}

// converts validator errors to human-readable messages
func getErrorMessage(fe validator.FieldError) string {
	if msg, ok := ruleMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		options := strings.ReplaceAll(fe.Param(), " ", ", ")
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), options)
	default:
		return fmt.Sprintf("invalid %s field", fe.Field())
	}
}

// FormatValidationErrors joins violations into a single log-friendly string.
func FormatValidationErrors(violations []FieldViolation) string {
	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return strings.Join(msgs, "; ")
}
