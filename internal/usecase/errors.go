package usecase

import (
	"errors"
	"fmt"

	"filmes-api/pkg/utils"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// ValidationError lists every field rule a request broke.
// errors.Is(err, ErrValidation) reports true for it.
type ValidationError struct {
	Violations []utils.FieldViolation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), utils.FormatValidationErrors(e.Violations))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(violations []utils.FieldViolation) error {
	return &ValidationError{Violations: violations}
}

func movieNotFound(id int64) error {
	return fmt.Errorf("movie %d: %w", id, ErrNotFound)
}
