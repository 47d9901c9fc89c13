package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-matcher/internal/keyword"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError converts schema and struct validation failures into an ErrValidation
// describing the first offending field.
func validationError(err error) error {
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) && len(schemaErr.Errors) > 0 {
		first := schemaErr.Errors[0]
		return &ErrValidation{Field: first.Field, Message: first.Message}
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return &ErrValidation{Field: first.Namespace(), Message: "failed on " + first.Tag()}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		roleErr       *keyword.UnknownRoleError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &roleErr):
		return http.StatusBadRequest
	case errors.Is(err, ranking.ErrEmptyJobDescription):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
