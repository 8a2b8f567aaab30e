package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/punchdeck/attendance-backend-go/internal/domain/directory"
	"github.com/punchdeck/attendance-backend-go/internal/domain/punch"
	"github.com/punchdeck/attendance-backend-go/internal/domain/summary"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Structural parse failures carry diagnostics worth forwarding
	var parseErr *punch.ParseError
	if errors.As(err, &parseErr) {
		UnprocessableEntity(w, parseErr.Error(), nil)
		return
	}
	var columnErr *punch.ColumnDetectionError
	if errors.As(err, &columnErr) {
		UnprocessableEntity(w, "Could not detect user-id and timestamp columns", map[string]string{
			"detected_columns": strings.Join(columnErr.Columns, ", "),
		})
		return
	}

	switch {
	// Punch domain errors
	case errors.Is(err, punch.ErrEmptyInput):
		BadRequest(w, "Punch log input is empty", nil)
	case errors.Is(err, punch.ErrDeviceFetch):
		ServiceUnavailable(w, "Could not reach the attendance terminal")

	// Summary domain errors
	case errors.Is(err, summary.ErrNoDataFound):
		NotFound(w, "No records found for the selected dates")
	case errors.Is(err, summary.ErrNoSourceConfigured):
		ServiceUnavailable(w, "No attendance terminal is configured")

	// Directory domain errors
	case errors.Is(err, directory.ErrDirectoryLoad):
		ServiceUnavailable(w, "Employee directory is unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
