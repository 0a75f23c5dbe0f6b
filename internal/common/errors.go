package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("forbidden access")
	ErrBadRequest     = errors.New("bad request")
	ErrConflict       = errors.New("resource conflict") // e.g., username already exists
	ErrInternalServer = errors.New("internal server error")
	ErrValidation     = errors.New("validation failed")

	// Local validation failure: a challenge cannot start without topic,
	// difficulty and question type. No upstream call is attempted.
	ErrMissingParameters = errors.New("missing challenge parameters")

	// AI backend failure classes. Unavailable is transient (overload, rate
	// limit) and worth a manual retry; UpstreamError is everything else.
	ErrUpstreamUnavailable = errors.New("AI service unavailable")
	ErrUpstreamError       = errors.New("AI service error")

	// The AI responded, but the payload failed output-shape validation.
	ErrSchemaViolation = errors.New("AI response violated output schema")

	// Document store failure classes.
	ErrPermissionDenied = errors.New("store permission denied")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) || errors.Is(err, ErrPermissionDenied) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) || errors.Is(err, ErrMissingParameters) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrUpstreamUnavailable) || errors.Is(err, ErrStoreUnavailable) {
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, ErrUpstreamError) || errors.Is(err, ErrSchemaViolation) {
		return http.StatusBadGateway
	}

	// Check for pgx specific errors (example for unique constraint)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // Unique violation
			return http.StatusConflict
		}
	}

	return http.StatusInternalServerError
}

// UserMessageFromError renders the human-readable message the UI shows for a
// failure. Transient AI overload gets distinct wording so users know a retry
// is worthwhile.
func UserMessageFromError(err error) string {
	switch {
	case errors.Is(err, ErrUpstreamUnavailable):
		return "The AI service seems to be overloaded or temporarily unavailable. Please try again in a few moments."
	case errors.Is(err, ErrSchemaViolation):
		return "The AI returned a malformed response. Please try again."
	case errors.Is(err, ErrUpstreamError):
		return "The AI service failed to process the request. Please try again."
	case errors.Is(err, ErrMissingParameters):
		return "Challenge parameters not found. Please configure your challenge from the dashboard."
	case errors.Is(err, ErrPermissionDenied):
		return "Saving failed due to store permission issues."
	case errors.Is(err, ErrStoreUnavailable):
		return "The history store is temporarily unavailable."
	default:
		return err.Error()
	}
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
