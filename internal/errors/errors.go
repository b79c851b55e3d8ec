package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrCityNotFound is returned when a city is not found.
	ErrCityNotFound = errors.New("city not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrAttractionNotFound is returned when an attraction is not found.
	ErrAttractionNotFound = errors.New("attraction not found")
	// ErrReviewNotFound is returned when a review is not found.
	ErrReviewNotFound = errors.New("review not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRating is returned when a review rating is outside [1,5].
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrMissingParameter is returned when a required query parameter is absent.
	ErrMissingParameter = errors.New("missing required parameter")
)

// PartialCascadeError reports a cascade delete that removed some but not all
// descendants. Remaining lists the ids that survived, keyed by entity kind, so
// the inconsistency can be remediated manually. It is never retried
// automatically: re-running a half-finished cascade would re-trigger
// per-deletion side effects downstream.
type PartialCascadeError struct {
	Parent    string
	Remaining map[string][]string
}

func (e *PartialCascadeError) Error() string {
	parts := make([]string, 0, len(e.Remaining))
	for kind, ids := range e.Remaining {
		parts = append(parts, fmt.Sprintf("%d %s", len(ids), kind))
	}
	return fmt.Sprintf("cascade delete of %s incomplete: %s remain", e.Parent, strings.Join(parts, ", "))
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error     string              `json:"error"`
	Code      string              `json:"code"`
	Remaining map[string][]string `json:"remaining,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Remaining  map[string][]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:     e.Message,
		Code:      e.Code,
		Remaining: e.Remaining,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var cascade *PartialCascadeError
	if errors.As(err, &cascade) {
		httpErr := NewHTTPError(http.StatusInternalServerError, cascade.Error(), "PARTIAL_CASCADE_FAILURE")
		httpErr.Remaining = cascade.Remaining
		return httpErr
	}

	switch {
	case errors.Is(err, ErrCityNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CITY_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrAttractionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ATTRACTION_NOT_FOUND")
	case errors.Is(err, ErrReviewNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REVIEW_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidRating):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RATING")
	case errors.Is(err, ErrMissingParameter):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_PARAMETER")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
