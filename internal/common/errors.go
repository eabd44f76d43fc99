// File: internal/common/errors.go
package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// APIError represents a standard structure for API errors.
type APIError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError: StatusCode=%d, Code=%s, Message=%s", e.StatusCode, e.Code, e.Message)
}

func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

func (e *APIError) WithDetails(details interface{}) *APIError {
	e.Details = details
	return e
}

var (
	ErrBadRequest         = NewAPIError(http.StatusBadRequest, "BAD_REQUEST", "The request is invalid.")
	ErrNotFound           = NewAPIError(http.StatusNotFound, "NOT_FOUND", "The requested resource could not be found.")
	ErrConflict           = NewAPIError(http.StatusConflict, "CONFLICT", "A conflict occurred with the current state of the resource.")
	ErrInternalServer     = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred on the server.")
	ErrServiceUnavailable = NewAPIError(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "The server is currently unable to handle the request.")
)

const (
	codeInvalidArgument = "INVALID_ARGUMENT"
	codeAlreadyExists   = "ALREADY_EXISTS"
)

// NewInvalidArgumentError reports a structural or format violation detected
// during validation or value-object construction. The message names the
// violated rule.
func NewInvalidArgumentError(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, codeInvalidArgument, message)
}

// NewAlreadyExistsError reports a uniqueness conflict, surfaced distinctly
// from invalid-argument failures so callers can render a specific "account
// exists" response.
func NewAlreadyExistsError(message string) *APIError {
	return NewAPIError(http.StatusConflict, codeAlreadyExists, message)
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsInvalidArgument reports whether err is an INVALID_ARGUMENT condition.
func IsInvalidArgument(err error) bool {
	apiErr, ok := IsAPIError(err)
	return ok && apiErr.Code == codeInvalidArgument
}

// IsAlreadyExists reports whether err is an ALREADY_EXISTS condition.
func IsAlreadyExists(err error) bool {
	apiErr, ok := IsAPIError(err)
	return ok && apiErr.Code == codeAlreadyExists
}

// IsNotFound reports whether err is a NOT_FOUND condition.
func IsNotFound(err error) bool {
	apiErr, ok := IsAPIError(err)
	return ok && apiErr.Code == ErrNotFound.Code
}

func NewValidationAPIError(details interface{}) *APIError {
	return &APIError{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       "VALIDATION_ERROR",
		Message:    "Input validation failed.",
		Details:    details,
	}
}

// FormatValidationErrors converts validator.ValidationErrors into a map.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMap := make(map[string]string)
	for _, e := range errs {
		field := e.Field()
		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("The %s field is required.", strings.ToLower(field))
		case "email":
			message = fmt.Sprintf("The %s field must be a valid email address.", strings.ToLower(field))
		case "min":
			message = fmt.Sprintf("The %s field must be at least %s characters long.", strings.ToLower(field), e.Param())
		case "max":
			message = fmt.Sprintf("The %s field may not be greater than %s characters.", strings.ToLower(field), e.Param())
		case "oneof":
			message = fmt.Sprintf("The %s field must be one of the following values: %s.", strings.ToLower(field), e.Param())
		case "latitude":
			message = fmt.Sprintf("The %s field must be a valid latitude.", strings.ToLower(field))
		case "longitude":
			message = fmt.Sprintf("The %s field must be a valid longitude.", strings.ToLower(field))
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", field, e.Tag())
		}
		errorMap[field] = message
	}
	return errorMap
}
