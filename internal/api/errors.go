package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	apperrors "github.com/ideaboard/ideaboard-server/internal/errors"
)

// APIError is a custom error type that implements huma.StatusError.
// It maps domain errors to HTTP responses with consistent structure.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to use domain errors.
// Call this after creating the huma.API but before registering routes.
//
// Every failure crossing the transport boundary becomes a coded, structured
// result here; raw backend error strings never leave uninterpreted. The
// message is diagnostic only; clients branch on the code.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		// Check if any of the errors are domain errors
		for _, err := range errs {
			var domainErr *apperrors.Error
			if apperrors.As(err, &domainErr) {
				return &APIError{
					status:  domainErr.HTTPStatus(),
					Code:    string(domainErr.Code),
					Message: domainErr.Message,
					Details: domainErr.Details,
				}
			}
		}

		// Map standard HTTP status codes to our error codes
		code := statusToCode(status)

		return &APIError{
			status:  status,
			Code:    code,
			Message: message,
		}
	}
}

// statusToCode maps HTTP status codes to domain error codes for failures
// that originate in the transport layer (body parse errors, unknown routes).
func statusToCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return string(apperrors.CodeNotFound)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return string(apperrors.CodeValidation)
	case http.StatusServiceUnavailable:
		return string(apperrors.CodeStorageUnavailable)
	case http.StatusBadGateway:
		return string(apperrors.CodeStorageRejected)
	default:
		return string(apperrors.CodeInternal)
	}
}
