package api

import (
	stdErrors "errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/baseconv/baseconv/internal/errors"
)

const (
	// MessageMethodNotAllowed is returned when an endpoint is called with the wrong HTTP method.
	MessageMethodNotAllowed = "Method not allowed"

	// MessageInvalidParameters is returned when a request is missing fields or names an unknown base.
	MessageInvalidParameters = "Invalid parameters"

	// MessageNotFound is returned when no route matches the request path.
	MessageNotFound = "Not found"

	// MessageInternalError is returned for any error that has no explicit mapping.
	MessageInternalError = "Internal server error"
)

var _ huma.StatusError = (*ErrorModel)(nil)

// ErrorModel is the body of every API error response, serialized as {"error": "..."}.
type ErrorModel struct {
	status int

	// Message describes why the request failed.
	Message string `doc:"Reason the request failed" example:"Invalid parameters" json:"error"`
}

// NewError creates an ErrorModel carrying the given HTTP status code.
func NewError(status int, msg string) *ErrorModel {
	return &ErrorModel{
		status:  status,
		Message: msg,
	}
}

// Error implements the error interface.
func (e *ErrorModel) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *ErrorModel) GetStatus() int {
	return e.status
}

// MapError maps application domain errors to appropriate HTTP status codes.
//
// This function is the central place where domain errors from internal/errors are converted to HTTP responses.
// When adding new errors to internal/errors/errors.go, you MUST add them here to prevent them from falling
// through to the default case which returns HTTP 500.
//
// Mapping guidelines:
//   - 400: Client errors (missing fields, unknown bases, digits outside the base alphabet)
//   - 405: Wrong HTTP method
//   - 500: Unexpected internal errors (default case)
//
// Missing fields and unknown base names share the generic "Invalid parameters" message,
// while digit and range failures surface their own message to the caller. Errors that carry a short
// end-user message (see errors.UserMessage) report that instead of their full text.
func MapError(logger hclog.Logger, err error) huma.StatusError {
	switch {
	case stdErrors.Is(err, errors.ErrMissingField),
		stdErrors.Is(err, errors.ErrUnrecognizedBase),
		stdErrors.Is(err, errors.ErrInvalidParameters):
		logger.Debug("Rejected request parameters", "error", err)
		return NewError(http.StatusBadRequest, MessageInvalidParameters)
	case stdErrors.Is(err, errors.ErrInvalidDigits),
		stdErrors.Is(err, errors.ErrOutOfRange):
		if msg, ok := errors.UserMessage(err); ok {
			return NewError(http.StatusBadRequest, msg)
		}
		return NewError(http.StatusBadRequest, err.Error())
	case stdErrors.Is(err, errors.ErrMethodNotAllowed):
		return NewError(http.StatusMethodNotAllowed, MessageMethodNotAllowed)
	default:
		logger.Error("Unexpected error handling conversion request", "error", err)
		return NewError(http.StatusInternalServerError, MessageInternalError)
	}
}
