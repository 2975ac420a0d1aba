// Package errors defines domain-level errors used throughout the application.
// These errors represent conversion and validation failures and are mapped to appropriate HTTP status codes
// at the API boundary.
//
// NOTE: Important for developers
// When adding a new error here, you MUST consider how it should be handled when returned from API endpoints.
//
// Unmapped errors will default to HTTP 500 Internal Server Error.
//
// Don't forget to:
// 1. Add your error to MapError (internal/api/errors.go)
// 2. Add a test case to TestMapError (internal/api/errors_test.go)
// 3. Consider if the MCP tool handlers (internal/mcptools) need to report it differently
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField indicates that one of the required conversion inputs was absent or empty.
	// Recommended to map to HTTP 400 Bad Request with the generic "Invalid parameters" message.
	ErrMissingField = errors.New("missing field")

	// ErrUnrecognizedBase indicates that a base name is not one of binary, octal, decimal or hexadecimal.
	// Recommended to map to HTTP 400 Bad Request with the generic "Invalid parameters" message.
	ErrUnrecognizedBase = errors.New("unrecognized base")

	// ErrInvalidDigits indicates that the input contains characters outside the source base's digit alphabet.
	// Recommended to map to HTTP 400 Bad Request, surfacing the error message to the caller.
	ErrInvalidDigits = errors.New("invalid digits")

	// ErrOutOfRange indicates that the input is well-formed but its value does not fit in a 64-bit unsigned integer.
	// Recommended to map to HTTP 400 Bad Request, surfacing the error message to the caller.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidParameters indicates that a request payload could not be understood at all,
	// for example malformed JSON or fields of the wrong type.
	// Recommended to map to HTTP 400 Bad Request.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrMethodNotAllowed indicates that an endpoint was called with an HTTP method it does not accept.
	// Recommended to map to HTTP 405 Method Not Allowed.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// InvalidDigitsError reports digits that cannot be read in the named base.
// It wraps ErrInvalidDigits, so errors.Is(err, ErrInvalidDigits) holds.
type InvalidDigitsError struct {
	Digits string
	Base   string
}

// Error includes the offending digits for CLI and MCP callers.
func (e *InvalidDigitsError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid %s number", ErrInvalidDigits, e.Digits, e.Base)
}

// Unwrap returns ErrInvalidDigits.
func (e *InvalidDigitsError) Unwrap() error {
	return ErrInvalidDigits
}

// UserMessage is the short form shown by the web page, e.g. "Invalid octal number".
func (e *InvalidDigitsError) UserMessage() string {
	return fmt.Sprintf("Invalid %s number", e.Base)
}

// UserMessage returns the end-user message carried by err, if any error in its chain provides one.
func UserMessage(err error) (string, bool) {
	var u interface{ UserMessage() string }
	if errors.As(err, &u) {
		return u.UserMessage(), true
	}

	return "", false
}
