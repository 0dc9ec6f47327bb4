package askpablos

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind discriminates the failure categories this library can surface.
type ErrorKind int

const (
	// KindConfiguration marks invalid client construction, such as missing
	// credentials. Raised before the client exists; never worth retrying.
	KindConfiguration ErrorKind = iota
	// KindValidation marks invalid parameter combinations, rejected before
	// any network I/O. The caller has to fix the request.
	KindValidation
	// KindConnection marks a failure to complete a round trip with the proxy
	// endpoint (DNS, TLS, timeout, reset). The caller may choose to retry.
	KindConnection
	// KindResponse marks a non-success status or malformed reply from the
	// proxy endpoint itself. A failing status on the target site is not a
	// response error, it is reported through ResponseData.StatusCode.
	KindResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindValidation:
		return "validation"
	case KindConnection:
		return "connection"
	case KindResponse:
		return "response"
	}
	return "unknown"
}

// Error is the single error type returned by this library. Callers can match
// the whole family with errors.As and branch on Kind, or use the IsXxx
// helpers for a specific category.
type Error struct {
	Kind    ErrorKind
	Message string

	// Options holds the offending option renderings of a validation error,
	// in the order they were checked.
	Options []string
	// StatusCode carries the proxy endpoint's status for response errors.
	StatusCode int

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("askpablos: %s: %s: %s", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("askpablos: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func newConfigurationError(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

func newValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// newBrowserRequiredError reports every browser-dependent option that was
// enabled without browser mode, rendered the way the service documents them.
func newBrowserRequiredError(options []string) *Error {
	return &Error{
		Kind: KindValidation,
		Message: fmt.Sprintf(
			"browser=True is required for these actions: %s",
			strings.Join(options, ", "),
		),
		Options: options,
	}
}

func newConnectionError(message string, cause error) *Error {
	return &Error{Kind: KindConnection, Message: message, cause: cause}
}

func newResponseError(statusCode int, message string) *Error {
	return &Error{Kind: KindResponse, Message: message, StatusCode: statusCode}
}

func hasKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return hasKind(err, KindConfiguration) }

// IsValidation reports whether err is a parameter validation error.
func IsValidation(err error) bool { return hasKind(err, KindValidation) }

// IsConnection reports whether err is a connection error.
func IsConnection(err error) bool { return hasKind(err, KindConnection) }

// IsResponse reports whether err is a proxy endpoint response error.
func IsResponse(err error) bool { return hasKind(err, KindResponse) }
