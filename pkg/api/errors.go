package api

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of an APIError.
type ErrorType string

const (
	ErrorTypeConfiguration  ErrorType = "configuration_error"
	ErrorTypeEmptyResponse  ErrorType = "empty_response"
	ErrorTypeTransport      ErrorType = "transport_error"
	ErrorTypeInvalidRequest ErrorType = "invalid_request"
)

// unknownErrorMessage is used when a failure value carries no message.
const unknownErrorMessage = "unknown error from inference endpoint"

// APIError is the uniform error surfaced by the adapter. Transport-specific
// error shapes never escape past it; the original failure, when there is
// one, is available through Unwrap.
type APIError struct {
	Type    ErrorType `json:"type"`
	Param   string    `json:"param,omitempty"`
	Status  int       `json:"status,omitempty"`
	Message string    `json:"message"`

	cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Type, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying failure, if any.
func (e *APIError) Unwrap() error {
	return e.cause
}

// ErrorResponse wraps an APIError for JSON serialization.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewConfigurationError creates an APIError for a missing or invalid
// credential or endpoint. It is reported before any network I/O.
func NewConfigurationError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeConfiguration,
		Param:   param,
		Message: message,
	}
}

// NewEmptyResponseError creates an APIError for an upstream response
// without choices.
func NewEmptyResponseError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeEmptyResponse,
		Message: message,
	}
}

// NewTransportError creates an APIError for network, HTTP status or
// decoding failures. cause may be nil.
func NewTransportError(message string, cause error) *APIError {
	return &APIError{
		Type:    ErrorTypeTransport,
		Message: message,
		cause:   cause,
	}
}

// NewInvalidRequestError creates an APIError for a request that cannot be
// translated.
func NewInvalidRequestError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidRequest,
		Param:   param,
		Message: message,
	}
}

// WrapError normalizes an arbitrary failure value into an *APIError.
//
// An *APIError (also when wrapped) is returned as is. Any other error
// becomes a transport error carrying its message; a plain string is used
// verbatim as the message. Values that carry no message produce a generic
// fallback message. WrapError(nil) returns nil.
func WrapError(v any) *APIError {
	switch e := v.(type) {
	case nil:
		return nil
	case *APIError:
		return e
	case error:
		var apiErr *APIError
		if errors.As(e, &apiErr) {
			return apiErr
		}
		msg := e.Error()
		if msg == "" {
			msg = unknownErrorMessage
		}
		return NewTransportError(msg, e)
	case string:
		if e == "" {
			return NewTransportError(unknownErrorMessage, nil)
		}
		return NewTransportError(e, nil)
	case fmt.Stringer:
		if msg := e.String(); msg != "" {
			return NewTransportError(msg, nil)
		}
		return NewTransportError(unknownErrorMessage, nil)
	default:
		return NewTransportError(unknownErrorMessage, nil)
	}
}
