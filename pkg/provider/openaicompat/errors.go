package openaicompat

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rhuss/hfbridge/pkg/api"
)

// MapHTTPError converts an HTTP response with a non-2xx status code into a
// transport APIError. The endpoint's own error message is preferred when
// the body carries one.
func MapHTTPError(resp *http.Response) *api.APIError {
	message := ExtractErrorMessage(resp.Body)

	if message == "" {
		switch {
		case resp.StatusCode == http.StatusBadRequest:
			message = "invalid request to inference endpoint"
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			message = "inference endpoint authentication failed"
		case resp.StatusCode == http.StatusNotFound:
			message = "inference endpoint not found"
		case resp.StatusCode == http.StatusTooManyRequests:
			message = "inference endpoint rate limit exceeded"
		case resp.StatusCode == http.StatusServiceUnavailable:
			message = "inference endpoint unavailable (it may be scaled to zero and starting)"
		case resp.StatusCode >= http.StatusInternalServerError:
			message = fmt.Sprintf("inference endpoint server error (HTTP %d)", resp.StatusCode)
		default:
			message = fmt.Sprintf("unexpected inference endpoint response (HTTP %d)", resp.StatusCode)
		}
	}

	apiErr := api.NewTransportError(message, nil)
	apiErr.Status = resp.StatusCode
	return apiErr
}

// MapNetworkError converts a network-level error (connection refused,
// timeout, DNS failure) into a transport APIError.
func MapNetworkError(err error) *api.APIError {
	return api.NewTransportError(fmt.Sprintf("inference endpoint connection error: %s", err.Error()), err)
}

// MapDecodeError converts a JSON decoding failure into a transport APIError.
func MapDecodeError(what string, err error) *api.APIError {
	return api.NewTransportError(fmt.Sprintf("failed to parse %s: %s", what, err.Error()), err)
}

// ExtractErrorMessage reads at most 4 KiB of an error body and returns the
// message from either the OpenAI shape ({"error":{"message":...}}) or the
// TGI shape ({"error":"..."}). Returns "" when neither is present.
func ExtractErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	return errorMessageFromJSON(data)
}

func errorMessageFromJSON(data []byte) string {
	var tgiErr TGIErrorResponse
	if err := json.Unmarshal(data, &tgiErr); err == nil && tgiErr.Error != "" {
		return tgiErr.Error
	}

	var chatErr ChatErrorResponse
	if err := json.Unmarshal(data, &chatErr); err == nil && chatErr.Error.Message != "" {
		return chatErr.Error.Message
	}

	return ""
}

// chunkError converts the raw "error" member of a stream chunk into an APIError.
func chunkError(raw json.RawMessage) *api.APIError {
	wrapped := append(append([]byte(`{"error":`), raw...), '}')
	msg := errorMessageFromJSON(wrapped)
	if msg == "" {
		msg = "inference endpoint reported a stream error"
	}
	return api.NewTransportError(msg, errors.New(string(raw)))
}
