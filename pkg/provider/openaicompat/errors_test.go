package openaicompat

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rhuss/hfbridge/pkg/api"
)

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "TGI error body",
			status:      http.StatusUnprocessableEntity,
			body:        `{"error":"Input validation error: inputs too long","error_type":"validation"}`,
			wantMessage: "Input validation error: inputs too long",
		},
		{
			name:        "OpenAI error body",
			status:      http.StatusBadRequest,
			body:        `{"error":{"message":"bad temperature","type":"invalid_request_error"}}`,
			wantMessage: "bad temperature",
		},
		{
			name:        "unauthorized without body",
			status:      http.StatusUnauthorized,
			wantMessage: "inference endpoint authentication failed",
		},
		{
			name:        "scaled to zero",
			status:      http.StatusServiceUnavailable,
			body:        "not json",
			wantMessage: "inference endpoint unavailable (it may be scaled to zero and starting)",
		},
		{
			name:        "server error",
			status:      http.StatusBadGateway,
			wantMessage: "inference endpoint server error (HTTP 502)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				StatusCode: tt.status,
				Body:       io.NopCloser(strings.NewReader(tt.body)),
			}
			apiErr := MapHTTPError(resp)
			if apiErr.Type != api.ErrorTypeTransport {
				t.Errorf("type = %q, want %q", apiErr.Type, api.ErrorTypeTransport)
			}
			if apiErr.Status != tt.status {
				t.Errorf("status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
		})
	}
}

func TestMapNetworkError_Unwraps(t *testing.T) {
	cause := errors.New("connection refused")
	apiErr := MapNetworkError(cause)
	if !errors.Is(apiErr, cause) {
		t.Error("expected network error to unwrap to its cause")
	}
	if !strings.Contains(apiErr.Message, "connection refused") {
		t.Errorf("message = %q, want it to mention the cause", apiErr.Message)
	}
}

func TestChunkError(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"string", `"model overloaded"`, "model overloaded"},
		{"object", `{"message":"rate limited"}`, "rate limited"},
		{"unrecognized", `42`, "inference endpoint reported a stream error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chunkError([]byte(tt.raw)).Message; got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}
