package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rhuss/hfbridge/pkg/api"
)

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  *api.APIError
		want int
	}{
		{"invalid request", api.NewInvalidRequestError("messages", "bad"), http.StatusBadRequest},
		{"transport", api.NewTransportError("down", nil), http.StatusBadGateway},
		{"empty response", api.NewEmptyResponseError("no choices"), http.StatusBadGateway},
		{"configuration", api.NewConfigurationError("api_key", "missing"), http.StatusInternalServerError},
		{"explicit status", &api.APIError{Type: api.ErrorTypeTransport, Status: http.StatusTooManyRequests}, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusFromError(tt.err); got != tt.want {
				t.Errorf("HTTPStatusFromError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWriteAPIError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteAPIError(rec, api.NewInvalidRequestError("messages", "messages must not be empty"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body api.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error.Type != api.ErrorTypeInvalidRequest || body.Error.Param != "messages" {
		t.Errorf("body = %+v", body.Error)
	}
}
