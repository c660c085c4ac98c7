package transport

import (
	"net/http"

	"github.com/rhuss/hfbridge/pkg/api"
)

// HeaderRequestID carries the request ID on inbound requests, on the
// forwarded upstream request and on the response.
const HeaderRequestID = "X-Request-ID"

// RequestID returns middleware that assigns a request ID to each request.
// An incoming X-Request-ID header is kept; otherwise a new ID is generated.
// The ID is stored in the context (see RequestIDFromContext), set on the
// request header so the proxy forwards it, and echoed on the response.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" {
				id = api.NewRequestID()
				r.Header.Set(HeaderRequestID, id)
			}
			w.Header().Set(HeaderRequestID, id)
			next.ServeHTTP(w, r.WithContext(ContextWithRequestID(r.Context(), id)))
		})
	}
}
