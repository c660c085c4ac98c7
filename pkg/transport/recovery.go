package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rhuss/hfbridge/pkg/api"
)

// Recovery returns middleware that catches panics in the handler and
// converts them to a 500 JSON error response. The server continues to
// accept new requests after a panic is recovered.
//
// http.ErrAbortHandler is re-panicked so net/http can abort the response.
func Recovery() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				slog.Error("panic recovered",
					"request_id", RequestIDFromContext(r.Context()),
					"path", r.URL.Path,
					"panic", fmt.Sprint(rec),
				)
				apiErr := api.NewTransportError(fmt.Sprintf("internal server error: %v", rec), nil)
				WriteErrorResponse(w, apiErr, http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
