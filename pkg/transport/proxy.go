package transport

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/rhuss/hfbridge/pkg/api"
	"github.com/rhuss/hfbridge/pkg/debug"
)

// NewProxy returns a reverse proxy forwarding every request to upstream,
// keeping the request path and query. Requests are dispatched through rt,
// which is normally the interceptor slot; a nil rt selects
// http.DefaultTransport.
//
// Responses are flushed as soon as bytes arrive so SSE streams stay
// incremental. Upstream failures are reported as 502 JSON errors.
func NewProxy(upstream string, rt http.RoundTripper) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("parsing upstream %q: %w", upstream, err)
	}
	if (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, fmt.Errorf("upstream %q must be an absolute http(s) URL", upstream)
	}
	if rt == nil {
		rt = http.DefaultTransport
	}

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			debug.Log("transport", "proxying request",
				"method", pr.Out.Method, "url", pr.Out.URL.String())
		},
		Transport:     rt,
		FlushInterval: -1,
		ErrorHandler:  proxyErrorHandler,
	}, nil
}

func proxyErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil && errors.Is(err, r.Context().Err()) {
		// Client went away.
		debug.Log("transport", "client cancelled proxied request", "path", r.URL.Path)
		return
	}
	slog.Warn("upstream request failed",
		"request_id", RequestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"error", err,
	)
	WriteErrorResponse(w, api.NewTransportError(fmt.Sprintf("upstream request failed: %v", err), err), http.StatusBadGateway)
}
