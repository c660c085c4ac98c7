package interceptor

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rhuss/hfbridge/pkg/debug"
	"github.com/rhuss/hfbridge/pkg/observability"
)

// TargetPath is appended to the endpoint URL of every redirected request.
const TargetPath = "/v1/chat/completions"

// redirector is the transport installed into the slot. It always
// dispatches through the captured original transport, never through the
// slot, so it cannot recurse into itself.
type redirector struct {
	ic *Interceptor
}

func (r *redirector) RoundTrip(req *http.Request) (*http.Response, error) {
	original := r.ic.Original()
	if original == nil {
		original = http.DefaultTransport
	}

	cfg := r.ic.Config()
	if !cfg.Active() || !r.ic.matches(req.URL.Path) {
		observability.InterceptorRequestsTotal.WithLabelValues(observability.OutcomePassthrough).Inc()
		debug.Log("interceptor", "passthrough", "method", req.Method, "url", req.URL.String())
		return original.RoundTrip(req)
	}

	body, err := drainBody(req)
	if err != nil {
		return nil, err
	}

	target := strings.TrimRight(cfg.EndpointURL, "/") + TargetPath
	ctx, span := observability.StartSpan(req.Context(), "interceptor.redirect",
		attribute.String(observability.AttrTargetURL, target),
	)

	resp, err := r.redirect(ctx, req, target, cfg.APIKey, body)
	if err == nil {
		span.SetAttributes(attribute.String(observability.AttrOutcome, observability.OutcomeRedirected))
		observability.EndSpan(span, nil)
		observability.InterceptorRequestsTotal.WithLabelValues(observability.OutcomeRedirected).Inc()
		debug.Log("interceptor", "redirected", "from", req.URL.String(), "to", target, "status", resp.StatusCode)
		return resp, nil
	}

	// The caller gave up; the original destination would fail the same way.
	if req.Context().Err() != nil {
		observability.EndSpan(span, err)
		debug.Log("interceptor", "redirect cancelled", "target", target, "error", err)
		return nil, err
	}

	span.SetAttributes(attribute.String(observability.AttrOutcome, observability.OutcomeFallback))
	observability.EndSpan(span, err)
	observability.InterceptorRequestsTotal.WithLabelValues(observability.OutcomeFallback).Inc()
	slog.Warn("redirect failed, falling back to original destination",
		"target", target,
		"original", req.URL.String(),
		"error", err,
	)

	return original.RoundTrip(withBody(req, body))
}

// redirect sends the request body to target through the original transport.
func (r *redirector) redirect(ctx context.Context, req *http.Request, target, apiKey string, body []byte) (*http.Response, error) {
	out, err := http.NewRequestWithContext(ctx, req.Method, target, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	// Original headers underneath, redirect headers on top.
	out.Header = req.Header.Clone()
	if out.Header == nil {
		out.Header = make(http.Header)
	}
	out.Header.Set("Content-Type", "application/json")
	out.Header.Set("Authorization", "Bearer "+apiKey)

	original := r.ic.Original()
	if original == nil {
		original = http.DefaultTransport
	}
	return original.RoundTrip(out)
}

func (i *Interceptor) matches(path string) bool {
	for _, p := range i.paths {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// drainBody reads and closes the request body. A RoundTripper must close
// the body even on error.
func drainBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	defer req.Body.Close()
	return io.ReadAll(req.Body)
}

// withBody returns a shallow copy of req that replays body.
func withBody(req *http.Request, body []byte) *http.Request {
	out := req.Clone(req.Context())
	if body == nil {
		out.Body = http.NoBody
		out.GetBody = func() (io.ReadCloser, error) { return http.NoBody, nil }
		out.ContentLength = 0
		return out
	}
	out.Body = io.NopCloser(bytes.NewReader(body))
	out.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	out.ContentLength = int64(len(body))
	return out
}
