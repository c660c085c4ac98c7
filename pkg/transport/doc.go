// Package transport provides the HTTP plumbing of the hfbridge proxy:
// a composable middleware chain (panic recovery, request IDs, structured
// logging), JSON error responses, the reverse proxy that forwards
// OpenAI-style traffic through the interceptor slot, and a server with
// graceful shutdown.
//
// # Middleware
//
// Middleware wraps an http.Handler. Chain(a, b, c) produces a(b(c(h))),
// so the first middleware is the outermost wrapper.
//
// # Proxy
//
// NewProxy builds an httputil.ReverseProxy to a fixed upstream whose
// transport is supplied by the caller. The proxy command passes the
// interceptor slot, so requests matching the interceptor's paths are
// redirected to the configured Hugging Face endpoint while everything
// else reaches the upstream unchanged. Responses are flushed immediately,
// which keeps SSE streams incremental.
package transport
