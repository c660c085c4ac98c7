package interceptor

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/rhuss/hfbridge/pkg/debug"
	"github.com/rhuss/hfbridge/pkg/observability"
)

// DefaultPaths are the request path patterns redirected by default.
var DefaultPaths = []string{"/v1/chat/completions", "/v1/completions"}

// Interceptor installs a redirecting transport into a Slot while its
// configuration is active. Several Interceptors may share a Slot, but only
// one of them has its wrapper installed at a time; activating another is a
// no-op until the first is restored.
type Interceptor struct {
	slot  *Slot
	paths []string

	// cfg is read on every request without taking a lock.
	cfg     atomic.Pointer[Config]
	wrapper *redirector
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithPaths replaces the path patterns that trigger a redirect. A request
// is redirected when its path contains any of them.
func WithPaths(paths ...string) Option {
	return func(i *Interceptor) {
		if len(paths) > 0 {
			i.paths = append([]string(nil), paths...)
		}
	}
}

// New creates an Interceptor for slot. Nothing is installed until
// UpdateConfig receives an active configuration. Most callers want
// [Slot.Interceptor], which returns the one Interceptor bound to the slot.
func New(slot *Slot, opts ...Option) *Interceptor {
	i := &Interceptor{
		slot:  slot,
		paths: DefaultPaths,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.cfg.Store(&Config{})
	i.wrapper = &redirector{ic: i}
	return i
}

// UpdateConfig stores cfg and installs or restores the redirecting
// transport:
//   - active and nothing installed: capture the slot's transport (first
//     time only) and install the wrapper
//   - active and a wrapper already installed: nothing to do, the wrapper
//     reads cfg per request
//   - inactive and installed by i: restore the captured transport
func (i *Interceptor) UpdateConfig(cfg Config) {
	i.cfg.Store(&cfg)

	if cfg.Active() {
		if i.slot.install(i) {
			observability.InterceptorInstalled.Set(1)
			slog.Info("transport interceptor installed", "endpoint", cfg.EndpointURL)
			return
		}
		debug.Log("interceptor", "config updated", "active", true, "installed", i.Installed())
		return
	}

	if i.slot.restore(i) {
		observability.InterceptorInstalled.Set(0)
		slog.Info("transport interceptor removed")
		return
	}
	debug.Log("interceptor", "config updated", "active", false, "installed", false)
}

// Config returns the current configuration.
func (i *Interceptor) Config() Config {
	return *i.cfg.Load()
}

// IsConfigured reports whether the current configuration is active.
func (i *Interceptor) IsConfigured() bool {
	return i.cfg.Load().Active()
}

// Installed reports whether this interceptor's wrapper is installed.
func (i *Interceptor) Installed() bool {
	return i.slot.installedBy(i)
}

// Original returns the transport the slot captured at first installation,
// or nil if nothing was ever installed.
func (i *Interceptor) Original() http.RoundTripper {
	return i.slot.Original()
}

// Close restores the original transport if this interceptor's wrapper is
// installed. It is safe to call more than once.
func (i *Interceptor) Close() error {
	if i.slot.restore(i) {
		observability.InterceptorInstalled.Set(0)
		debug.Log("interceptor", "restored original transport on close")
	}
	return nil
}
