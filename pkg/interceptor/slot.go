package interceptor

import (
	"net/http"
	"sync"
)

// Slot is an http.RoundTripper whose delegate can be swapped at runtime.
// It replaces a process-wide transport override: every client that should
// be subject to interception uses the same Slot as its Transport.
//
// A Slot also holds the interception state shared by every Interceptor
// created for it: the transport captured at first installation and the
// Interceptor whose wrapper is currently installed. At most one wrapper is
// installed at a time.
type Slot struct {
	mu sync.RWMutex
	rt http.RoundTripper

	// imu serializes installation. It is taken before mu.
	imu      sync.Mutex
	original http.RoundTripper
	owner    *Interceptor
	shared   *Interceptor
}

// Ensure Slot implements http.RoundTripper at compile time.
var _ http.RoundTripper = (*Slot)(nil)

// NewSlot returns a Slot delegating to rt, or to http.DefaultTransport
// when rt is nil.
func NewSlot(rt http.RoundTripper) *Slot {
	if rt == nil {
		rt = http.DefaultTransport
	}
	return &Slot{rt: rt}
}

// RoundTrip delegates to the current transport.
func (s *Slot) RoundTrip(req *http.Request) (*http.Response, error) {
	return s.Load().RoundTrip(req)
}

// Load returns the current transport.
func (s *Slot) Load() http.RoundTripper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rt
}

// Swap installs rt and returns the previous transport.
func (s *Slot) Swap(rt http.RoundTripper) http.RoundTripper {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.rt
	s.rt = rt
	return prev
}

// Interceptor returns the Interceptor bound to this slot, creating it with
// opts on first use. Later calls return the same Interceptor and ignore
// opts.
func (s *Slot) Interceptor(opts ...Option) *Interceptor {
	s.imu.Lock()
	defer s.imu.Unlock()
	if s.shared == nil {
		s.shared = New(s, opts...)
	}
	return s.shared
}

// Original returns the transport captured at first installation, or nil
// if nothing was ever installed.
func (s *Slot) Original() http.RoundTripper {
	s.imu.Lock()
	defer s.imu.Unlock()
	return s.original
}

// install puts ic's wrapper into the slot unless a wrapper is already
// installed. The current transport is captured only once per slot so a
// wrapper is never captured as the original. It reports whether this call
// changed the slot.
func (s *Slot) install(ic *Interceptor) bool {
	s.imu.Lock()
	defer s.imu.Unlock()
	if s.owner != nil {
		return false
	}
	if s.original == nil {
		s.original = s.Load()
	}
	s.Swap(ic.wrapper)
	s.owner = ic
	return true
}

// restore reinstates the captured transport if ic owns the installation.
func (s *Slot) restore(ic *Interceptor) bool {
	s.imu.Lock()
	defer s.imu.Unlock()
	if s.owner != ic {
		return false
	}
	s.Swap(s.original)
	s.owner = nil
	return true
}

// installedBy reports whether ic's wrapper is the installed one.
func (s *Slot) installedBy(ic *Interceptor) bool {
	s.imu.Lock()
	defer s.imu.Unlock()
	return s.owner == ic
}

// CloseIdleConnections forwards to the current transport if it supports it.
func (s *Slot) CloseIdleConnections() {
	type closeIdler interface {
		CloseIdleConnections()
	}
	if c, ok := s.Load().(closeIdler); ok {
		c.CloseIdleConnections()
	}
}
