package provider

import "github.com/rhuss/hfbridge/pkg/api"

// Request is the provider-facing request: a normalized conversation and the
// generation options for one call.
type Request struct {
	Messages []api.Message
	Options  api.GenerationOptions
}

// Validate checks the request before any translation or network I/O.
// Options are forwarded as given, so only the conversation is checked.
func (r *Request) Validate() *api.APIError {
	return api.ValidateMessages(r.Messages)
}
