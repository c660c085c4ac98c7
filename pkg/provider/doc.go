// Package provider defines the capability contract between callers and
// chat-completion backends. A Provider accepts a normalized conversation
// (api.Message values plus api.GenerationOptions) and answers either with a
// single api.GenerationResult or with a stream of api.StreamEvent values.
// Wire-format details stay inside the adapter packages.
package provider
