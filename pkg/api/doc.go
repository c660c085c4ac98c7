// Package api defines the normalized types shared by the hfbridge adapter,
// interceptor and CLI.
//
// The types are independent of any provider wire format: a conversation is a
// list of [Message] values with role-tagged content, generation parameters
// travel in [GenerationOptions], and results come back as a
// [GenerationResult] (unary) or a sequence of [StreamEvent] values
// (streaming).
//
// Core types:
//   - [Message]: one conversation turn, plain text or an ordered list of [ContentPart]
//   - [GenerationOptions]: optional sampling and length controls
//   - [GenerationResult]: text, token usage and finish reason of a unary call
//   - [StreamEvent]: start, delta, finish or error event of a streaming call
//   - [APIError]: the single error shape surfaced by the adapter
package api
