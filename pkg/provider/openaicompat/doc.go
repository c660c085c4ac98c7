// Package openaicompat holds the wire-format code for OpenAI-compatible
// Chat Completions endpoints such as Hugging Face Inference Endpoints and
// Text Generation Inference: message conversion, request construction,
// response and SSE chunk parsing, error mapping and a small HTTP client.
//
// It knows nothing about token estimation or event sequencing; the
// huggingface adapter builds those on top.
package openaicompat
