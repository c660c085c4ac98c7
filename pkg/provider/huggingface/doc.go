// Package huggingface implements provider.Provider for Hugging Face
// Inference Endpoints and other Text Generation Inference (TGI) deployments
// that expose the OpenAI-style /v1/chat/completions API.
//
// The adapter translates a normalized conversation into the Chat
// Completions wire format, performs unary or streaming calls and maps the
// response back into a normalized result. Token usage the endpoint does
// not report is estimated (see package tokens).
package huggingface
