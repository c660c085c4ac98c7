// Command hfbridge talks to Hugging Face Inference Endpoints (TGI) through
// their OpenAI-compatible chat completions API.
//
// It provides:
//   - A chat client with unary and streaming generation
//   - A local OpenAI-compatible proxy that redirects chat completion
//     traffic to the configured endpoint while the configuration is complete
//   - Validation of endpoint configuration
//
// Usage:
//
//	# Ask a question
//	hfbridge chat "What is the capital of France?"
//
//	# Stream the answer with a system prompt
//	hfbridge chat --stream --system "Answer briefly." "Explain TCP slow start"
//
//	# Run the redirecting proxy with a watched configuration file
//	hfbridge proxy --config hfbridge.yaml
//
//	# Check the configuration
//	hfbridge validate
package main

func main() {
	Execute()
}
