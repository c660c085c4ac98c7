// Command mock-backend runs a deterministic Text Generation Inference (TGI)
// style chat completions server for manual and end-to-end testing of
// hfbridge. It mimics the TGI quirks the adapter handles: "eos_token"
// finish reasons, optionally missing usage, and flat error bodies.
//
// Configuration:
//
//	MOCK_PORT       - Listen port (default: 9090)
//	MOCK_API_KEY    - When set, requests must carry "Authorization: Bearer <key>"
//	MOCK_OMIT_USAGE - When "1", responses carry no usage block
//
// Prompts containing "count from 1 to 5" answer with the numbers; prompts
// containing "trigger error" fail with 503.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/rhuss/hfbridge/pkg/transport"
)

func main() {
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "9090"
	}

	b := &backend{
		apiKey:    os.Getenv("MOCK_API_KEY"),
		omitUsage: os.Getenv("MOCK_OMIT_USAGE") == "1",
	}

	srv := transport.NewServer(b.routes(),
		transport.WithAddr(":"+port),
		transport.WithShutdownTimeout(5*time.Second),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("mock backend starting", "port", port, "omit_usage", b.omitUsage, "auth", b.apiKey != "")
	if err := srv.ListenAndServe(ctx); err != nil {
		slog.Error("mock backend failed", "error", err)
		os.Exit(1)
	}
}

// backend serves the TGI-style API.
type backend struct {
	apiKey    string
	omitUsage bool
}

func (b *backend) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/chat/completions", b.handleChatCompletions)
	mux.HandleFunc("GET /info", handleInfo)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// --- Request types ---

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
	Stream    bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// --- Response types ---

type chatResponse struct {
	ID                string       `json:"id"`
	Object            string       `json:"object"`
	Created           int64        `json:"created"`
	Model             string       `json:"model"`
	SystemFingerprint string       `json:"system_fingerprint"`
	Choices           []chatChoice `json:"choices"`
	Usage             *chatUsage   `json:"usage,omitempty"`
}

type chatChoice struct {
	Index        int     `json:"index"`
	Message      chatMsg `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type chatMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// tgiError is the flat error body TGI returns.
type tgiError struct {
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
}

// --- Handler ---

func (b *backend) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	if b.apiKey != "" && r.Header.Get("Authorization") != "Bearer "+b.apiKey {
		writeError(w, http.StatusUnauthorized, "Authorization header is invalid", "unauthorized")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Failed to deserialize the JSON body: %v", err), "validation")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "messages must not be empty", "validation")
		return
	}

	prompt := lastUserMessage(req.Messages)
	if strings.Contains(strings.ToLower(prompt), "trigger error") {
		writeError(w, http.StatusServiceUnavailable, "Model is overloaded", "overloaded")
		return
	}

	tokens, finish := generate(prompt, req.MaxTokens)
	promptTokens := promptTokenCount(req.Messages)
	model := req.Model
	if model == "" {
		model = "tgi"
	}

	if req.Stream {
		b.handleStreaming(w, model, tokens, finish, promptTokens)
		return
	}

	resp := chatResponse{
		ID:                "chatcmpl-" + uuid.NewString(),
		Object:            "chat.completion",
		Created:           time.Now().Unix(),
		Model:             model,
		SystemFingerprint: "mock-tgi",
		Choices: []chatChoice{{
			Message:      chatMsg{Role: "assistant", Content: strings.Join(tokens, "")},
			FinishReason: finish,
		}},
	}
	if !b.omitUsage {
		resp.Usage = &chatUsage{
			PromptTokens:     promptTokens,
			CompletionTokens: len(tokens),
			TotalTokens:      promptTokens + len(tokens),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// generate returns the reply tokens for prompt and the TGI finish reason.
// maxTokens > 0 truncates the reply and reports "length".
func generate(prompt string, maxTokens int) ([]string, string) {
	tokens := []string{"Hello", ",", " nice", " day", "!"}
	if strings.Contains(strings.ToLower(prompt), "count from 1 to 5") {
		tokens = []string{"1", ",", " 2", ",", " 3", ",", " 4", ",", " 5"}
	}
	if maxTokens > 0 && maxTokens < len(tokens) {
		return tokens[:maxTokens], "length"
	}
	return tokens, "eos_token"
}

// --- Streaming ---

func (b *backend) handleStreaming(w http.ResponseWriter, model string, tokens []string, finish string, promptTokens int) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported", "internal")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	id := "chatcmpl-" + uuid.NewString()

	// Content chunks. TGI puts the finish reason on the last token chunk.
	for i, token := range tokens {
		var reason any
		if i == len(tokens)-1 {
			reason = finish
		}
		chunk := streamChunk(id, model, map[string]any{"role": "assistant", "content": token}, reason)
		if reason != nil && !b.omitUsage {
			chunk["usage"] = chatUsage{
				PromptTokens:     promptTokens,
				CompletionTokens: len(tokens),
				TotalTokens:      promptTokens + len(tokens),
			}
		}
		writeSSE(w, chunk)
		flusher.Flush()
	}

	fmt.Fprintf(w, "data: [DONE]\n\n")
	flusher.Flush()
}

func streamChunk(id, model string, delta map[string]any, finish any) map[string]any {
	return map[string]any{
		"id":                 id,
		"object":             "chat.completion.chunk",
		"created":            time.Now().Unix(),
		"model":              model,
		"system_fingerprint": "mock-tgi",
		"choices": []any{
			map[string]any{
				"index":         0,
				"delta":         delta,
				"logprobs":      nil,
				"finish_reason": finish,
			},
		},
	}
}

func writeSSE(w http.ResponseWriter, v any) {
	data, _ := json.Marshal(v)
	fmt.Fprintf(w, "data: %s\n\n", data)
}

// --- Info endpoint ---

func handleInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"model_id":           "mock/tgi-model",
		"max_total_tokens":   4096,
		"max_input_tokens":   4095,
		"version":            "mock",
		"router":             "text-generation-router",
		"model_pipeline_tag": "text-generation",
	})
}

// --- Helpers ---

func writeError(w http.ResponseWriter, status int, message, errorType string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(tgiError{Error: message, ErrorType: errorType})
}

func lastUserMessage(msgs []chatMessage) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "user" {
			return msgs[i].Content
		}
	}
	return ""
}

// promptTokenCount approximates the prompt length as whitespace-separated
// words.
func promptTokenCount(msgs []chatMessage) int {
	n := 0
	for _, m := range msgs {
		n += len(strings.Fields(m.Content)) + 1
	}
	return n
}
