package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rhuss/hfbridge/pkg/api"
	"github.com/rhuss/hfbridge/pkg/debug"
)

// ChatCompletionsPath is the endpoint path appended to the base URL.
const ChatCompletionsPath = "/v1/chat/completions"

// Client performs HTTP requests against an OpenAI-compatible Chat
// Completions endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new Client. A nil transport uses
// http.DefaultTransport; a zero timeout defaults to 120s for unary calls.
func NewClient(baseURL, apiKey string, timeout time.Duration, transport http.RoundTripper) *Client {
	// Normalize: remove trailing slash from base URL.
	baseURL = strings.TrimRight(baseURL, "/")

	if timeout == 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// URL returns the full chat completions URL.
func (c *Client) URL() string {
	return c.baseURL + ChatCompletionsPath
}

// Complete sends a non-streaming request and decodes the response.
func (c *Client) Complete(ctx context.Context, chatReq *ChatCompletionRequest, requestID string) (*ChatCompletionResponse, error) {
	reqCopy := *chatReq
	reqCopy.Stream = false

	httpReq, err := c.newRequest(ctx, &reqCopy, requestID)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, MapNetworkError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, MapHTTPError(httpResp)
	}

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, api.NewTransportError("failed to read endpoint response: "+err.Error(), err)
	}
	debug.Log("providers", "response received", "status", httpResp.StatusCode, "bytes", len(data), "request_id", requestID)
	debug.Raw("providers", string(data))

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(data, &chatResp); err != nil {
		return nil, MapDecodeError("endpoint response", err)
	}

	return &chatResp, nil
}

// OpenStream sends a streaming request and returns the response body once
// the endpoint has answered with a 2xx status. The caller must close the
// body.
//
// The HTTP client timeout is not applied to streams because a stream can
// legitimately outlast any fixed timeout; ctx controls the lifetime instead.
func (c *Client) OpenStream(ctx context.Context, chatReq *ChatCompletionRequest, requestID string) (io.ReadCloser, error) {
	reqCopy := *chatReq
	reqCopy.Stream = true

	httpReq, err := c.newRequest(ctx, &reqCopy, requestID)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "text/event-stream")

	streamClient := &http.Client{
		Transport: c.httpClient.Transport,
	}

	httpResp, err := streamClient.Do(httpReq)
	if err != nil {
		return nil, MapNetworkError(err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		defer httpResp.Body.Close()
		return nil, MapHTTPError(httpResp)
	}

	return httpResp.Body, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) newRequest(ctx context.Context, chatReq *ChatCompletionRequest, requestID string) (*http.Request, error) {
	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, api.NewInvalidRequestError("", fmt.Sprintf("failed to marshal request: %s", err.Error()))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(body))
	if err != nil {
		return nil, api.NewTransportError(fmt.Sprintf("failed to create HTTP request: %s", err.Error()), err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if requestID != "" {
		httpReq.Header.Set("X-Request-ID", requestID)
	}

	debug.Log("providers", "request", "method", http.MethodPost, "url", c.URL(), "model", chatReq.Model, "stream", chatReq.Stream, "request_id", requestID)
	debug.Raw("providers", string(body))

	return httpReq, nil
}
