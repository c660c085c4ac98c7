package huggingface

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rhuss/hfbridge/pkg/api"
	"github.com/rhuss/hfbridge/pkg/debug"
	"github.com/rhuss/hfbridge/pkg/observability"
	"github.com/rhuss/hfbridge/pkg/provider"
	"github.com/rhuss/hfbridge/pkg/provider/openaicompat"
	"github.com/rhuss/hfbridge/pkg/tokens"
)

// ProviderName is the identifier reported by Name and used as metric label.
const ProviderName = "huggingface"

// Call modes used as the "mode" metric label.
const (
	modeUnary  = "unary"
	modeStream = "stream"
)

// Provider implements provider.Provider for Hugging Face Inference
// Endpoints.
type Provider struct {
	cfg       Config
	client    *openaicompat.Client
	estimator tokens.Estimator
}

// Ensure Provider implements provider.Provider at compile time.
var _ provider.Provider = (*Provider)(nil)

// New creates a new Provider. A missing API key or endpoint URL yields a
// configuration error; no network I/O happens here.
func New(cfg Config) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	return &Provider{
		cfg:       cfg,
		client:    openaicompat.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout, cfg.Transport),
		estimator: cfg.Estimator,
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return ProviderName
}

// Model returns the model name sent to the endpoint.
func (p *Provider) Model() string {
	return p.cfg.ModelID
}

// Generate performs a unary chat completion.
func (p *Provider) Generate(ctx context.Context, req *provider.Request) (*api.GenerationResult, error) {
	chatReq, warnings, err := p.prepare(req, false)
	if err != nil {
		return nil, err
	}

	requestID := api.NewRequestID()
	ctx, span := observability.StartSpan(ctx, "huggingface.generate", p.spanAttrs(modeUnary, requestID)...)
	start := time.Now()

	result, err := p.generate(ctx, chatReq, requestID)

	var usage api.Usage
	if result != nil {
		usage = result.Usage
		result.Warnings = warnings
		span.SetAttributes(
			attribute.Int(observability.AttrTokensInput, usage.InputTokens),
			attribute.Int(observability.AttrTokensOutput, usage.OutputTokens),
			attribute.String(observability.AttrFinishReason, string(result.FinishReason)),
		)
	}
	observability.RecordProviderCall(ProviderName, p.cfg.ModelID, modeUnary, time.Since(start).Seconds(), usage.InputTokens, usage.OutputTokens, err)
	observability.EndSpan(span, err)

	if err != nil {
		debug.Log("providers", "generate failed", "request_id", requestID, "error", err)
		return nil, api.WrapError(err)
	}
	return result, nil
}

func (p *Provider) generate(ctx context.Context, chatReq *openaicompat.ChatCompletionRequest, requestID string) (*api.GenerationResult, error) {
	resp, err := p.client.Complete(ctx, chatReq, requestID)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, api.NewEmptyResponseError("inference endpoint returned no choices")
	}

	choice := resp.Choices[0]
	text := openaicompat.ExtractContentString(choice.Message.Content)

	var estInput, estOutput int
	if resp.Usage == nil || resp.Usage.PromptTokens == nil {
		estInput = tokens.EstimateJSON(p.estimator, chatReq.Messages)
	}
	if resp.Usage == nil || resp.Usage.CompletionTokens == nil {
		estOutput = p.estimator.Estimate(text)
	}

	model := resp.Model
	if model == "" {
		model = p.cfg.ModelID
	}

	return &api.GenerationResult{
		Text:         text,
		Usage:        resolveUsage(resp.Usage, estInput, estOutput),
		FinishReason: openaicompat.MapFinishReason(choice.FinishReason),
		Model:        model,
		RequestID:    requestID,
	}, nil
}

// Close releases provider resources.
func (p *Provider) Close() error {
	return p.client.Close()
}

// prepare validates the request and builds the wire request. Conversion
// warnings are logged and returned for the caller.
func (p *Provider) prepare(req *provider.Request, stream bool) (*openaicompat.ChatCompletionRequest, []api.Warning, error) {
	if req == nil {
		return nil, nil, api.NewInvalidRequestError("", "request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	chatReq, warnings, err := openaicompat.BuildRequest(p.cfg.ModelID, req.Messages, req.Options, p.cfg.Defaults, stream)
	if err != nil {
		return nil, nil, api.WrapError(err)
	}

	for _, w := range warnings {
		slog.Warn("message conversion", "provider", ProviderName, "type", w.Type, "message", w.Message)
	}
	return chatReq, warnings, nil
}

func (p *Provider) spanAttrs(mode, requestID string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(observability.AttrProvider, ProviderName),
		attribute.String(observability.AttrModel, p.cfg.ModelID),
		attribute.String(observability.AttrMode, mode),
		attribute.String(observability.AttrRequestID, requestID),
	}
}
