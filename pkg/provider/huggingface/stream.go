package huggingface

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rhuss/hfbridge/pkg/api"
	"github.com/rhuss/hfbridge/pkg/debug"
	"github.com/rhuss/hfbridge/pkg/observability"
	"github.com/rhuss/hfbridge/pkg/provider"
	"github.com/rhuss/hfbridge/pkg/provider/openaicompat"
	"github.com/rhuss/hfbridge/pkg/tokens"
)

// Stream performs a streaming chat completion. Invalid requests are
// rejected before any I/O; every later failure, including a failed
// connection, arrives as the stream's terminal error event.
//
// The channel is unbuffered: the producer reads the next upstream chunk
// only after the consumer has taken the previous event.
func (p *Provider) Stream(ctx context.Context, req *provider.Request) (<-chan api.StreamEvent, error) {
	chatReq, warnings, err := p.prepare(req, true)
	if err != nil {
		return nil, err
	}

	ch := make(chan api.StreamEvent)
	go p.produce(ctx, chatReq, warnings, api.NewRequestID(), ch)
	return ch, nil
}

// streamState accumulates text and token counts across chunks.
type streamState struct {
	inputTokens  int
	outputTokens int
	text         strings.Builder
}

func (s *streamState) usage() api.Usage {
	return api.Usage{
		InputTokens:  s.inputTokens,
		OutputTokens: s.outputTokens,
		TotalTokens:  s.inputTokens + s.outputTokens,
	}
}

func (p *Provider) produce(ctx context.Context, chatReq *openaicompat.ChatCompletionRequest, warnings []api.Warning, requestID string, ch chan<- api.StreamEvent) {
	defer close(ch)

	observability.StreamsActive.Inc()
	defer observability.StreamsActive.Dec()

	ctx, span := observability.StartSpan(ctx, "huggingface.stream", p.spanAttrs(modeStream, requestID)...)
	start := time.Now()
	state := &streamState{}

	var final api.StreamEvent
	defer func() {
		err := streamOutcome(ctx, final)
		usage := state.usage()
		if final.Usage != nil {
			usage = *final.Usage
		}
		span.SetAttributes(
			attribute.Int(observability.AttrTokensInput, usage.InputTokens),
			attribute.Int(observability.AttrTokensOutput, usage.OutputTokens),
		)
		observability.RecordProviderCall(ProviderName, p.cfg.ModelID, modeStream, time.Since(start).Seconds(), usage.InputTokens, usage.OutputTokens, err)
		observability.EndSpan(span, err)
	}()

	send := func(ev api.StreamEvent) bool {
		select {
		case ch <- ev:
			if ev.IsTerminal() {
				final = ev
			}
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !send(api.StartEvent(warnings)) {
		return
	}

	body, err := p.client.OpenStream(ctx, chatReq, requestID)
	if err != nil {
		if ctx.Err() == nil {
			send(api.ErrorEvent(err))
		}
		return
	}
	defer body.Close()

	// A blocked read does not observe ctx on its own; closing the body
	// unblocks it.
	stop := context.AfterFunc(ctx, func() { body.Close() })
	defer stop()

	state.inputTokens = tokens.EstimateJSON(p.estimator, chatReq.Messages)
	reader := openaicompat.NewChunkReader(body)

	for {
		chunk, err := reader.Next()
		if errors.Is(err, io.EOF) {
			debug.Log("streaming", "upstream ended without finish reason", "request_id", requestID)
			send(api.FinishEvent(state.usage(), api.FinishReasonStop))
			return
		}
		if err != nil {
			if ctx.Err() == nil {
				send(api.ErrorEvent(err))
			}
			return
		}

		if len(chunk.Choices) == 0 {
			continue
		}
		choice := chunk.Choices[0]

		if delta := openaicompat.ExtractContentString(choice.Delta.Content); delta != "" {
			state.text.WriteString(delta)
			state.outputTokens = p.estimator.Estimate(state.text.String())
			debug.Log("streaming", "delta", "request_id", requestID, "text", debug.Truncate(delta, 80))
			if !send(api.DeltaEvent(delta)) {
				return
			}
		}

		if choice.FinishReason != nil && *choice.FinishReason != "" {
			usage := resolveUsage(chunk.Usage, state.inputTokens, state.outputTokens)
			span.SetAttributes(attribute.String(observability.AttrFinishReason, *choice.FinishReason))
			send(api.FinishEvent(usage, openaicompat.MapFinishReason(*choice.FinishReason)))
			return
		}
	}
}

// streamOutcome returns the error a finished stream is recorded with:
// the terminal error, the context error after cancellation, or nil.
func streamOutcome(ctx context.Context, final api.StreamEvent) error {
	switch final.Type {
	case api.EventFinish:
		return nil
	case api.EventError:
		return final.Err
	default:
		if err := ctx.Err(); err != nil {
			return err
		}
		return errors.New("stream ended without terminal event")
	}
}
