package openaicompat

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rhuss/hfbridge/pkg/api"
)

// Defaults holds the values used for generation options the caller left unset.
type Defaults struct {
	MaxTokens   int
	Temperature float64
}

// DefaultDefaults returns the defaults applied by the endpoint adapter:
// 500 output tokens and temperature 0.7.
func DefaultDefaults() Defaults {
	return Defaults{
		MaxTokens:   500,
		Temperature: 0.7,
	}
}

// BuildRequest converts a normalized conversation and options into a
// ChatCompletionRequest. top_p, stop and seed are forwarded only when set.
// Conversion warnings are returned alongside the request.
func BuildRequest(model string, msgs []api.Message, opts api.GenerationOptions, defaults Defaults, stream bool) (*ChatCompletionRequest, []api.Warning, error) {
	chatMsgs, warnings, err := ConvertMessages(msgs)
	if err != nil {
		return nil, nil, err
	}

	cr := &ChatCompletionRequest{
		Model:       model,
		Messages:    chatMsgs,
		MaxTokens:   defaults.MaxTokens,
		Temperature: defaults.Temperature,
		TopP:        opts.TopP,
		Seed:        opts.Seed,
		Stream:      stream,
	}
	if opts.MaxOutputTokens != nil {
		cr.MaxTokens = *opts.MaxOutputTokens
	}
	if opts.Temperature != nil {
		cr.Temperature = *opts.Temperature
	}
	if len(opts.StopSequences) > 0 {
		cr.Stop = opts.StopSequences
	}

	return cr, warnings, nil
}

// ConvertMessages translates normalized messages into wire messages,
// preserving order. Content the target protocol cannot carry is dropped
// and reported as a warning.
func ConvertMessages(msgs []api.Message) ([]ChatMessage, []api.Warning, error) {
	out := make([]ChatMessage, 0, len(msgs))
	var warnings []api.Warning

	for i, m := range msgs {
		cm, w, err := convertMessage(m)
		if err != nil {
			if apiErr, ok := err.(*api.APIError); ok && apiErr.Param == "" {
				apiErr.Param = fmt.Sprintf("messages[%d]", i)
			}
			return nil, nil, err
		}
		out = append(out, cm)
		warnings = append(warnings, w...)
	}

	return out, warnings, nil
}

func convertMessage(m api.Message) (ChatMessage, []api.Warning, error) {
	switch m.Role {
	case api.RoleSystem:
		return ChatMessage{Role: string(api.RoleSystem), Content: textContent(m)}, nil, nil

	case api.RoleUser:
		var warnings []api.Warning
		if hasPart(m, api.PartImage) {
			warnings = append(warnings, api.Warning{
				Type:    api.WarningUnsupportedContent,
				Message: "image parts are not supported by the chat endpoint and were dropped",
			})
		}
		return ChatMessage{Role: string(api.RoleUser), Content: textContent(m)}, warnings, nil

	case api.RoleAssistant:
		var warnings []api.Warning
		if hasPart(m, api.PartToolCall) {
			warnings = append(warnings, api.Warning{
				Type:    api.WarningUnsupportedContent,
				Message: "tool calls are not supported by the chat endpoint and were dropped",
			})
		}
		return ChatMessage{Role: string(api.RoleAssistant), Content: textContent(m)}, warnings, nil

	case api.RoleTool:
		content, err := toolResultContent(m)
		if err != nil {
			return ChatMessage{}, nil, err
		}
		return ChatMessage{Role: string(api.RoleAssistant), Content: content}, nil, nil

	default:
		// Lossy: the whole message travels as JSON text in a user turn.
		data, err := json.Marshal(m)
		if err != nil {
			return ChatMessage{}, nil, api.NewInvalidRequestError("", fmt.Sprintf("cannot serialize message with role %q: %s", m.Role, err.Error()))
		}
		warning := api.Warning{
			Type:    api.WarningUnsupportedRole,
			Message: fmt.Sprintf("role %q is not supported; message forwarded as serialized user content", m.Role),
		}
		return ChatMessage{Role: string(api.RoleUser), Content: string(data)}, []api.Warning{warning}, nil
	}
}

// textContent returns the plain text of a message: the Content string, or
// all text parts joined by newlines.
func textContent(m api.Message) string {
	if !m.HasParts() {
		return m.Content
	}
	var texts []string
	for _, p := range m.Parts {
		if p.Type == api.PartText {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

func hasPart(m api.Message, t api.PartType) bool {
	for _, p := range m.Parts {
		if p.Type == t {
			return true
		}
	}
	return false
}

// toolResultContent renders the first tool-result part of a tool message as
// "Tool result (<name>): <json result>".
func toolResultContent(m api.Message) (string, error) {
	for _, p := range m.Parts {
		if p.Type != api.PartToolResult {
			continue
		}
		result, err := json.Marshal(p.Result)
		if err != nil {
			return "", api.NewInvalidRequestError("", fmt.Sprintf("cannot serialize result of tool %q: %s", p.ToolName, err.Error()))
		}
		return fmt.Sprintf("Tool result (%s): %s", p.ToolName, result), nil
	}
	return "", api.NewInvalidRequestError("", "tool message has no tool-result part")
}
