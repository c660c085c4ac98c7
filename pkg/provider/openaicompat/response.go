package openaicompat

import "github.com/rhuss/hfbridge/pkg/api"

// MapFinishReason converts a wire finish_reason into a normalized finish
// reason. TGI reports "eos_token" where OpenAI says "stop".
func MapFinishReason(reason string) api.FinishReason {
	switch reason {
	case "stop", "eos_token":
		return api.FinishReasonStop
	case "length", "max_tokens":
		return api.FinishReasonLength
	default:
		return api.FinishReasonOther
	}
}

// ExtractContentString returns the message content, or "" when it is null.
func ExtractContentString(content *string) string {
	if content == nil {
		return ""
	}
	return *content
}

