package openaicompat

import (
	"testing"

	"github.com/rhuss/hfbridge/pkg/api"
)

func TestMapFinishReason(t *testing.T) {
	tests := []struct {
		in   string
		want api.FinishReason
	}{
		{"stop", api.FinishReasonStop},
		{"eos_token", api.FinishReasonStop},
		{"length", api.FinishReasonLength},
		{"max_tokens", api.FinishReasonLength},
		{"content_filter", api.FinishReasonOther},
		{"tool_calls", api.FinishReasonOther},
		{"", api.FinishReasonOther},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := MapFinishReason(tt.in); got != tt.want {
				t.Errorf("MapFinishReason(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractContentString(t *testing.T) {
	if got := ExtractContentString(nil); got != "" {
		t.Errorf("nil content = %q, want empty", got)
	}
	s := "hello"
	if got := ExtractContentString(&s); got != "hello" {
		t.Errorf("content = %q, want hello", got)
	}
}
