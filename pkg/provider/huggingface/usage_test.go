package huggingface

import (
	"testing"

	"github.com/rhuss/hfbridge/pkg/api"
	"github.com/rhuss/hfbridge/pkg/provider/openaicompat"
)

func TestResolveUsage(t *testing.T) {
	n := func(v int) *int { return &v }

	tests := []struct {
		name     string
		reported *openaicompat.ChatUsage
		want     api.Usage
	}{
		{"nothing reported", nil, api.Usage{InputTokens: 5, OutputTokens: 3, TotalTokens: 8}},
		{"all reported", &openaicompat.ChatUsage{PromptTokens: n(10), CompletionTokens: n(4), TotalTokens: n(20)}, api.Usage{InputTokens: 10, OutputTokens: 4, TotalTokens: 20}},
		{"zero total", &openaicompat.ChatUsage{PromptTokens: n(10), CompletionTokens: n(4), TotalTokens: n(0)}, api.Usage{InputTokens: 10, OutputTokens: 4, TotalTokens: 14}},
		{"prompt only", &openaicompat.ChatUsage{PromptTokens: n(10)}, api.Usage{InputTokens: 10, OutputTokens: 3, TotalTokens: 13}},
		{"reported zero counts", &openaicompat.ChatUsage{PromptTokens: n(0), CompletionTokens: n(0)}, api.Usage{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveUsage(tt.reported, 5, 3); got != tt.want {
				t.Errorf("resolveUsage() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
