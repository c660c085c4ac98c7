package huggingface

import (
	"github.com/rhuss/hfbridge/pkg/api"
	"github.com/rhuss/hfbridge/pkg/provider/openaicompat"
)

// resolveUsage combines reported and estimated token counts. Each reported
// count wins over its estimate; a missing or zero total becomes
// input + output.
func resolveUsage(reported *openaicompat.ChatUsage, estInput, estOutput int) api.Usage {
	usage := api.Usage{
		InputTokens:  estInput,
		OutputTokens: estOutput,
	}
	if reported != nil {
		if reported.PromptTokens != nil {
			usage.InputTokens = *reported.PromptTokens
		}
		if reported.CompletionTokens != nil {
			usage.OutputTokens = *reported.CompletionTokens
		}
		if reported.TotalTokens != nil {
			usage.TotalTokens = *reported.TotalTokens
		}
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return usage
}
