package openaicompat

import (
	"errors"
	"testing"

	"github.com/rhuss/hfbridge/pkg/api"
)

func TestConvertMessages_PreservesOrderAndText(t *testing.T) {
	msgs := []api.Message{
		api.TextMessage(api.RoleSystem, "You are helpful."),
		api.TextMessage(api.RoleUser, "Hi"),
		api.TextMessage(api.RoleAssistant, "Hello!"),
		api.TextMessage(api.RoleUser, "How are you?"),
	}

	out, warnings, err := ConvertMessages(msgs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if len(out) != len(msgs) {
		t.Fatalf("expected %d messages, got %d", len(msgs), len(out))
	}
	for i, m := range msgs {
		if out[i].Role != string(m.Role) {
			t.Errorf("message %d: role = %q, want %q", i, out[i].Role, m.Role)
		}
		if out[i].Content != m.Content {
			t.Errorf("message %d: content = %q, want %q", i, out[i].Content, m.Content)
		}
	}
}

func TestConvertMessages_Parts(t *testing.T) {
	tests := []struct {
		name         string
		msg          api.Message
		wantRole     string
		wantContent  string
		wantWarnings int
	}{
		{
			name: "system text parts joined",
			msg: api.Message{Role: api.RoleSystem, Parts: []api.ContentPart{
				{Type: api.PartText, Text: "a"},
				{Type: api.PartText, Text: "b"},
			}},
			wantRole:    "system",
			wantContent: "a\nb",
		},
		{
			name: "user image dropped",
			msg: api.Message{Role: api.RoleUser, Parts: []api.ContentPart{
				{Type: api.PartText, Text: "what is this?"},
				{Type: api.PartImage, Image: "https://example.com/cat.png", MediaType: "image/png"},
				{Type: api.PartImage, Image: "https://example.com/dog.png", MediaType: "image/png"},
			}},
			wantRole:     "user",
			wantContent:  "what is this?",
			wantWarnings: 1,
		},
		{
			name: "assistant tool call dropped",
			msg: api.Message{Role: api.RoleAssistant, Parts: []api.ContentPart{
				{Type: api.PartText, Text: "Let me check."},
				{Type: api.PartToolCall, ToolCallID: "call_1", ToolName: "weather", Args: map[string]any{"city": "Berlin"}},
			}},
			wantRole:     "assistant",
			wantContent:  "Let me check.",
			wantWarnings: 1,
		},
		{
			name:        "empty parts",
			msg:         api.Message{Role: api.RoleUser, Parts: []api.ContentPart{}},
			wantRole:    "user",
			wantContent: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, warnings, err := ConvertMessages([]api.Message{tt.msg})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out[0].Role != tt.wantRole {
				t.Errorf("role = %q, want %q", out[0].Role, tt.wantRole)
			}
			if out[0].Content != tt.wantContent {
				t.Errorf("content = %q, want %q", out[0].Content, tt.wantContent)
			}
			if len(warnings) != tt.wantWarnings {
				t.Errorf("warnings = %d, want %d", len(warnings), tt.wantWarnings)
			}
			for _, w := range warnings {
				if w.Type != api.WarningUnsupportedContent {
					t.Errorf("warning type = %q, want %q", w.Type, api.WarningUnsupportedContent)
				}
			}
		})
	}
}

func TestConvertMessages_ToolResult(t *testing.T) {
	msg := api.Message{Role: api.RoleTool, Parts: []api.ContentPart{
		{Type: api.PartToolResult, ToolCallID: "call_1", ToolName: "weather", Result: map[string]any{"temp": 20}},
	}}

	out, _, err := ConvertMessages([]api.Message{msg})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Role != "assistant" {
		t.Errorf("role = %q, want assistant", out[0].Role)
	}
	want := `Tool result (weather): {"temp":20}`
	if out[0].Content != want {
		t.Errorf("content = %q, want %q", out[0].Content, want)
	}
}

func TestConvertMessages_ToolWithoutResult(t *testing.T) {
	msgs := []api.Message{
		api.TextMessage(api.RoleUser, "hi"),
		{Role: api.RoleTool, Content: "orphan"},
	}

	_, _, err := ConvertMessages(msgs)
	if err == nil {
		t.Fatal("expected error for tool message without tool-result part")
	}
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.APIError, got %T", err)
	}
	if apiErr.Type != api.ErrorTypeInvalidRequest {
		t.Errorf("type = %q, want %q", apiErr.Type, api.ErrorTypeInvalidRequest)
	}
	if apiErr.Param != "messages[1]" {
		t.Errorf("param = %q, want %q", apiErr.Param, "messages[1]")
	}
}

func TestConvertMessages_UnknownRole(t *testing.T) {
	msg := api.Message{Role: "developer", Content: "be terse"}

	out, warnings, err := ConvertMessages([]api.Message{msg})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Role != "user" {
		t.Errorf("role = %q, want user", out[0].Role)
	}
	want := `{"role":"developer","content":"be terse"}`
	if out[0].Content != want {
		t.Errorf("content = %q, want %q", out[0].Content, want)
	}
	if len(warnings) != 1 || warnings[0].Type != api.WarningUnsupportedRole {
		t.Errorf("expected one unsupported-role warning, got %v", warnings)
	}
}

func TestBuildRequest_Defaults(t *testing.T) {
	msgs := []api.Message{api.TextMessage(api.RoleUser, "Hi")}

	req, _, err := BuildRequest("my-model", msgs, api.GenerationOptions{}, DefaultDefaults(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Model != "my-model" {
		t.Errorf("model = %q, want my-model", req.Model)
	}
	if req.MaxTokens != 500 {
		t.Errorf("max_tokens = %d, want 500", req.MaxTokens)
	}
	if req.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", req.Temperature)
	}
	if req.TopP != nil || req.Seed != nil || req.Stop != nil {
		t.Errorf("expected top_p, seed and stop unset, got %v %v %v", req.TopP, req.Seed, req.Stop)
	}
	if req.Stream {
		t.Error("expected stream to be false")
	}
}

func TestBuildRequest_ForwardsOptions(t *testing.T) {
	maxTokens := 64
	temp := 0.0
	topP := 0.9
	seed := int64(42)
	opts := api.GenerationOptions{
		MaxOutputTokens: &maxTokens,
		Temperature:     &temp,
		TopP:            &topP,
		StopSequences:   []string{"\n\n"},
		Seed:            &seed,
	}

	req, _, err := BuildRequest("m", []api.Message{api.TextMessage(api.RoleUser, "Hi")}, opts, DefaultDefaults(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.MaxTokens != 64 {
		t.Errorf("max_tokens = %d, want 64", req.MaxTokens)
	}
	if req.Temperature != 0 {
		t.Errorf("temperature = %v, want 0", req.Temperature)
	}
	if req.TopP == nil || *req.TopP != 0.9 {
		t.Errorf("top_p = %v, want 0.9", req.TopP)
	}
	if len(req.Stop) != 1 || req.Stop[0] != "\n\n" {
		t.Errorf("stop = %v", req.Stop)
	}
	if req.Seed == nil || *req.Seed != 42 {
		t.Errorf("seed = %v, want 42", req.Seed)
	}
	if !req.Stream {
		t.Error("expected stream to be true")
	}
}
