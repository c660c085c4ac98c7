package api

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Known reports whether r is one of the enumerated roles.
func (r Role) Known() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return true
	default:
		return false
	}
}

// PartType identifies the kind of a content part.
type PartType string

const (
	PartText       PartType = "text"
	PartImage      PartType = "image"
	PartToolCall   PartType = "tool-call"
	PartToolResult PartType = "tool-result"
)

// ContentPart is one element of structured message content.
//
// Which fields are populated depends on Type:
//   - text: Text
//   - image: Image (URL or base64 data) and MediaType
//   - tool-call: ToolCallID, ToolName, Args
//   - tool-result: ToolCallID, ToolName, Result
type ContentPart struct {
	Type       PartType `json:"type"`
	Text       string   `json:"text,omitempty"`
	Image      string   `json:"image,omitempty"`
	MediaType  string   `json:"media_type,omitempty"`
	ToolCallID string   `json:"tool_call_id,omitempty"`
	ToolName   string   `json:"tool_name,omitempty"`
	Args       any      `json:"args,omitempty"`
	Result     any      `json:"result,omitempty"`
}

// Message is a single turn of a normalized conversation. When Parts is nil
// the message content is the plain text in Content; otherwise Parts holds
// the ordered content sequence and Content is ignored.
//
// Messages are treated as immutable once handed to a provider.
type Message struct {
	Role    Role          `json:"role"`
	Content string        `json:"content,omitempty"`
	Parts   []ContentPart `json:"parts,omitempty"`
}

// TextMessage returns a plain-text message for the given role.
func TextMessage(role Role, text string) Message {
	return Message{Role: role, Content: text}
}

// HasParts reports whether the message carries structured content.
func (m Message) HasParts() bool {
	return m.Parts != nil
}

// GenerationOptions holds optional generation parameters. Nil fields are
// filled with provider defaults.
type GenerationOptions struct {
	MaxOutputTokens *int     `json:"max_output_tokens,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"top_p,omitempty"`
	StopSequences   []string `json:"stop_sequences,omitempty"`
	Seed            *int64   `json:"seed,omitempty"`
}

// FinishReason is the normalized cause of generation termination.
type FinishReason string

const (
	FinishReasonStop   FinishReason = "stop"
	FinishReasonLength FinishReason = "length"
	FinishReasonOther  FinishReason = "other"
)

// Usage holds token counts for a single call.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// WarningType classifies a non-fatal conversion warning.
type WarningType string

const (
	// WarningUnsupportedContent marks content that was dropped because the
	// target protocol cannot carry it (images, tool calls).
	WarningUnsupportedContent WarningType = "unsupported-content"

	// WarningUnsupportedRole marks a message whose role was not recognized
	// and was forwarded as serialized user text.
	WarningUnsupportedRole WarningType = "unsupported-role"
)

// Warning is a non-fatal signal returned alongside a result.
type Warning struct {
	Type    WarningType `json:"type"`
	Message string      `json:"message"`
}

// GenerationResult is the normalized outcome of a unary generation call.
type GenerationResult struct {
	Text         string       `json:"text"`
	Usage        Usage        `json:"usage"`
	FinishReason FinishReason `json:"finish_reason"`
	Warnings     []Warning    `json:"warnings,omitempty"`
	Model        string       `json:"model,omitempty"`
	RequestID    string       `json:"request_id,omitempty"`
}
