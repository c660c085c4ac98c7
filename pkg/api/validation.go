package api

import "fmt"

// ValidateMessages checks a normalized conversation before translation. It
// returns an *APIError describing the first problem, or nil. Generation
// options are not checked here; the endpoint judges their values.
func ValidateMessages(msgs []Message) *APIError {
	if len(msgs) == 0 {
		return NewInvalidRequestError("messages", "at least one message is required")
	}
	for i, m := range msgs {
		if m.Role == "" {
			return NewInvalidRequestError(fmt.Sprintf("messages[%d].role", i), "role is required")
		}
	}
	return nil
}
