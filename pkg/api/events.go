package api

// StreamEventType identifies the variant of a StreamEvent.
type StreamEventType string

const (
	EventStart  StreamEventType = "start"
	EventDelta  StreamEventType = "delta"
	EventFinish StreamEventType = "finish"
	EventError  StreamEventType = "error"
)

// StreamEvent is a single event of a streaming generation.
//
// A stream always begins with exactly one start event, continues with zero
// or more delta events and ends with exactly one terminal event (finish or
// error). No events follow the terminal one.
type StreamEvent struct {
	Type StreamEventType

	// Warnings is set on the start event.
	Warnings []Warning

	// Delta is the incremental text of a delta event. It never contains
	// previously emitted text.
	Delta string

	// Usage and FinishReason are set on the finish event.
	Usage        *Usage
	FinishReason FinishReason

	// Err is set on the error event.
	Err *APIError
}

// IsTerminal reports whether the event ends the stream.
func (e StreamEvent) IsTerminal() bool {
	return e.Type == EventFinish || e.Type == EventError
}

// StartEvent returns a start event carrying the given warnings.
func StartEvent(warnings []Warning) StreamEvent {
	return StreamEvent{Type: EventStart, Warnings: warnings}
}

// DeltaEvent returns a delta event for the given text increment.
func DeltaEvent(text string) StreamEvent {
	return StreamEvent{Type: EventDelta, Delta: text}
}

// FinishEvent returns a finish event.
func FinishEvent(usage Usage, reason FinishReason) StreamEvent {
	return StreamEvent{Type: EventFinish, Usage: &usage, FinishReason: reason}
}

// ErrorEvent returns an error event wrapping err.
func ErrorEvent(err error) StreamEvent {
	return StreamEvent{Type: EventError, Err: WrapError(err)}
}
