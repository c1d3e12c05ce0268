// Package hook implements the host-contract layer: decoding the event JSON
// Cupcake receives on standard input and serializing the final decision back
// to the host's JSON contract on standard output.
package hook

import "encoding/json"

// EventType identifies which of the seven lifecycle variants an Event carries.
type EventType string

const (
	EventPreToolUse       EventType = "PreToolUse"
	EventPostToolUse      EventType = "PostToolUse"
	EventUserPromptSubmit EventType = "UserPromptSubmit"
	EventNotification     EventType = "Notification"
	EventStop             EventType = "Stop"
	EventSubagentStop     EventType = "SubagentStop"
	EventPreCompact       EventType = "PreCompact"
)

// knownEventTypes lists the closed set of variants this engine understands.
var knownEventTypes = map[EventType]bool{
	EventPreToolUse:       true,
	EventPostToolUse:      true,
	EventUserPromptSubmit: true,
	EventNotification:     true,
	EventStop:             true,
	EventSubagentStop:     true,
	EventPreCompact:       true,
}

// IsKnownEventType reports whether et is one of the seven supported variants.
func IsKnownEventType(et EventType) bool {
	return knownEventTypes[et]
}

// Event is the narrow tagged union described by the data model: common
// fields shared by every variant plus the payload fields relevant to
// whichever Type is set. Fields irrelevant to Type are left zero.
type Event struct {
	Type           EventType
	SessionID      string
	TranscriptPath string
	CWD            string

	// PreToolUse, PostToolUse
	ToolName     string
	ToolInput    json.RawMessage
	ToolResponse string // PostToolUse only

	// UserPromptSubmit
	Prompt string

	// Notification
	Message string

	// PreCompact
	Trigger            string
	CustomInstructions string
}

// RawEvent mirrors the full JSON payload the host sends on standard input.
// It is deliberately permissive: fields the host sends that this engine's
// seven variants do not use (permission_mode, tool_use_id, and the like)
// are simply absent here and dropped by encoding/json during decode rather
// than declared and ignored explicitly.
type RawEvent struct {
	SessionID      string          `json:"session_id"`
	TranscriptPath string          `json:"transcript_path"`
	CWD            string          `json:"cwd"`
	HookEventName  string          `json:"hook_event_name"`
	ToolName       string          `json:"tool_name"`
	ToolInput      json.RawMessage `json:"tool_input"`
	ToolResponse   json.RawMessage `json:"tool_response"`

	Prompt string `json:"prompt"`

	Message string `json:"message"`

	Trigger            string `json:"trigger"`
	CustomInstructions string `json:"custom_instructions"`
}

