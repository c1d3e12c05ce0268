package hook

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ErrUnknownEvent is returned when hook_event_name is not one of the seven
// supported variants. Callers treat this as a graceful-allow condition.
var ErrUnknownEvent = fmt.Errorf("hook: unknown event type")

// Decode reads all of r, parses it as JSON, and dispatches on
// hook_event_name to build the narrow Event union. The cwd field is
// mandatory on the wire; if absent, the process working directory is
// substituted and, in debug mode, a warning is logged to standard error.
func Decode(r io.Reader, debug bool) (*Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("hook: read input: %w", err)
	}

	var raw RawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("hook: parse input: %w", err)
	}

	et := EventType(raw.HookEventName)
	if !IsKnownEventType(et) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, raw.HookEventName)
	}

	cwd := raw.CWD
	if cwd == "" {
		if wd, err := os.Getwd(); err == nil {
			cwd = wd
		}
		if debug {
			slog.Warn("hook: cwd missing from event, substituting process working directory", "cwd", cwd)
		}
	}

	event := &Event{
		Type:           et,
		SessionID:      raw.SessionID,
		TranscriptPath: raw.TranscriptPath,
		CWD:            cwd,
	}

	switch et {
	case EventPreToolUse, EventPostToolUse:
		event.ToolName = raw.ToolName
		event.ToolInput = raw.ToolInput
		if len(raw.ToolResponse) > 0 {
			event.ToolResponse = string(raw.ToolResponse)
		}
	case EventUserPromptSubmit:
		event.Prompt = raw.Prompt
	case EventNotification:
		event.Message = raw.Message
	case EventPreCompact:
		event.Trigger = raw.Trigger
		event.CustomInstructions = raw.CustomInstructions
	case EventStop, EventSubagentStop:
		// no extra payload
	}

	return event, nil
}
