// Package condition implements the Condition Evaluator: resolving a
// policy's condition tree against a single event into true or false.
package condition

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// EvaluationContext is the read-only view of one event a Condition is
// evaluated against. It is built once per event and shared across every
// policy matched to it.
type EvaluationContext struct {
	EventType string
	ToolName  string
	SessionID string
	Prompt    string
	ToolInput json.RawMessage
	Env       map[string]string
	CWD       string
}

// Field resolves a dotted field path to its string value. Reserved
// top-level names (event_type, tool_name, session_id, prompt, cwd) are
// looked up directly; env.NAME reads an environment variable;
// tool_input.<path> is walked as a path into tool_input's JSON, including
// numeric segments as array indices; any other name yields the empty
// string. A path that cannot be resolved — missing
// key, out-of-range index, or type mismatch — yields the empty string
// rather than an error: conditions must be total functions over whatever
// shape of event arrives.
func (ctx *EvaluationContext) Field(name string) string {
	switch name {
	case "event_type":
		return ctx.EventType
	case "tool_name":
		return ctx.ToolName
	case "session_id":
		return ctx.SessionID
	case "prompt":
		return ctx.Prompt
	case "cwd":
		return ctx.CWD
	}

	if rest, ok := strings.CutPrefix(name, "env."); ok {
		return ctx.Env[rest]
	}

	if rest, ok := strings.CutPrefix(name, "tool_input."); ok {
		return walkToolInput(ctx.ToolInput, rest)
	}

	return ""
}

// walkToolInput decodes raw into a generic JSON value and descends path,
// a dot-separated sequence of object keys and array indices.
func walkToolInput(raw json.RawMessage, path string) string {
	if len(raw) == 0 {
		return ""
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}

	for _, segment := range strings.Split(path, ".") {
		switch v := value.(type) {
		case map[string]any:
			value = v[segment]
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(v) {
				return ""
			}
			value = v[idx]
		default:
			return ""
		}
	}

	return stringify(value)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
