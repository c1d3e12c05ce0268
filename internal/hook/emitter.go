package hook

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/eqtylab/cupcake/internal/decision"
)

// hookSpecificOutput mirrors the host's hookSpecificOutput object.
type hookSpecificOutput struct {
	HookEventName            string `json:"hookEventName,omitempty"`
	PermissionDecision       string `json:"permissionDecision,omitempty"`
	PermissionDecisionReason string `json:"permissionDecisionReason,omitempty"`
	AdditionalContext        string `json:"additionalContext,omitempty"`
}

// wireOutput mirrors the host's top-level JSON response object.
type wireOutput struct {
	Continue           bool                `json:"continue,omitempty"`
	StopReason         string              `json:"stopReason,omitempty"`
	HookSpecificOutput *hookSpecificOutput `json:"hookSpecificOutput,omitempty"`
}

const (
	permissionAllow = "allow"
	permissionDeny  = "deny"
	permissionAsk   = "ask"
)

// Emit serializes decision to w following the host's JSON contract for the
// given event type, and never returns an error the caller should treat as
// fatal: a serialization failure here is itself folded into the
// graceful-degradation policy by the runtime glue that calls Emit.
//
// UserPromptSubmit is anomalous: an Allow-with-context decision writes the
// context as a raw string with no JSON wrapping, matching the host's
// "stdout becomes conversational context" semantics for that one hook.
func Emit(w io.Writer, eventType EventType, d decision.Decision) error {
	if eventType == EventUserPromptSubmit {
		return emitUserPromptSubmit(w, d)
	}
	return emitStandard(w, eventType, d)
}

func emitUserPromptSubmit(w io.Writer, d decision.Decision) error {
	switch d.Kind {
	case decision.AllowWithContext:
		if d.Context != "" {
			_, err := io.WriteString(w, d.Context)
			return err
		}
		return writeJSON(w, wireOutput{})
	case decision.Deny:
		return writeJSON(w, wireOutput{
			Continue:   false,
			StopReason: d.Reason,
		})
	default:
		return writeJSON(w, wireOutput{})
	}
}

func emitStandard(w io.Writer, eventType EventType, d decision.Decision) error {
	out := wireOutput{
		HookSpecificOutput: &hookSpecificOutput{
			HookEventName: string(eventType),
		},
	}

	switch d.Kind {
	case decision.Allow, decision.AllowWithContext:
		out.HookSpecificOutput.PermissionDecision = permissionAllow
		if d.Reason != "" {
			out.HookSpecificOutput.PermissionDecisionReason = d.Reason
		}
		if d.Kind == decision.AllowWithContext && d.Context != "" {
			out.HookSpecificOutput.AdditionalContext = d.Context
		}
	case decision.Deny:
		out.HookSpecificOutput.PermissionDecision = permissionDeny
		out.HookSpecificOutput.PermissionDecisionReason = d.Reason
		out.Continue = false
		out.StopReason = d.Reason
	case decision.Ask:
		out.HookSpecificOutput.PermissionDecision = permissionAsk
		out.HookSpecificOutput.PermissionDecisionReason = d.Reason
	default:
		return fmt.Errorf("hook: unknown decision kind %d", d.Kind)
	}

	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}
