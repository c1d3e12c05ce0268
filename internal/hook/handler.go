package hook

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/eqtylab/cupcake/internal/condition"
	"github.com/eqtylab/cupcake/internal/config"
	"github.com/eqtylab/cupcake/internal/eval"
	"github.com/eqtylab/cupcake/internal/policy"
	"github.com/eqtylab/cupcake/internal/state"
)

// Handler is the runtime glue between the host contract and the policy
// pipeline: decode, build an evaluation context, run the Policy Evaluator,
// apply any state updates, and emit the resulting decision.
type Handler struct {
	Settings  config.Settings
	Policies  []policy.FlatPolicy
	Evaluator *eval.Evaluator
	State     *state.Manager
	AuditDir  string
}

// Run reads one event from r, evaluates it, and writes the host-contract
// decision to w. It never returns a non-nil error for a policy decision —
// only for conditions that should abort the process entirely (an
// unreadable/unparseable event) — matching the graceful-degradation rule
// that every internal failure after decoding resolves to an Allow rather
// than a crash.
func (h *Handler) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	event, err := Decode(r, h.Settings.DebugMode)
	if err != nil {
		return err
	}

	evalCtx := buildEvaluationContext(event)

	outcome := h.Evaluator.Evaluate(ctx, string(event.Type), event.ToolName, h.Policies, evalCtx, evaluationVars(event, evalCtx))

	for _, upd := range outcome.StateUpdates {
		if h.State == nil {
			continue
		}
		if err := h.State.AppendCustom(event.SessionID, upd.Key, upd.Value); err != nil {
			slog.Warn("hook: failed to append state update", "error", err)
		}
	}

	if event.Type == EventPostToolUse && h.State != nil {
		if err := h.State.AppendToolUsage(event.SessionID, event.ToolName, event.ToolInput); err != nil {
			slog.Warn("hook: failed to append tool usage", "error", err)
		}
	}

	return Emit(w, event.Type, outcome.Decision)
}

func buildEvaluationContext(event *Event) *condition.EvaluationContext {
	env := map[string]string{}
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				env[kv[:i]] = kv[i+1:]
				break
			}
		}
	}

	return &condition.EvaluationContext{
		EventType: string(event.Type),
		ToolName:  event.ToolName,
		SessionID: event.SessionID,
		Prompt:    event.Prompt,
		ToolInput: event.ToolInput,
		Env:       env,
		CWD:       event.CWD,
	}
}

// evaluationVars is the template variable map {{name}} expands against in
// command/action/message templates: a flattened, string-valued view of
// the same fields EvaluationContext exposes for condition matching — the
// reserved top-level names, every tool_input.<path> leaf (so
// {{tool_input.command}} resolves the same way the condition evaluator's
// Field("tool_input.command") does), and every env.<NAME> the captured
// environment carries.
func evaluationVars(event *Event, evalCtx *condition.EvaluationContext) map[string]string {
	vars := map[string]string{
		"event_type": string(event.Type),
		"tool_name":  event.ToolName,
		"session_id": event.SessionID,
		"prompt":     event.Prompt,
		"cwd":        event.CWD,
	}

	flattenToolInput(evalCtx.ToolInput, "tool_input", vars)

	for name, value := range evalCtx.Env {
		vars["env."+name] = value
	}

	return vars
}

// flattenToolInput decodes raw as generic JSON and writes one vars entry
// per leaf value, keyed by prefix plus its dotted path — object keys and
// array indices alike — matching the same field-path convention
// EvaluationContext.Field uses to walk tool_input. A raw value that fails
// to decode contributes nothing rather than erroring: template expansion
// is total, same as field extraction.
func flattenToolInput(raw json.RawMessage, prefix string, vars map[string]string) {
	if len(raw) == 0 {
		return
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return
	}
	flattenValue(prefix, value, vars)
}

func flattenValue(prefix string, value any, vars map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		for key, sub := range v {
			flattenValue(prefix+"."+key, sub, vars)
		}
	case []any:
		for i, sub := range v {
			flattenValue(prefix+"."+strconv.Itoa(i), sub, vars)
		}
	case nil:
		vars[prefix] = ""
	case string:
		vars[prefix] = v
	case bool:
		vars[prefix] = strconv.FormatBool(v)
	case float64:
		vars[prefix] = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		vars[prefix] = ""
	}
}
