package action

import (
	"context"
	"testing"

	"github.com/eqtylab/cupcake/internal/condition"
	"github.com/eqtylab/cupcake/internal/config"
	"github.com/eqtylab/cupcake/internal/decision"
	"github.com/eqtylab/cupcake/internal/policy"
)

// strp returns a pointer to s, for constructing Condition literals where
// Match/Pattern presence (not just value) matters.
func strp(s string) *string { return &s }

func newExecutor() *Executor {
	settings := config.DefaultSettings()
	return &Executor{
		Settings:  settings,
		Condition: &condition.Evaluator{Settings: settings},
	}
}

func TestExecuteProvideFeedbackSubstitutes(t *testing.T) {
	x := newExecutor()
	act := policy.Action{Kind: policy.ActionProvideFeedback, Message: "tool was {{tool_name}}"}
	vars := map[string]string{"tool_name": "Bash"}

	eff := x.Execute(context.Background(), act, &condition.EvaluationContext{}, vars)
	if eff.Hard {
		t.Fatal("expected soft effect")
	}
	if eff.Feedback != "tool was Bash" {
		t.Fatalf("got %q", eff.Feedback)
	}
}

func TestExecuteBlockWithFeedbackIsHardDeny(t *testing.T) {
	x := newExecutor()
	act := policy.Action{Kind: policy.ActionBlockWithFeedback, Message: "no"}

	eff := x.Execute(context.Background(), act, &condition.EvaluationContext{}, nil)
	if !eff.Hard || eff.Decision != decision.Deny {
		t.Fatalf("expected hard deny, got %+v", eff)
	}
}

func TestExecuteUpdateState(t *testing.T) {
	x := newExecutor()
	act := policy.Action{Kind: policy.ActionUpdateState, StateKey: "k", StateValue: "v"}

	eff := x.Execute(context.Background(), act, &condition.EvaluationContext{}, nil)
	if len(eff.StateUpdates) != 1 || eff.StateUpdates[0].Key != "k" || eff.StateUpdates[0].Value != "v" {
		t.Fatalf("got %+v", eff.StateUpdates)
	}
}

func TestExecuteConditionalPicksThen(t *testing.T) {
	x := newExecutor()
	evalCtx := &condition.EvaluationContext{ToolName: "Bash"}
	then := policy.Action{Kind: policy.ActionAllow}
	els := policy.Action{Kind: policy.ActionBlockWithFeedback, Message: "denied"}
	act := policy.Action{
		Kind: policy.ActionConditional,
		When: policy.Condition{Field: "tool_name", Match: strp("Bash")},
		Then: &then,
		Else: &els,
	}

	eff := x.Execute(context.Background(), act, evalCtx, nil)
	if eff.Decision != decision.Allow {
		t.Fatalf("expected then branch (allow), got %+v", eff)
	}
}

func TestExecuteRunCommandBlockEscalatesOnFailure(t *testing.T) {
	x := newExecutor()
	act := policy.Action{
		Kind:      policy.ActionRunCommand,
		OnFailure: policy.OnFailureBlock,
	}
	act.Command.Mode = 0 // ModeArray
	act.Command.Command = []string{"false"}

	eff := x.Execute(context.Background(), act, &condition.EvaluationContext{}, nil)
	if !eff.Hard || eff.Decision != decision.Deny {
		t.Fatalf("expected escalation to hard deny, got %+v", eff)
	}
}

func TestExecuteRunCommandBlockUsesOnFailureFeedback(t *testing.T) {
	x := newExecutor()
	act := policy.Action{
		Kind:              policy.ActionRunCommand,
		OnFailure:         policy.OnFailureBlock,
		OnFailureFeedback: "command {{tool_name}} failed",
	}
	act.Command.Mode = 0 // ModeArray
	act.Command.Command = []string{"false"}

	eff := x.Execute(context.Background(), act, &condition.EvaluationContext{}, map[string]string{"tool_name": "Bash"})
	if !eff.Hard || eff.Decision != decision.Deny {
		t.Fatalf("expected hard deny, got %+v", eff)
	}
	if eff.Reason != "command Bash failed" {
		t.Fatalf("expected on_failure_feedback to be used verbatim, got %q", eff.Reason)
	}
}

func TestExecuteRunCommandContinueOnFailureIsSoftNoOp(t *testing.T) {
	x := newExecutor()
	act := policy.Action{
		Kind:      policy.ActionRunCommand,
		OnFailure: policy.OnFailureContinue,
	}
	act.Command.Mode = 0 // ModeArray
	act.Command.Command = []string{"false"}

	eff := x.Execute(context.Background(), act, &condition.EvaluationContext{}, nil)
	if eff.Hard {
		t.Fatalf("expected on_failure:continue to leave the failure soft, got %+v", eff)
	}
}
