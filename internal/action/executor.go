// Package action implements the Action Executor: turning a matched
// policy's Action into its side effect, classified as soft (feedback,
// context, state, or a successful run_command) or hard (a decision that
// can terminate evaluation outright).
package action

import (
	"context"

	"github.com/eqtylab/cupcake/internal/command"
	"github.com/eqtylab/cupcake/internal/condition"
	"github.com/eqtylab/cupcake/internal/config"
	"github.com/eqtylab/cupcake/internal/decision"
	"github.com/eqtylab/cupcake/internal/policy"
)

// StateUpdate is one update_state side effect waiting to be appended by
// the State Manager.
type StateUpdate struct {
	Key   string
	Value string
}

// Effect is the resolved outcome of running one Action.
type Effect struct {
	Hard         bool
	Decision     decision.Kind
	Reason       string
	Feedback     string
	Context      string
	StateUpdates []StateUpdate
}

// Executor runs Actions, substituting templates with vars and delegating
// run_command and conditional's check clauses to the Command Executor and
// Condition Evaluator respectively.
type Executor struct {
	Settings  config.Settings
	AuditDir  string
	Condition *condition.Evaluator
}

// Execute resolves act into an Effect. Errors from the Command Executor
// never propagate as Go errors: a run_command that fails to spawn at all
// is treated the same as a nonzero exit, so on_failure still applies.
func (x *Executor) Execute(ctx context.Context, act policy.Action, evalCtx *condition.EvaluationContext, vars map[string]string) Effect {
	switch act.Kind {
	case policy.ActionProvideFeedback:
		msg := substitute(vars, act.Message)
		eff := Effect{Feedback: msg}
		if act.IncludeContext {
			eff.Context = msg
		}
		return eff

	case policy.ActionInjectContext:
		return Effect{Context: substitute(vars, act.Message)}

	case policy.ActionBlockWithFeedback:
		msg := substitute(vars, act.Message)
		eff := Effect{Hard: true, Decision: decision.Deny, Reason: msg}
		if act.IncludeContext {
			eff.Context = msg
		}
		return eff

	case policy.ActionAllow:
		return Effect{Hard: true, Decision: decision.Allow, Reason: substitute(vars, act.AllowReason)}

	case policy.ActionAsk:
		return Effect{Hard: true, Decision: decision.Ask, Reason: substitute(vars, act.Message)}

	case policy.ActionRunCommand:
		return x.executeRunCommand(ctx, act, evalCtx, vars)

	case policy.ActionUpdateState:
		return Effect{StateUpdates: []StateUpdate{{
			Key:   substitute(vars, act.StateKey),
			Value: substitute(vars, act.StateValue),
		}}}

	case policy.ActionConditional:
		if x.Condition.Evaluate(ctx, act.When, evalCtx, vars) {
			if act.Then != nil {
				return x.Execute(ctx, *act.Then, evalCtx, vars)
			}
		} else if act.Else != nil {
			return x.Execute(ctx, *act.Else, evalCtx, vars)
		}
		return Effect{}

	default:
		return Effect{}
	}
}

func (x *Executor) executeRunCommand(ctx context.Context, act policy.Action, _ *condition.EvaluationContext, vars map[string]string) Effect {
	result, err := command.Execute(ctx, act.Command, vars, x.Settings, x.AuditDir)
	succeeded := err == nil && result != nil && result.Success
	if succeeded {
		return Effect{}
	}

	if act.OnFailure != policy.OnFailureBlock {
		return Effect{}
	}

	feedback := substitute(vars, act.OnFailureFeedback)
	if feedback == "" {
		feedback = commandFailureStderr(result, err)
	}
	return Effect{Hard: true, Decision: decision.Deny, Reason: feedback}
}

// commandFailureStderr falls back to the failed command's captured stderr
// (or the spawn error itself) when the policy author gave no
// on_failure_feedback override.
func commandFailureStderr(result *command.Result, err error) string {
	if result != nil && len(result.Stderr) > 0 {
		return string(result.Stderr)
	}
	if err != nil {
		return err.Error()
	}
	return "run_command failed"
}

func substitute(vars map[string]string, s string) string {
	return command.Substitute(vars, s)
}
