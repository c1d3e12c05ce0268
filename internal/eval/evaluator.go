// Package eval implements the Policy Evaluator: the two-pass algorithm
// that turns the set of policies matched to one event into a single
// Decision, by running every matched policy's action exactly once and
// then aggregating the resulting soft and hard effects.
package eval

import (
	"context"
	"regexp"
	"strings"

	"github.com/eqtylab/cupcake/internal/action"
	"github.com/eqtylab/cupcake/internal/condition"
	"github.com/eqtylab/cupcake/internal/decision"
	"github.com/eqtylab/cupcake/internal/policy"
)

// Outcome is the Policy Evaluator's result: the decision to emit plus any
// state updates to append, regardless of what the final decision was.
type Outcome struct {
	Decision     decision.Decision
	StateUpdates []action.StateUpdate
}

// Evaluator ties the Condition Evaluator and Action Executor together
// over a loaded policy set.
type Evaluator struct {
	Condition *condition.Evaluator
	Action    *action.Executor
}

// Evaluate filters policies to those declared for eventType whose matcher
// matches toolName, evaluates each one's condition exactly once, runs the
// action of every policy whose condition is true exactly once (in file
// order), and aggregates the resulting effects into a single Outcome.
func (e *Evaluator) Evaluate(ctx context.Context, eventType string, toolName string, policies []policy.FlatPolicy, evalCtx *condition.EvaluationContext, vars map[string]string) Outcome {
	var effects []action.Effect

	for _, fp := range policies {
		if fp.Event != eventType {
			continue
		}
		if !matcherMatches(fp.Matcher, toolName) {
			continue
		}
		if !e.Condition.Evaluate(ctx, fp.Policy.Conditions, evalCtx, vars) {
			continue
		}
		effects = append(effects, e.Action.Execute(ctx, fp.Policy.Action, evalCtx, vars))
	}

	return aggregate(eventType, effects)
}

// matcherMatches applies the empty-string-matches-everything convention;
// anything else is a regular expression matched against the tool name.
func matcherMatches(matcher, toolName string) bool {
	if matcher == "" {
		return true
	}
	re, err := regexp.Compile(matcher)
	if err != nil {
		return false
	}
	return re.MatchString(toolName)
}

// aggregate resolves the ordered effect list into a single Outcome. State
// updates are collected from every effect unconditionally: update_state is
// soft regardless of how the rest of the evaluation resolves. The first
// effect with Hard set wins; everything else contributes only soft
// feedback/context. With no hard effect at all, accumulated soft feedback
// escalates to a deny for ordinary tool events — Cupcake never silently
// drops feedback a policy author wrote — except for UserPromptSubmit,
// where soft context instead flows into an allow-with-context decision
// matching the host's raw-text contract for that event. For other events
// soft context is not part of the deny reason, and context alone leaves
// the decision at a plain Allow.
func aggregate(eventType string, effects []action.Effect) Outcome {
	var stateUpdates []action.StateUpdate
	var softFeedback []string
	var softContext []string
	var hard *action.Effect

	for i, eff := range effects {
		stateUpdates = append(stateUpdates, eff.StateUpdates...)
		if eff.Hard {
			if hard == nil {
				hard = &effects[i]
			}
			continue
		}
		if eff.Feedback != "" {
			softFeedback = append(softFeedback, eff.Feedback)
		}
		if eff.Context != "" {
			softContext = append(softContext, eff.Context)
		}
	}

	if hard != nil {
		return Outcome{Decision: resolveHard(eventType, *hard, softFeedback, softContext), StateUpdates: stateUpdates}
	}

	if eventType == "UserPromptSubmit" {
		if len(softFeedback) > 0 || len(softContext) > 0 {
			return Outcome{
				Decision:     decision.Decision{Kind: decision.AllowWithContext, Context: strings.Join(softContext, "\n")},
				StateUpdates: stateUpdates,
			}
		}
	} else if len(softFeedback) > 0 {
		reason := strings.Join(softFeedback, "\n")
		return Outcome{Decision: decision.Decision{Kind: decision.Deny, Reason: reason}, StateUpdates: stateUpdates}
	}

	return Outcome{Decision: decision.Decision{Kind: decision.Allow}, StateUpdates: stateUpdates}
}

func resolveHard(eventType string, hard action.Effect, softFeedback, softContext []string) decision.Decision {
	switch hard.Decision {
	case decision.Deny:
		reason := hard.Reason
		if len(softFeedback) > 0 {
			reason = reason + "\n" + strings.Join(softFeedback, "\n")
		}
		return decision.Decision{Kind: decision.Deny, Reason: reason}

	case decision.Ask:
		return decision.Decision{Kind: decision.Ask, Reason: hard.Reason}

	case decision.Allow:
		if eventType == "UserPromptSubmit" && len(softContext) > 0 {
			return decision.Decision{Kind: decision.AllowWithContext, Reason: hard.Reason, Context: strings.Join(softContext, "\n")}
		}
		return decision.Decision{Kind: decision.Allow, Reason: hard.Reason}

	default:
		return decision.Decision{Kind: decision.Allow}
	}
}
