package condition

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/eqtylab/cupcake/internal/command"
	"github.com/eqtylab/cupcake/internal/config"
	"github.com/eqtylab/cupcake/internal/policy"
)

// regexCache is process-local: the same pattern string is compiled once
// regardless of how many policies or invocations reference it. Condition
// trees are pure and side-effect free except for check, which is never
// cached: a check clause runs a command and its result can legitimately
// differ between calls.
var regexCache sync.Map // map[string]*regexp.Regexp

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := regexCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	regexCache.Store(pattern, re)
	return re, nil
}

// Evaluator resolves condition trees against an EvaluationContext, running
// check clauses through the Command Executor.
type Evaluator struct {
	Settings config.Settings
	AuditDir string
}

// Evaluate resolves cond to a boolean. Any internal failure — an
// uncompilable pattern slipping past load-time validation, a check
// command that cannot be spawned — resolves to false rather than
// propagating an error up into a host-visible crash; Cupcake degrades to
// "condition not satisfied," never to a process exit.
func (e *Evaluator) Evaluate(ctx context.Context, cond policy.Condition, evalCtx *EvaluationContext, vars map[string]string) bool {
	switch {
	case cond.Not != nil:
		return !e.Evaluate(ctx, *cond.Not, evalCtx, vars)

	case len(cond.And) > 0:
		for _, sub := range cond.And {
			if !e.Evaluate(ctx, sub, evalCtx, vars) {
				return false
			}
		}
		return true

	case len(cond.Or) > 0:
		for _, sub := range cond.Or {
			if e.Evaluate(ctx, sub, evalCtx, vars) {
				return true
			}
		}
		return false

	case cond.Check != nil:
		return e.evaluateCheck(ctx, *cond.Check, vars)

	case cond.Pattern != nil:
		re, err := compilePattern(*cond.Pattern)
		if err != nil {
			return false
		}
		return re.MatchString(evalCtx.Field(cond.Field))

	case cond.Match != nil:
		return evalCtx.Field(cond.Field) == *cond.Match

	default:
		// An empty condition node (the top-level conditions: {} shorthand
		// for "always applies") is vacuously true.
		return true
	}
}

func (e *Evaluator) evaluateCheck(ctx context.Context, clause policy.CheckClause, vars map[string]string) bool {
	result, err := command.Execute(ctx, clause.Command, vars, e.Settings, e.AuditDir)
	if err != nil {
		return false
	}
	return result.Success == clause.WantSuccess()
}

// ErrUnknownConditionShape describes a condition node with none of its
// operator fields set. Neither Evaluate nor policy.Validate returns it:
// Evaluate treats such a node as vacuously true.
var ErrUnknownConditionShape = fmt.Errorf("condition: must specify one of match, pattern, check, not, and, or")
