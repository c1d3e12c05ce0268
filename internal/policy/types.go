// Package policy implements the Policy Loader: discovering, parsing, and
// merging the YAML guardrail files that define Cupcake's behavior, into
// the in-memory Policy data model the Condition Evaluator and Action
// Executor consume.
package policy

import (
	"github.com/eqtylab/cupcake/internal/command"
	"gopkg.in/yaml.v3"
)

// Policy is one named guardrail: a condition tree gating a single action.
type Policy struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Conditions  Condition `yaml:"conditions"`
	Action      Action    `yaml:"action"`
}

// Condition is the recursive condition tree. Exactly the fields relevant
// to the node's kind are populated; And/Or/Not are determined by presence
// of their sub-trees, Match/Pattern/Check by presence of their own
// pointers rather than by zero-value comparison: a policy author writing
// match: "" (asserting a field is blank, per the missing-field-is-empty-
// string convention) must be distinguishable from not writing match at
// all, or the condition silently degrades to the vacuous-match default.
// state_query is deliberately absent: state is read only by the State
// Manager's own operations, never by condition evaluation.
type Condition struct {
	Field   string       `yaml:"field,omitempty"`
	Match   *string      `yaml:"match,omitempty"`
	Pattern *string      `yaml:"pattern,omitempty"`
	Check   *CheckClause `yaml:"check,omitempty"`
	Not     *Condition   `yaml:"not,omitempty"`
	And     []Condition  `yaml:"and,omitempty"`
	Or      []Condition  `yaml:"or,omitempty"`
}

// CheckClause runs a command and compares its exit status against
// ExpectSuccess: the condition is true iff (exit_status == 0) ==
// ExpectSuccess. ExpectSuccess defaults to true when omitted, so the
// common case ("this command must succeed") needs no extra YAML.
type CheckClause struct {
	Command       command.CommandSpec `yaml:"command"`
	ExpectSuccess *bool               `yaml:"expect_success,omitempty"`
}

// WantSuccess resolves ExpectSuccess's default: true when unset.
func (c CheckClause) WantSuccess() bool {
	if c.ExpectSuccess == nil {
		return true
	}
	return *c.ExpectSuccess
}

// ActionKind discriminates the Action tagged union.
type ActionKind string

const (
	ActionProvideFeedback   ActionKind = "provide_feedback"
	ActionInjectContext     ActionKind = "inject_context"
	ActionBlockWithFeedback ActionKind = "block_with_feedback"
	ActionAllow             ActionKind = "allow"
	ActionAsk               ActionKind = "ask"
	ActionRunCommand        ActionKind = "run_command"
	ActionUpdateState       ActionKind = "update_state"
	ActionConditional       ActionKind = "conditional"
)

// OnFailureMode discriminates run_command's two failure dispositions.
type OnFailureMode string

const (
	// OnFailureContinue treats a nonzero exit as an ordinary soft
	// no-op: evaluation proceeds as if the action had no effect.
	OnFailureContinue OnFailureMode = "continue"
	// OnFailureBlock escalates a nonzero exit to a hard Deny.
	OnFailureBlock OnFailureMode = "block"
)

// Action is the tagged union over the eight action kinds. Kind selects
// which field group is meaningful.
type Action struct {
	Kind ActionKind `yaml:"-"`

	// provide_feedback, inject_context, block_with_feedback, ask: a
	// templated message string.
	Message string `yaml:"message,omitempty"`

	// provide_feedback, block_with_feedback: when true, the message is
	// also surfaced as injected context (as if an inject_context action
	// with the same text had fired alongside it), not just as feedback.
	IncludeContext bool `yaml:"include_context,omitempty"`

	// allow: an optional templated reason, carried through to the host as
	// permissionDecisionReason.
	AllowReason string `yaml:"reason,omitempty"`

	// run_command. OnFailure defaults to OnFailureContinue when the
	// policy author omits it.
	Command           command.CommandSpec `yaml:"command,omitempty"`
	OnFailure         OnFailureMode       `yaml:"on_failure,omitempty"`
	OnFailureFeedback string              `yaml:"on_failure_feedback,omitempty"`

	// update_state.
	StateKey   string `yaml:"key,omitempty"`
	StateValue string `yaml:"value,omitempty"`

	// conditional.
	When Condition `yaml:"when,omitempty"`
	Then *Action    `yaml:"then,omitempty"`
	Else *Action    `yaml:"else,omitempty"`
}

// messageShape decodes provide_feedback/block_with_feedback, which may be
// written either as a bare templated string (no include_context) or as an
// object carrying message plus the optional include_context flag.
type messageShape struct {
	Message        string
	IncludeContext bool
}

func (m *messageShape) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&m.Message)
	}
	var obj struct {
		Message        string `yaml:"message"`
		IncludeContext bool   `yaml:"include_context"`
	}
	if err := value.Decode(&obj); err != nil {
		return err
	}
	m.Message, m.IncludeContext = obj.Message, obj.IncludeContext
	return nil
}

// allowShape decodes allow, which may be written as bare `allow: true` (no
// reason) or as an object carrying an optional templated reason.
type allowShape struct {
	Reason string
}

func (a *allowShape) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var b bool
		if err := value.Decode(&b); err == nil {
			return nil
		}
		return value.Decode(&a.Reason)
	}
	var obj struct {
		Reason string `yaml:"reason"`
	}
	if err := value.Decode(&obj); err != nil {
		return err
	}
	a.Reason = obj.Reason
	return nil
}

// UnmarshalYAML detects which of the eight action shapes was written by
// probing for the field that uniquely identifies it, then fills Kind.
func (a *Action) UnmarshalYAML(value *yaml.Node) error {
	var probe struct {
		ProvideFeedback   *messageShape        `yaml:"provide_feedback"`
		InjectContext     *string              `yaml:"inject_context"`
		BlockWithFeedback *messageShape        `yaml:"block_with_feedback"`
		Allow             *allowShape          `yaml:"allow"`
		Ask               *string              `yaml:"ask"`
		RunCommand        *command.CommandSpec `yaml:"run_command"`
		OnFailure         OnFailureMode        `yaml:"on_failure"`
		OnFailureFeedback string               `yaml:"on_failure_feedback"`
		UpdateState       *struct {
			Key   string `yaml:"key"`
			Value string `yaml:"value"`
		} `yaml:"update_state"`
		Conditional *struct {
			When Condition `yaml:"when"`
			Then *Action   `yaml:"then"`
			Else *Action   `yaml:"else"`
		} `yaml:"conditional"`
	}
	if err := value.Decode(&probe); err != nil {
		return err
	}

	switch {
	case probe.ProvideFeedback != nil:
		a.Kind = ActionProvideFeedback
		a.Message = probe.ProvideFeedback.Message
		a.IncludeContext = probe.ProvideFeedback.IncludeContext
	case probe.InjectContext != nil:
		a.Kind = ActionInjectContext
		a.Message = *probe.InjectContext
	case probe.BlockWithFeedback != nil:
		a.Kind = ActionBlockWithFeedback
		a.Message = probe.BlockWithFeedback.Message
		a.IncludeContext = probe.BlockWithFeedback.IncludeContext
	case probe.Allow != nil:
		a.Kind = ActionAllow
		a.AllowReason = probe.Allow.Reason
	case probe.Ask != nil:
		a.Kind = ActionAsk
		a.Message = *probe.Ask
	case probe.RunCommand != nil:
		a.Kind = ActionRunCommand
		a.Command = *probe.RunCommand
		a.OnFailure = probe.OnFailure
		if a.OnFailure == "" {
			a.OnFailure = OnFailureContinue
		}
		a.OnFailureFeedback = probe.OnFailureFeedback
	case probe.UpdateState != nil:
		a.Kind = ActionUpdateState
		a.StateKey = probe.UpdateState.Key
		a.StateValue = probe.UpdateState.Value
	case probe.Conditional != nil:
		a.Kind = ActionConditional
		a.When = probe.Conditional.When
		a.Then = probe.Conditional.Then
		a.Else = probe.Conditional.Else
	default:
		return errUnknownActionShape
	}
	return nil
}

// FlatPolicy pairs a Policy with the event type and tool matcher pattern
// under which it was declared, the unit the Policy Evaluator dispatches
// over.
type FlatPolicy struct {
	Event   string
	Matcher string
	Policy  Policy
}

// Document is the top-level parsed form of a single guardrail YAML file,
// before fragment merge: event name to matcher pattern to policy list,
// plus the root-only settings and imports keys.
type Document struct {
	Settings map[string]any        `yaml:"settings,omitempty"`
	Imports  []string              `yaml:"imports,omitempty"`
	Events   map[string]MatcherMap `yaml:",inline"`
}

// MatcherMap maps a tool-name matcher pattern to the policies guarding it.
type MatcherMap map[string][]Policy
