// Package decision defines the Decision value every component between
// the Action Executor and the Response Emitter passes along: a small,
// dependency-free type so the Action Executor, Policy Evaluator, and host
// contract layer can all share it without forming an import cycle between
// them.
package decision

// Kind discriminates the four decisions Cupcake can reach.
type Kind int

const (
	// Allow means the action proceeds; Reason is optional explanatory text.
	Allow Kind = iota
	// Deny means the action is blocked; Reason explains why.
	Deny
	// Ask means the host should defer to the user.
	Ask
	// AllowWithContext means the action proceeds and Context should be
	// surfaced to the host — as conversational context for
	// UserPromptSubmit, as additionalContext otherwise.
	AllowWithContext
)

// Decision is the Policy Evaluator's result, independent of how the
// Response Emitter ultimately serializes it for the host. Reason carries
// the explanatory text for Deny and Ask; Context carries the text to
// surface alongside an Allow.
type Decision struct {
	Kind    Kind
	Reason  string
	Context string
}
