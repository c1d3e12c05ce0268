package policy

import "errors"

var (
	errUnknownActionShape = errors.New("policy: action must specify exactly one of its known shapes")

	// ErrDuplicateName is returned when two policies anywhere in the loaded
	// set share a name: names are a global namespace, not scoped per file
	// or per event.
	ErrDuplicateName = errors.New("policy: duplicate policy name")

	// ErrInvalidMatcher is returned when a matcher key fails to compile as
	// a regular expression (the empty string is exempt: it is the
	// match-every-tool convention, not a pattern).
	ErrInvalidMatcher = errors.New("policy: invalid matcher pattern")

	// ErrNoGuardrailsDir is returned when discovery cannot find a
	// guardrails directory from the given start path or any ancestor.
	ErrNoGuardrailsDir = errors.New("policy: no guardrails directory found")
)
