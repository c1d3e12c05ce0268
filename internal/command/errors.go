package command

import "errors"

// Sentinel errors surfaced during command build (before any process spawns)
// and execution. Build errors propagate as action failures so on_failure
// policy applies per the error handling design; they never escalate to a
// host-visible crash.
var (
	errEmptyCommandSpec = errors.New("command: empty command specification")

	// ErrTemplateInCommandPath is the bright-line rule: {{...}} may never
	// appear in command[0], checked both at the loader and, defensively,
	// here at build time.
	ErrTemplateInCommandPath = errors.New("command: template syntax not permitted in command path")

	// ErrShellNotAllowed is returned when a Shell-mode spec is built while
	// Settings.AllowShell is false.
	ErrShellNotAllowed = errors.New("command: shell mode is disabled by settings.allow_shell")

	// ErrUnsupportedSyntax covers String-mode constructs the limited
	// grammar rejects: command substitution, backticks, combined
	// redirects, trailing operators, and empty segments between operators.
	// Glob characters and $NAME text are not rejected: they are passed to
	// the program as literal argument text, never expanded. A line with no
	// tokens at all yields errEmptyCommandSpec instead.
	ErrUnsupportedSyntax = errors.New("command: unsupported string-mode syntax")

	// ErrBackgroundExecution names the background-execution case. No code
	// path in this package returns it: CommandSpec has no background
	// field, and every spawned process is awaited before Execute returns.
	ErrBackgroundExecution = errors.New("command: background execution is not supported")

	errSandboxRequiresRoot = errors.New("command: sandbox_uid requires running as root, skipping privilege drop")
	errSandboxUnsupported  = errors.New("command: sandbox_uid is not supported on this platform, skipping privilege drop")
)
