package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/eqtylab/cupcake/internal/config"
)

// Execute resolves spec against vars and runs it, applying settings'
// allow_shell gate, timeout, sandbox_uid and audit_logging. It is the sole
// entry point other packages use to run a CommandSpec: the Condition
// Evaluator's check field and the Action Executor's run_command both call
// through here, so the safety rules enforced in this package apply
// uniformly regardless of caller.
func Execute(ctx context.Context, spec CommandSpec, vars map[string]string, settings config.Settings, auditDir string) (*Result, error) {
	timeout := time.Duration(settings.TimeoutMS) * time.Millisecond

	switch spec.Mode {
	case ModeArray:
		g, err := buildArrayGraph(vars, spec)
		if err != nil {
			return nil, err
		}
		return runGraph(ctx, g, timeout)

	case ModeString:
		g, err := buildStringGraph(spec.CommandLine, vars)
		if err != nil {
			return nil, err
		}
		return runGraph(ctx, g, timeout)

	case ModeShell:
		if !settings.AllowShell {
			return nil, ErrShellNotAllowed
		}
		script := substitute(vars, spec.Script)
		runCtx := ctx
		var cancel context.CancelFunc
		if timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		dir := ""
		if settings.AuditLogging {
			dir = auditDir
		}
		return runShell(runCtx, script, settings.SandboxUID, dir, func(err error) {
			slog.Warn("command: shell execution warning", "error", err)
		})

	default:
		return nil, errEmptyCommandSpec
	}
}
