package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/eqtylab/cupcake/internal/config"
)

// shellPath returns the OS-appropriate shell to invoke Script through.
// POSIX systems prefer the user's $SHELL, falling back to /bin/sh; Windows
// has no /bin/sh equivalent worth shelling out to here, so cmd.exe is used.
func shellPath() (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd.exe", []string{"/C"}
	}
	sh := os.Getenv("SHELL")
	if sh == "" {
		sh = "/bin/sh"
	}
	return sh, []string{"-c"}
}

type auditRecord struct {
	Time     string `json:"time"`
	Script   string `json:"script"`
	ExitCode int    `json:"exit_code"`
	Duration string `json:"duration"`
}

// writeAuditLog appends one JSON line to a daily-rotated audit file under
// dir. Audit logging never blocks or fails command execution: a write
// error here is swallowed after being reported to the caller-supplied
// warn function, since the command already ran and its result must still
// reach the policy engine.
func writeAuditLog(dir string, rec auditRecord, warn func(error)) {
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		warn(fmt.Errorf("command: create audit dir: %w", err))
		return
	}
	name := filepath.Join(dir, "exec-"+strings.ReplaceAll(rec.Time[:10], "-", "")+".jsonl")
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		warn(fmt.Errorf("command: open audit log: %w", err))
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(rec); err != nil {
		warn(fmt.Errorf("command: write audit log: %w", err))
	}
}

// runShell executes a Shell-mode CommandSpec's Script through the host
// shell. Callers must have already verified Settings.AllowShell; runShell
// itself does not re-check, since the permission gate belongs to the
// caller that has the Settings value in scope (Execute, in executor.go).
func runShell(ctx context.Context, script string, sandboxUID *config.SandboxIdentity, auditDir string, warn func(error)) (*Result, error) {
	shell, baseArgs := shellPath()
	args := append(append([]string{}, baseArgs...), script)

	cmd := exec.CommandContext(ctx, shell, args...)
	applySandbox(cmd, sandboxUID, warn)

	start := time.Now()
	stdout, stderr, exitCode, runErr := runCmd(cmd)
	dur := time.Since(start)

	if auditDir != "" {
		writeAuditLog(auditDir, auditRecord{
			Time:     start.UTC().Format(time.RFC3339),
			Script:   script,
			ExitCode: exitCode,
			Duration: dur.String(),
		}, warn)
	}

	if runErr != nil && exitCode < 0 {
		return nil, runErr
	}

	return &Result{
		ExitStatus: exitCode,
		Stdout:     stdout,
		Stderr:     stderr,
		Duration:   dur,
		Success:    exitCode == 0,
	}, nil
}
