//go:build windows

package command

import (
	"os/exec"

	"github.com/eqtylab/cupcake/internal/config"
)

// applySandbox is a no-op on Windows: sandbox_uid has no equivalent here.
// The caller's warn callback reports this so debug_mode surfaces it rather
// than silently ignoring a configured setting.
func applySandbox(cmd *exec.Cmd, sandboxUID *config.SandboxIdentity, warn func(error)) {
	if sandboxUID != nil {
		warn(errSandboxUnsupported)
	}
}
