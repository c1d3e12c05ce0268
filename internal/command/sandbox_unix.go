//go:build !windows

package command

import (
	"os/exec"
	"os/user"
	"strconv"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/eqtylab/cupcake/internal/config"
)

// applySandbox configures cmd to drop to sandboxUID before exec, when the
// current process has the privilege to do so. Dropping only ever makes
// sense running as root; elsewhere it is silently skipped and the caller's
// warn callback is used to surface that instead of failing the command
// outright, since a misconfigured sandbox_uid on a non-root runner is an
// operational fact, not a policy error.
func applySandbox(cmd *exec.Cmd, sandboxUID *config.SandboxIdentity, warn func(error)) {
	if sandboxUID == nil {
		return
	}
	if unix.Geteuid() != 0 {
		warn(errSandboxRequiresRoot)
		return
	}

	uid := sandboxUID.UID
	if sandboxUID.Name != "" {
		u, err := user.Lookup(sandboxUID.Name)
		if err != nil {
			warn(err)
			return
		}
		parsed, err := strconv.ParseUint(u.Uid, 10, 32)
		if err != nil {
			warn(err)
			return
		}
		uid = uint32(parsed)
	}

	cmd.SysProcAttr = &syscall.SysProcAttr{
		Credential: &syscall.Credential{Uid: uid, Gid: uid},
	}
}
