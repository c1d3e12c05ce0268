package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var runEventFlag string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate one hook event read from standard input",
	Long: `run reads a single JSON hook event from standard input, evaluates
it against the loaded guardrail policies, and writes the resulting
decision to standard output. It exits 0 under every non-catastrophic
condition: exit codes are never used to signal policy decisions.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runEventFlag, "event", "", "expected hook_event_name, for host diagnostics only; the event actually read on stdin is authoritative")
}

func runRun(cmd *cobra.Command, _ []string) error {
	d, err := InitDependencies(configFlag, debugFlag)
	if err != nil {
		// Policy load failure still degrades gracefully: allow silently.
		slog.Warn("cupcake: dependency initialization failed, allowing by default", "error", err)
		_, _ = fmt.Fprintln(os.Stdout, "{}")
		return nil
	}

	if err := d.Handler.Run(cmd.Context(), os.Stdin, os.Stdout); err != nil {
		slog.Warn("cupcake: event handling failed, allowing by default", "error", err)
		_, _ = fmt.Fprintln(os.Stdout, "{}")
		return nil
	}

	return nil
}
