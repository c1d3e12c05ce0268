package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eqtylab/cupcake/pkg/version"
)

var (
	configFlag string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "cupcake",
	Short: "Cupcake: policy enforcement for AI coding agents",
	Long: `Cupcake mediates between an AI coding host and its environment,
reading hook events on stdin, evaluating them against a directory of
YAML guardrail policies, and emitting an allow/deny/ask decision on
stdout.`,
	Version: version.GetVersion(),
}

// Execute is the main entry point for the cupcake CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("cupcake %s\n", version.GetVersion()))
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to the guardrails directory (default: discovered by walking up from the working directory)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(syncCmd)
}
