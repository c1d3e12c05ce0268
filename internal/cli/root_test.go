package cli

import "testing"

func TestRootCmd_Use(t *testing.T) {
	if rootCmd.Use != "cupcake" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "cupcake")
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	expected := []string{"run", "sync"}
	for _, name := range expected {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root should have %q subcommand", name)
		}
	}
}

func TestRootCmd_HasConfigAndDebugFlags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("config") == nil {
		t.Error("root should have a --config persistent flag")
	}
	if rootCmd.PersistentFlags().Lookup("debug") == nil {
		t.Error("root should have a --debug persistent flag")
	}
}
