package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/eqtylab/cupcake/internal/defs"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Register cupcake as a hook handler in the host's settings.json",
	Long: `sync writes or merges the host's settings.json hook-registration
block so that every known event type is routed through "cupcake run".
Existing host settings are preserved: the merge only ever adds or
replaces the cupcake-owned entries under each event's hook list.`,
	RunE: runSync,
}

// hookTimeoutSeconds is the per-invocation timeout reported to the host,
// distinct from the policy-level command timeout_ms config applies to
// individual run_command actions.
const hookTimeoutSeconds = 60

// toolMatcherEvents lists events that carry a tool_name and so register
// with the host's "*" match-all matcher; all other known event types
// register with an empty/omitted matcher.
var toolMatcherEvents = map[string]bool{
	"PreToolUse":  true,
	"PostToolUse": true,
}

var syncedEventTypes = []string{
	"PreToolUse",
	"PostToolUse",
	"UserPromptSubmit",
	"Notification",
	"Stop",
	"SubagentStop",
	"PreCompact",
}

func runSync(cmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cupcake sync: get working directory: %w", err)
	}
	path := filepath.Join(cwd, ".claude", defs.SettingsJSON)

	existing, err := readSettingsJSON(path)
	if err != nil {
		return fmt.Errorf("cupcake sync: %w", err)
	}

	mergeHookRegistration(existing)

	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return fmt.Errorf("cupcake sync: marshal settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cupcake sync: create settings directory: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("cupcake sync: write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "cupcake: registered hooks in %s\n", path)
	return nil
}

// readSettingsJSON loads the existing settings document, or an empty one
// if the file does not yet exist, so the merge is additive.
func readSettingsJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// mergeHookRegistration writes cupcake's entry into doc["hooks"][event],
// replacing any prior cupcake entry in that list by command prefix while
// leaving hooks registered by other tools untouched.
func mergeHookRegistration(doc map[string]any) {
	hooksRaw, _ := doc["hooks"].(map[string]any)
	if hooksRaw == nil {
		hooksRaw = map[string]any{}
	}

	for _, event := range syncedEventTypes {
		entry := map[string]any{
			"type":    "command",
			"command": fmt.Sprintf("cupcake run --event %s", event),
			"timeout": hookTimeoutSeconds,
		}

		block := map[string]any{"hooks": []any{entry}}
		if toolMatcherEvents[event] {
			block["matcher"] = "*"
		}

		list, _ := hooksRaw[event].([]any)
		list = replaceCupcakeBlock(list, block)
		hooksRaw[event] = list
	}

	doc["hooks"] = hooksRaw
}

// replaceCupcakeBlock removes any existing block in list whose hooks all
// run the cupcake binary, then appends the fresh block, so re-running
// sync is idempotent without disturbing third-party hook entries.
func replaceCupcakeBlock(list []any, fresh map[string]any) []any {
	kept := make([]any, 0, len(list)+1)
	for _, item := range list {
		block, ok := item.(map[string]any)
		if !ok || !isCupcakeBlock(block) {
			kept = append(kept, item)
		}
	}
	return append(kept, fresh)
}

func isCupcakeBlock(block map[string]any) bool {
	hooks, ok := block["hooks"].([]any)
	if !ok || len(hooks) == 0 {
		return false
	}
	for _, h := range hooks {
		entry, ok := h.(map[string]any)
		if !ok {
			return false
		}
		cmd, _ := entry["command"].(string)
		if len(cmd) < 7 || cmd[:7] != "cupcake" {
			return false
		}
	}
	return true
}
