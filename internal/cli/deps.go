// Package cli provides the Cobra command tree and dependency wiring for
// the cupcake binary. This file is the Composition Root: the only place
// that wires the Policy Loader, Condition Evaluator, Action Executor,
// Policy Evaluator, and State Manager together into one Handler.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/eqtylab/cupcake/internal/action"
	"github.com/eqtylab/cupcake/internal/condition"
	"github.com/eqtylab/cupcake/internal/config"
	"github.com/eqtylab/cupcake/internal/eval"
	"github.com/eqtylab/cupcake/internal/hook"
	"github.com/eqtylab/cupcake/internal/policy"
	"github.com/eqtylab/cupcake/internal/state"
	"gopkg.in/yaml.v3"
)

// Dependencies holds every domain service a CLI command needs. All
// commands reach these through the package-level deps variable rather
// than constructing their own copies, so a single process only ever
// loads policies once.
type Dependencies struct {
	ProjectRoot string
	Settings    config.Settings
	Policies    []policy.FlatPolicy
	Handler     *hook.Handler
	Logger      *slog.Logger
}

var deps *Dependencies

// InitDependencies discovers the guardrails directory, loads and
// validates the policy set, merges root-level settings overrides, and
// wires the full evaluation pipeline into a Handler. configPath, if
// non-empty, names an explicit guardrails directory instead of walking
// up from the working directory.
func InitDependencies(configPath string, debug bool) (*Dependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cli: get working directory: %w", err)
	}

	guardrailsDir, err := policy.Discover(configPath, cwd)
	if err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}

	flat, rawSettings, err := policy.Load(guardrailsDir)
	if err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}
	if err := policy.Validate(flat); err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}

	settings, err := mergeSettings(rawSettings)
	if err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}
	settings.DebugMode = settings.DebugMode || debug
	config.ApplyDefaults(&settings)
	if err := config.Validate(&settings); err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}

	var logger *slog.Logger
	if settings.DebugMode {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	slog.SetDefault(logger)

	projectRoot := filepath.Dir(guardrailsDir)
	auditDir := filepath.Join(projectRoot, ".cupcake", "audit")

	condEval := &condition.Evaluator{Settings: settings, AuditDir: auditDir}
	actionExec := &action.Executor{Settings: settings, AuditDir: auditDir, Condition: condEval}
	evaluator := &eval.Evaluator{Condition: condEval, Action: actionExec}
	stateManager := &state.Manager{ProjectRoot: projectRoot}

	handler := &hook.Handler{
		Settings:  settings,
		Policies:  flat,
		Evaluator: evaluator,
		State:     stateManager,
		AuditDir:  auditDir,
	}

	deps = &Dependencies{
		ProjectRoot: projectRoot,
		Settings:    settings,
		Policies:    flat,
		Handler:     handler,
		Logger:      logger,
	}
	return deps, nil
}

// mergeSettings decodes the root document's settings: map back through
// YAML into a Settings value, so the same field tags and SandboxIdentity
// custom unmarshaling the file-based loader would use also apply to
// settings collected in memory from fragment merge.
func mergeSettings(raw map[string]any) (config.Settings, error) {
	settings := config.DefaultSettings()
	if len(raw) == 0 {
		return settings, nil
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return settings, fmt.Errorf("re-marshal settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

// GetDeps returns the current Dependencies, or nil if InitDependencies
// has not run yet.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies; used by tests.
func SetDeps(d *Dependencies) {
	deps = d
}
