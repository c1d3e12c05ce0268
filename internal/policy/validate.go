package policy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/eqtylab/cupcake/internal/command"
)

// Validate checks a flattened policy set for the invariants that must hold
// before evaluation ever begins: globally unique names, compilable
// matchers, and command specs that respect the no-template-in-command-path
// rule and the String-mode grammar, re-checked here even though the
// Command Executor checks again at build time, since a bad policy should
// fail fast at load rather than surface as a confusing runtime error deep
// in a specific event's evaluation.
func Validate(policies []FlatPolicy) error {
	seen := map[string]bool{}

	for _, fp := range policies {
		if fp.Policy.Name == "" {
			return fmt.Errorf("policy: policy under event %q matcher %q has no name", fp.Event, fp.Matcher)
		}
		if seen[fp.Policy.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateName, fp.Policy.Name)
		}
		seen[fp.Policy.Name] = true

		if fp.Matcher != "" {
			if _, err := regexp.Compile(fp.Matcher); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidMatcher, fp.Matcher, err)
			}
		}

		if err := validateCondition(fp.Policy.Conditions); err != nil {
			return fmt.Errorf("policy %q: %w", fp.Policy.Name, err)
		}
		if err := validateAction(fp.Policy.Action); err != nil {
			return fmt.Errorf("policy %q: %w", fp.Policy.Name, err)
		}
	}

	return nil
}

func validateCondition(c Condition) error {
	if c.Pattern != nil {
		if _, err := regexp.Compile(*c.Pattern); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", *c.Pattern, err)
		}
	}
	if c.Check != nil {
		if err := validateCommandSpec(c.Check.Command); err != nil {
			return err
		}
	}
	if c.Not != nil {
		if err := validateCondition(*c.Not); err != nil {
			return err
		}
	}
	for _, sub := range c.And {
		if err := validateCondition(sub); err != nil {
			return err
		}
	}
	for _, sub := range c.Or {
		if err := validateCondition(sub); err != nil {
			return err
		}
	}
	return nil
}

func validateAction(a Action) error {
	switch a.Kind {
	case ActionRunCommand:
		if err := validateCommandSpec(a.Command); err != nil {
			return err
		}
	case ActionConditional:
		if err := validateCondition(a.When); err != nil {
			return err
		}
		if a.Then != nil {
			if err := validateAction(*a.Then); err != nil {
				return err
			}
		}
		if a.Else != nil {
			if err := validateAction(*a.Else); err != nil {
				return err
			}
		}
	}
	return nil
}

// forbiddenStringModeSubstrings mirrors internal/command's own rejection
// list, so malformed string-mode commands are caught at load time instead
// of only at first execution.
var forbiddenStringModeSubstrings = []string{"$(", "`", "2>&1"}

func validateCommandSpec(spec command.CommandSpec) error {
	switch spec.Mode {
	case command.ModeArray:
		if len(spec.Command) == 0 {
			return fmt.Errorf("array-mode command must not be empty")
		}
		if strings.Contains(spec.Command[0], "{{") {
			return fmt.Errorf("%w: %s", command.ErrTemplateInCommandPath, spec.Command[0])
		}
		for _, sub := range spec.Pipe {
			if err := validateCommandSpec(sub); err != nil {
				return err
			}
		}
	case command.ModeString:
		for _, bad := range forbiddenStringModeSubstrings {
			if strings.Contains(spec.CommandLine, bad) {
				return fmt.Errorf("%w: %s", command.ErrUnsupportedSyntax, bad)
			}
		}
	case command.ModeShell:
		// Permission-gated at execution time against settings.allow_shell;
		// nothing more to statically validate here.
	}
	return nil
}
