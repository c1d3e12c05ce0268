package policy

import (
	"errors"
	"testing"

	"github.com/eqtylab/cupcake/internal/command"
)

func TestValidateRejectsDuplicateNames(t *testing.T) {
	policies := []FlatPolicy{
		{Event: "PreToolUse", Matcher: "Bash", Policy: Policy{Name: "dup", Action: Action{Kind: ActionAllow}}},
		{Event: "PreToolUse", Matcher: "Write", Policy: Policy{Name: "dup", Action: Action{Kind: ActionAllow}}},
	}
	if err := Validate(policies); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("got %v, want ErrDuplicateName", err)
	}
}

func TestValidateRejectsBadMatcher(t *testing.T) {
	policies := []FlatPolicy{
		{Event: "PreToolUse", Matcher: "(unterminated", Policy: Policy{Name: "p", Action: Action{Kind: ActionAllow}}},
	}
	if err := Validate(policies); err == nil {
		t.Fatal("expected error for invalid matcher regex")
	}
}

func TestValidateAllowsEmptyMatcher(t *testing.T) {
	policies := []FlatPolicy{
		{Event: "PreToolUse", Matcher: "", Policy: Policy{Name: "p", Action: Action{Kind: ActionAllow}}},
	}
	if err := Validate(policies); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsTemplateInCommandPath(t *testing.T) {
	policies := []FlatPolicy{
		{Event: "PreToolUse", Matcher: "Bash", Policy: Policy{
			Name: "p",
			Action: Action{
				Kind: ActionRunCommand,
				Command: command.CommandSpec{
					Mode:    command.ModeArray,
					Command: []string{"{{tool_name}}"},
				},
			},
		}},
	}
	if err := Validate(policies); err == nil {
		t.Fatal("expected error for templated command path")
	}
}

func TestValidateRejectsCommandSubstitutionInStringMode(t *testing.T) {
	policies := []FlatPolicy{
		{Event: "PreToolUse", Matcher: "Bash", Policy: Policy{
			Name: "p",
			Action: Action{
				Kind: ActionRunCommand,
				Command: command.CommandSpec{
					Mode:        command.ModeString,
					CommandLine: "echo $(whoami)",
				},
			},
		}},
	}
	if err := Validate(policies); err == nil {
		t.Fatal("expected error for command substitution in string mode")
	}
}
