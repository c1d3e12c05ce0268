package command

import "testing"

func TestSubstituteArrayRejectsTemplateInCommandPath(t *testing.T) {
	spec := CommandSpec{
		Mode:    ModeArray,
		Command: []string{"{{tool_input.command}}"},
	}
	_, err := substituteArray(map[string]string{"tool_input.command": "rm"}, spec)
	if err != ErrTemplateInCommandPath {
		t.Fatalf("got %v, want ErrTemplateInCommandPath", err)
	}
}

func TestSubstituteArrayExpandsArgsNotCommand(t *testing.T) {
	spec := CommandSpec{
		Mode:    ModeArray,
		Command: []string{"echo"},
		Args:    []string{"{{message}}"},
	}
	vars := map[string]string{"message": "; rm -rf /"}
	out, err := substituteArray(vars, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Command[0] != "echo" {
		t.Fatalf("command path was mutated: %v", out.Command)
	}
	if out.Args[0] != "; rm -rf /" {
		t.Fatalf("arg not substituted verbatim: %q", out.Args[0])
	}
}

func TestSubstituteArrayMissingVarExpandsEmpty(t *testing.T) {
	spec := CommandSpec{
		Mode:    ModeArray,
		Command: []string{"echo"},
		Args:    []string{"{{unknown}}"},
	}
	out, err := substituteArray(nil, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Args[0] != "" {
		t.Fatalf("expected empty expansion, got %q", out.Args[0])
	}
}

func TestSubstituteArrayRejectsEmptyCommand(t *testing.T) {
	spec := CommandSpec{Mode: ModeArray}
	if _, err := substituteArray(nil, spec); err != errEmptyCommandSpec {
		t.Fatalf("got %v, want errEmptyCommandSpec", err)
	}
}

func TestBuildGraphRecursesIntoPipeAndOnFailure(t *testing.T) {
	spec := CommandSpec{
		Mode:    ModeArray,
		Command: []string{"grep", "foo"},
		Pipe: []CommandSpec{
			{Command: []string{"wc", "-l"}},
		},
		OnFailureCmds: []CommandSpec{
			{Command: []string{"echo", "no matches"}},
		},
	}
	g, err := buildGraph(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(g.Stages))
	}
	if len(g.OnFailure) != 1 {
		t.Fatalf("expected 1 on_failure graph, got %d", len(g.OnFailure))
	}
}
