package condition

import "testing"

func TestFieldReservedNames(t *testing.T) {
	ctx := &EvaluationContext{
		EventType: "PreToolUse",
		ToolName:  "Bash",
		SessionID: "sess-1",
		Prompt:    "hello",
		CWD:       "/tmp",
	}
	cases := map[string]string{
		"event_type": "PreToolUse",
		"tool_name":  "Bash",
		"session_id": "sess-1",
		"prompt":     "hello",
		"cwd":        "/tmp",
	}
	for name, want := range cases {
		if got := ctx.Field(name); got != want {
			t.Errorf("Field(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestFieldEnvLookup(t *testing.T) {
	ctx := &EvaluationContext{Env: map[string]string{"HOME": "/root"}}
	if got := ctx.Field("env.HOME"); got != "/root" {
		t.Fatalf("got %q, want /root", got)
	}
	if got := ctx.Field("env.MISSING"); got != "" {
		t.Fatalf("expected empty string for missing env var, got %q", got)
	}
}

func TestFieldToolInputWalk(t *testing.T) {
	ctx := &EvaluationContext{ToolInput: []byte(`{"command":"rm -rf /","args":["a","b"]}`)}
	if got := ctx.Field("tool_input.command"); got != "rm -rf /" {
		t.Fatalf("got %q", got)
	}
	if got := ctx.Field("tool_input.args.1"); got != "b" {
		t.Fatalf("got %q, want b", got)
	}
	if got := ctx.Field("tool_input.missing.path"); got != "" {
		t.Fatalf("expected empty string for missing path, got %q", got)
	}
}
