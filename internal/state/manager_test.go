package state

import (
	"encoding/json"
	"testing"
)

func TestAppendAndReadSessionRoundTrip(t *testing.T) {
	m := &Manager{ProjectRoot: t.TempDir()}

	input := json.RawMessage(`{"command":"ls"}`)
	if err := m.AppendToolUsage("sess-1", "Bash", input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.AppendCustom("sess-1", "reviewed", "true"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := m.ReadSession("sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Kind != EntryToolUsage || entries[0].ToolName != "Bash" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if string(entries[0].ToolInput) != string(input) {
		t.Fatalf("expected tool_input to round-trip, got %s", entries[0].ToolInput)
	}
	if entries[1].Kind != EntryCustom || entries[1].Key != "reviewed" || entries[1].Value != "true" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestReadSessionMissingFileReturnsEmpty(t *testing.T) {
	m := &Manager{ProjectRoot: t.TempDir()}

	entries, err := m.ReadSession("never-written")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}
