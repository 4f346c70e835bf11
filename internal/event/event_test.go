package event

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEvent(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing event file: %v", err)
	}
	return path
}

func TestLoadFile_Opened(t *testing.T) {
	path := writeEvent(t, `{
		"action": "opened",
		"number": 42,
		"repository": {"full_name": "acme/widgets"},
		"pull_request": {"number": 42}
	}`)

	ev, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if ev.Action != ActionOpened {
		t.Errorf("Action = %q, want %q", ev.Action, ActionOpened)
	}
	if ev.Owner != "acme" || ev.Repo != "widgets" {
		t.Errorf("Owner/Repo = %q/%q", ev.Owner, ev.Repo)
	}
	if ev.Number != 42 {
		t.Errorf("Number = %d, want 42", ev.Number)
	}
	if !ev.Supported() {
		t.Error("Supported() = false, want true")
	}
}

func TestLoadFile_Synchronize(t *testing.T) {
	path := writeEvent(t, `{
		"action": "synchronize",
		"number": 7,
		"before": "abc",
		"after": "def",
		"repository": {"full_name": "acme/widgets"}
	}`)

	ev, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if ev.Before != "abc" || ev.After != "def" {
		t.Errorf("Before/After = %q/%q", ev.Before, ev.After)
	}
	if !ev.Supported() {
		t.Error("Supported() = false, want true")
	}
}

func TestLoadFile_UnsupportedAction(t *testing.T) {
	path := writeEvent(t, `{
		"action": "closed",
		"number": 3,
		"repository": {"full_name": "acme/widgets"}
	}`)

	ev, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if ev.Supported() {
		t.Errorf("Supported() = true for action %q, want false", ev.Action)
	}
}

func TestLoadFile_NumberFallback(t *testing.T) {
	// Some payloads carry the number only under pull_request.
	path := writeEvent(t, `{
		"action": "opened",
		"repository": {"full_name": "acme/widgets"},
		"pull_request": {"number": 9}
	}`)

	ev, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if ev.Number != 9 {
		t.Errorf("Number = %d, want 9", ev.Number)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed JSON", `{not json`},
		{"missing repo", `{"action":"opened","number":1}`},
		{"missing number", `{"action":"opened","repository":{"full_name":"a/b"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeEvent(t, tt.content)
			if _, err := LoadFile(path); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoad_NoEnv(t *testing.T) {
	t.Setenv("GITHUB_EVENT_PATH", "")
	if _, err := Load(); err == nil {
		t.Error("Expected error when GITHUB_EVENT_PATH is unset")
	}
}
