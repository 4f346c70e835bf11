package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Provider)
	}
	if cfg.Model == "" {
		t.Error("Model should have a default")
	}
	if len(cfg.Exclude) == 0 {
		t.Error("Exclude should have default patterns")
	}
	if cfg.MaxComments != 50 {
		t.Errorf("MaxComments = %d, want 50", cfg.MaxComments)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache should be enabled by default")
	}
	if !cfg.Privacy.RedactSecrets {
		t.Error("RedactSecrets should be enabled by default")
	}
}

func TestLoadFile_OverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	content := `{"provider":"anthropic","maxComments":10}`
	writeConfigFile(t, dir, content)

	cfg := Default()
	if err := LoadFile(&cfg); err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", cfg.Provider)
	}
	if cfg.MaxComments != 10 {
		t.Errorf("MaxComments = %d, want 10", cfg.MaxComments)
	}
	// Unset fields keep their defaults.
	if cfg.Model != "gpt-4.1-mini" {
		t.Errorf("Model = %q, want default", cfg.Model)
	}
	if !cfg.Cache.Enabled {
		t.Error("absent cache.enabled should keep the default")
	}
}

func TestLoadFile_ExplicitFalseToggles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	content := `{"cache":{"enabled":false},"privacy":{"redactSecrets":false}}`
	writeConfigFile(t, dir, content)

	cfg := Default()
	if err := LoadFile(&cfg); err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Cache.Enabled {
		t.Error("cache.enabled false in the file should disable the cache")
	}
	if cfg.Privacy.RedactSecrets {
		t.Error("privacy.redactSecrets false in the file should disable redaction")
	}
	// The rest keeps its defaults.
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want default", cfg.Provider)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	if err := LoadFile(&cfg); err != nil {
		t.Fatalf("missing config file should not error, got: %v", err)
	}
	if cfg.Provider != "openai" || !cfg.Cache.Enabled {
		t.Errorf("cfg = %+v, want untouched defaults", cfg)
	}
}

func writeConfigFile(t *testing.T, xdgDir, content string) {
	t.Helper()
	dir := filepath.Join(xdgDir, "prcritic")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
}

func TestMergeEnv(t *testing.T) {
	t.Setenv("PRCRITIC_PROVIDER", "ollama")
	t.Setenv("PRCRITIC_EXCLUDE", "**/*.yml, docs/**")
	t.Setenv("PRCRITIC_MAX_COMMENTS", "5")

	cfg := Default()
	mergeEnv(&cfg)

	if cfg.Provider != "ollama" {
		t.Errorf("Provider = %q, want ollama", cfg.Provider)
	}
	if len(cfg.Exclude) != 2 || cfg.Exclude[0] != "**/*.yml" || cfg.Exclude[1] != "docs/**" {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
	if cfg.MaxComments != 5 {
		t.Errorf("MaxComments = %d, want 5", cfg.MaxComments)
	}
}

func TestMergeEnv_ActionsInputs(t *testing.T) {
	// GitHub Actions passes workflow inputs as INPUT_* variables, and they
	// win over PRCRITIC_* since they come later in the chain.
	t.Setenv("PRCRITIC_MODEL", "gpt-4.1-mini")
	t.Setenv("INPUT_MODEL", "gpt-4o")

	cfg := Default()
	mergeEnv(&cfg)

	if cfg.Model != "gpt-4o" {
		t.Errorf("Model = %q, want gpt-4o", cfg.Model)
	}
}

func TestMergeOverrides(t *testing.T) {
	cfg := Default()
	mergeOverrides(&cfg, map[string]string{
		"provider":    "gemini",
		"maxComments": "3",
		"model":       "",
	})

	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", cfg.Provider)
	}
	if cfg.MaxComments != 3 {
		t.Errorf("MaxComments = %d, want 3", cfg.MaxComments)
	}
	// Empty override values leave the field alone.
	if cfg.Model != "gpt-4.1-mini" {
		t.Errorf("Model = %q, want default", cfg.Model)
	}
}

func TestSetField(t *testing.T) {
	cfg := Default()

	if err := SetField(&cfg, "provider", "anthropic"); err != nil {
		t.Fatalf("SetField error: %v", err)
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q", cfg.Provider)
	}

	if err := SetField(&cfg, "cache.enabled", "false"); err != nil {
		t.Fatalf("SetField error: %v", err)
	}
	if cfg.Cache.Enabled {
		t.Error("cache.enabled should be false")
	}
	if err := SetField(&cfg, "privacy.redactSecrets", "false"); err != nil {
		t.Fatalf("SetField error: %v", err)
	}
	if cfg.Privacy.RedactSecrets {
		t.Error("privacy.redactSecrets should be false")
	}

	if err := SetField(&cfg, "maxTokens", "not-a-number"); err == nil {
		t.Error("Expected error for non-integer maxTokens")
	}
	if err := SetField(&cfg, "cache.enabled", "maybe"); err == nil {
		t.Error("Expected error for non-boolean cache.enabled")
	}
	if err := SetField(&cfg, "bogus", "x"); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestSplitPatterns(t *testing.T) {
	got := splitPatterns(" a , ,b,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("splitPatterns = %v", got)
	}
}

func TestLoadRepoFile(t *testing.T) {
	dir := t.TempDir()
	content := "provider: anthropic\nmodel: claude-sonnet-4\nexclude:\n  - \"**/*.pb.go\"\nmax_comments: 20\n"
	if err := os.WriteFile(filepath.Join(dir, RepoFileName), []byte(content), 0644); err != nil {
		t.Fatalf("writing repo config: %v", err)
	}

	rc, err := LoadRepoFile(dir)
	if err != nil {
		t.Fatalf("LoadRepoFile error: %v", err)
	}
	if rc.Provider != "anthropic" || rc.Model != "claude-sonnet-4" {
		t.Errorf("rc = %+v", rc)
	}
	if len(rc.Exclude) != 1 || rc.Exclude[0] != "**/*.pb.go" {
		t.Errorf("Exclude = %v", rc.Exclude)
	}
	if rc.MaxComments != 20 {
		t.Errorf("MaxComments = %d, want 20", rc.MaxComments)
	}
}

func TestLoadRepoFile_Missing(t *testing.T) {
	rc, err := LoadRepoFile(t.TempDir())
	if err != nil {
		t.Fatalf("Missing repo file should not error, got: %v", err)
	}
	if rc.Provider != "" {
		t.Errorf("rc = %+v, want zero value", rc)
	}
}

func TestLoadRepoFile_Unparsable(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, RepoFileName), []byte("provider: [broken"), 0644); err != nil {
		t.Fatalf("writing repo config: %v", err)
	}
	if _, err := LoadRepoFile(dir); err == nil {
		t.Error("Expected error for unparsable repo config")
	}
}

func TestMergeRepo(t *testing.T) {
	cfg := Default()
	mergeRepo(&cfg, RepoConfig{Model: "claude-sonnet-4", MaxComments: 7})

	if cfg.Model != "claude-sonnet-4" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.MaxComments != 7 {
		t.Errorf("MaxComments = %d, want 7", cfg.MaxComments)
	}
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want default", cfg.Provider)
	}
}

func TestSaveLoadFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Provider = "anthropic"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded := Default()
	if err := LoadFile(&loaded); err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", loaded.Provider)
	}
}
