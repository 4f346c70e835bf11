package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Config is the effective prcritic configuration.
type Config struct {
	Provider    string        `json:"provider"`
	Model       string        `json:"model"`
	Exclude     []string      `json:"exclude"`
	MaxTokens   int           `json:"maxTokens"`
	MaxComments int           `json:"maxComments"`
	Cache       CacheConfig   `json:"cache"`
	Privacy     PrivacyConfig `json:"privacy"`
}

// CacheConfig controls the completion cache.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// PrivacyConfig controls secret redaction of diff text before prompting.
type PrivacyConfig struct {
	RedactSecrets bool `json:"redactSecrets"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:    "openai",
		Model:       "gpt-4.1-mini",
		Exclude:     []string{"**/*.lock", "**/*.min.js", "**/vendor/**", "**/node_modules/**"},
		MaxTokens:   4096,
		MaxComments: 50,
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for prcritic.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "prcritic"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "prcritic"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "prcritic"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "prcritic"), nil
	default:
		return filepath.Join(home, ".config", "prcritic"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile applies the config file over cfg in place. Decoding into the
// populated struct keeps cfg's values for absent keys while explicit
// toggles like {"cache":{"enabled":false}} still take effect. A missing
// file leaves cfg untouched.
func LoadFile(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging:
// defaults <- home config file <- repo .prcritic.yaml <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	if err := LoadFile(&cfg); err != nil {
		return Config{}, err
	}

	repoCfg, err := LoadRepoFile(".")
	if err != nil {
		return Config{}, err
	}
	mergeRepo(&cfg, repoCfg)

	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeEnv(cfg *Config) {
	// PRCRITIC_* for direct use; INPUT_* is how GitHub Actions passes
	// workflow inputs to the container.
	for _, prefix := range []string{"PRCRITIC_", "INPUT_"} {
		if v := os.Getenv(prefix + "PROVIDER"); v != "" {
			cfg.Provider = v
		}
		if v := os.Getenv(prefix + "MODEL"); v != "" {
			cfg.Model = v
		}
		if v := os.Getenv(prefix + "EXCLUDE"); v != "" {
			cfg.Exclude = splitPatterns(v)
		}
		if v := os.Getenv(prefix + "MAX_COMMENTS"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				cfg.MaxComments = n
			}
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["provider"]; ok && v != "" {
		cfg.Provider = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["exclude"]; ok && v != "" {
		cfg.Exclude = splitPatterns(v)
	}
	if v, ok := overrides["maxTokens"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTokens = n
		}
	}
	if v, ok := overrides["maxComments"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxComments = n
		}
	}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "exclude":
		cfg.Exclude = splitPatterns(value)
	case "maxTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxTokens must be an integer: %w", err)
		}
		cfg.MaxTokens = n
	case "maxComments":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxComments must be an integer: %w", err)
		}
		cfg.MaxComments = n
	case "cache.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cache.enabled must be a boolean: %w", err)
		}
		cfg.Cache.Enabled = b
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttlSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cache.ttlSeconds must be an integer: %w", err)
		}
		cfg.Cache.TTLSeconds = n
	case "privacy.redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("privacy.redactSecrets must be a boolean: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func splitPatterns(s string) []string {
	var patterns []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
