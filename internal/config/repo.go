package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RepoFileName is the per-repository config overlay checked into the
// reviewed repository itself.
const RepoFileName = ".prcritic.yaml"

// RepoConfig is the subset of settings a reviewed repository may pin for
// every run against it.
type RepoConfig struct {
	Provider    string   `yaml:"provider"`
	Model       string   `yaml:"model"`
	Exclude     []string `yaml:"exclude"`
	MaxComments int      `yaml:"max_comments"`
}

// LoadRepoFile reads the repo-level overlay from dir. A missing file is not
// an error; a present but unparsable file is, since a repo that ships a
// broken config should hear about it rather than be reviewed with defaults.
func LoadRepoFile(dir string) (RepoConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, RepoFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return RepoConfig{}, nil
		}
		return RepoConfig{}, fmt.Errorf("reading %s: %w", RepoFileName, err)
	}
	var rc RepoConfig
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return RepoConfig{}, fmt.Errorf("parsing %s: %w", RepoFileName, err)
	}
	return rc, nil
}

func mergeRepo(dst *Config, src RepoConfig) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if len(src.Exclude) > 0 {
		dst.Exclude = src.Exclude
	}
	if src.MaxComments > 0 {
		dst.MaxComments = src.MaxComments
	}
}
