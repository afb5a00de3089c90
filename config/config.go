// Package config handles the reposync configuration file and token
// resolution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Root is the directory local clones are created under.
	Root string `yaml:"root,omitempty"`

	// TokenFile is the file whose trimmed contents are the GitHub token.
	TokenFile string `yaml:"token_file,omitempty"`

	// ExcludeRepos lists owner/name full names never synced even when the
	// search matches them.
	ExcludeRepos []string `yaml:"exclude_repos,omitempty"`
}

// DefaultConfigDir returns the default config directory.
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".reposync"
	}
	return filepath.Join(configDir, "reposync")
}

// ConfigPath returns the path to the global config file.
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current
// directory.
func LocalConfigPath() string {
	return ".reposync.yaml"
}

// DefaultTokenFile returns the default token file, a fixed dotfile in the
// user's home directory.
func DefaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".github_token"
	}
	return filepath.Join(home, ".github_token")
}

// Load loads the configuration from disk. It first loads the global config
// from the XDG config directory, then merges any local .reposync.yaml on
// top (local values take precedence). Missing files are not an error.
func Load() (*Config, error) {
	cfg := &Config{
		Root: ".",
	}

	if err := loadInto(cfg, ConfigPath()); err != nil {
		return nil, err
	}

	local := &Config{}
	if err := loadInto(local, LocalConfigPath()); err != nil {
		return nil, err
	}
	cfg = mergeConfig(cfg, local)

	if cfg.Root == "" {
		cfg.Root = "."
	}

	return cfg, nil
}

func loadInto(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// mergeConfig merges local config on top of global config. Local values
// take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{}

	if local.Root != "" {
		result.Root = local.Root
	} else {
		result.Root = global.Root
	}

	if local.TokenFile != "" {
		result.TokenFile = local.TokenFile
	} else {
		result.TokenFile = global.TokenFile
	}

	if len(local.ExcludeRepos) > 0 {
		result.ExcludeRepos = local.ExcludeRepos
	} else {
		result.ExcludeRepos = global.ExcludeRepos
	}

	return result
}

// ResolveToken returns the GitHub auth token. Precedence: the --token flag,
// then the GITHUB_TOKEN environment variable, then the token file (the
// --token-file flag, then the configured file, then DefaultTokenFile).
// The token file is read whole and stripped of surrounding whitespace.
func (c *Config) ResolveToken(flagToken, flagTokenFile string) (string, error) {
	if flagToken != "" {
		return flagToken, nil
	}

	if env := os.Getenv("GITHUB_TOKEN"); env != "" {
		return env, nil
	}

	path := flagTokenFile
	if path == "" {
		path = c.TokenFile
	}
	if path == "" {
		path = DefaultTokenFile()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read token file %s: %w", path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", path)
	}

	return token, nil
}

// IsRepoExcluded checks if a repo is in the exclude list.
func (c *Config) IsRepoExcluded(repoFullName string) bool {
	for _, excluded := range c.ExcludeRepos {
		if excluded == repoFullName {
			return true
		}
	}
	return false
}
