package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides. Nested keys use a double
// underscore: SQLHUNT_SERVER__PORT -> server.port.
const EnvPrefix = "SQLHUNT_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SQLHUNT_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps SQLHUNT_REPO__OWNER to repo.owner.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.RulesDir == "" {
		return fmt.Errorf("rules_dir is required")
	}
	if err := c.validateRepoRulesDir(); err != nil {
		return err
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.DataFile == "" {
		return fmt.Errorf("data_file is required")
	}
	if c.Repo.Host == "" || c.Repo.Owner == "" || c.Repo.Name == "" {
		return fmt.Errorf("repo.host, repo.owner and repo.name are required")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("fetch_timeout_seconds must be non-negative")
	}
	return nil
}

// validateRepoRulesDir rejects repository paths that are absolute or leave
// the repository root.
func (c *Config) validateRepoRulesDir() error {
	raw := c.Repo.RulesDir
	if raw == "" {
		raw = c.RulesDir
	}
	dir := c.RepoRulesDir()
	if filepath.IsAbs(raw) || path.IsAbs(dir) || dir == "." || dir == ".." || strings.HasPrefix(dir, "../") {
		return fmt.Errorf("repository rules dir %q must be a relative path inside the repository; set repo.rules_dir", raw)
	}
	return nil
}
