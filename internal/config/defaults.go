package config

import (
	"path"
	"path/filepath"
	"time"

	"github.com/aj-tap/supersqlhunt/internal/fetch"
	"github.com/aj-tap/supersqlhunt/internal/rules"
	"github.com/aj-tap/supersqlhunt/internal/submit"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = ".sqlhunt.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	repo := submit.DefaultRepo()
	return &Config{
		RulesDir:            submit.DefaultRulesDir,
		RulesGlob:           rules.DefaultGlob,
		OutputDir:           "docs",
		DataFile:            fetch.DefaultName,
		SiteTitle:           "SuperSQLHunt",
		FetchTimeoutSeconds: 30,
		Repo: RepoConfig{
			Host:   repo.Host,
			Owner:  repo.Owner,
			Name:   repo.Name,
			Branch: repo.Branch,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Highlight: HighlightConfig{
			Enabled:  true,
			Style:    "github",
			Language: "sql",
		},
	}
}

// DataPath returns the path of the compiled rules document.
func (c *Config) DataPath() string {
	return filepath.Join(c.OutputDir, c.DataFile)
}

// FetchTimeout returns the rules fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// SubmitRepo returns the contribution target.
func (c *Config) SubmitRepo() submit.Repo {
	return submit.Repo{
		Host:     c.Repo.Host,
		Owner:    c.Repo.Owner,
		Name:     c.Repo.Name,
		Branch:   c.Repo.Branch,
		RulesDir: c.RepoRulesDir(),
	}
}

// RepoRulesDir returns the repository path contributions are proposed
// under: repo.rules_dir when set, rules_dir otherwise, in clean slash form.
func (c *Config) RepoRulesDir() string {
	dir := c.Repo.RulesDir
	if dir == "" {
		dir = c.RulesDir
	}
	return path.Clean(filepath.ToSlash(dir))
}
