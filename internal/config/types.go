package config

// Config is the top-level sqlhunt configuration, corresponding to .sqlhunt.yml.
type Config struct {
	RulesDir            string          `yaml:"rules_dir" koanf:"rules_dir"`
	RulesGlob           string          `yaml:"rules_glob" koanf:"rules_glob"`
	OutputDir           string          `yaml:"output_dir" koanf:"output_dir"`
	DataFile            string          `yaml:"data_file" koanf:"data_file"`
	SiteTitle           string          `yaml:"site_title" koanf:"site_title"`
	FetchTimeoutSeconds int             `yaml:"fetch_timeout_seconds" koanf:"fetch_timeout_seconds"`
	Repo                RepoConfig      `yaml:"repo" koanf:"repo"`
	Server              ServerConfig    `yaml:"server" koanf:"server"`
	Highlight           HighlightConfig `yaml:"highlight" koanf:"highlight"`
}

// RepoConfig identifies the repository contributions are opened against.
type RepoConfig struct {
	Host   string `yaml:"host" koanf:"host"`
	Owner  string `yaml:"owner" koanf:"owner"`
	Name   string `yaml:"name" koanf:"name"`
	Branch string `yaml:"branch" koanf:"branch"`
	// RulesDir is the directory rule files are proposed under, relative to
	// the repository root. Empty means rules_dir.
	RulesDir string `yaml:"rules_dir,omitempty" koanf:"rules_dir"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}

// HighlightConfig controls syntax highlighting of rule bodies.
type HighlightConfig struct {
	Enabled  bool   `yaml:"enabled" koanf:"enabled"`
	Style    string `yaml:"style" koanf:"style"`
	Language string `yaml:"language" koanf:"language"`
}
