package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to sqlhunt! Let's configure your rules catalog.")
	fmt.Println()

	cfg := DefaultConfig()
	if _, err := os.Stat(cfg.RulesDir); err == nil {
		fmt.Printf("Found rules directory: %s\n\n", cfg.RulesDir)
	}

	fields := []struct {
		label string
		dst   *string
	}{
		{"Site title", &cfg.SiteTitle},
		{"Rules directory (YAML sources)", &cfg.RulesDir},
		{"Output directory for the generated site", &cfg.OutputDir},
		{"Repository host", &cfg.Repo.Host},
		{"Repository owner", &cfg.Repo.Owner},
		{"Repository name", &cfg.Repo.Name},
		{"Branch contributions target", &cfg.Repo.Branch},
	}
	for _, f := range fields {
		p := promptui.Prompt{
			Label:    f.label,
			Default:  *f.dst,
			Validate: required,
		}
		v, err := p.Run()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.ToLower(f.label), err)
		}
		*f.dst = strings.TrimSpace(v)
	}

	hlPrompt := promptui.Select{
		Label: "Highlight rule syntax in generated pages",
		Items: []string{"yes", "no"},
	}
	idx, _, err := hlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("highlight selection: %w", err)
	}
	cfg.Highlight.Enabled = idx == 0

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}
