package cmd

import (
	"fmt"
	"log"

	"github.com/aj-tap/supersqlhunt/internal/config"
	"github.com/aj-tap/supersqlhunt/internal/fetch"
	"github.com/aj-tap/supersqlhunt/internal/view"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `sqlhunt init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newSource returns the rules source: the published site at baseURL when
// set, the local compiled document otherwise.
func newSource(cfg *config.Config, baseURL string) (fetch.Source, error) {
	if baseURL == "" {
		return &fetch.File{Path: cfg.DataPath()}, nil
	}
	src, err := fetch.NewHTTP(baseURL, cfg.DataFile, cfg.FetchTimeout())
	if err != nil {
		return nil, fmt.Errorf("rules url: %w", err)
	}
	return src, nil
}

// newHTML creates the page writer, with a highlighter when enabled.
func newHTML(cfg *config.Config, base string) (*view.HTML, error) {
	opts := view.HTMLOptions{
		SiteTitle: cfg.SiteTitle,
		Base:      base,
	}
	if cfg.Highlight.Enabled {
		opts.Highlighter = view.NewHighlighter(cfg.Highlight.Style, cfg.Highlight.Language)
	}
	if verbose {
		log.Printf("html: title=%q highlight=%v", cfg.SiteTitle, cfg.Highlight.Enabled)
	}
	return view.NewHTML(opts)
}
