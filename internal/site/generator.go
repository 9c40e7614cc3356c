package site

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aj-tap/supersqlhunt/internal/catalog"
	"github.com/aj-tap/supersqlhunt/internal/fetch"
	"github.com/aj-tap/supersqlhunt/internal/submit"
	"github.com/aj-tap/supersqlhunt/internal/view"
)

// SiteGenerator writes the static catalog site next to the compiled rules
// document.
type SiteGenerator struct {
	OutputDir string
	DataFile  string
	HTML      *view.HTML
	Repo      submit.Repo
}

// NewSiteGenerator creates a SiteGenerator writing into outputDir.
func NewSiteGenerator(outputDir, dataFile string, html *view.HTML, repo submit.Repo) *SiteGenerator {
	if dataFile == "" {
		dataFile = fetch.DefaultName
	}
	return &SiteGenerator{
		OutputDir: outputDir,
		DataFile:  dataFile,
		HTML:      html,
		Repo:      repo,
	}
}

// Generate renders index.html, submit.html and the static assets. Returns
// the number of files written. A rules document that fails to load is not
// fatal: the page carries the same alert a browser would show.
func (g *SiteGenerator) Generate(ctx context.Context) (int, error) {
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output dir: %w", err)
	}

	written := 0

	page := view.NewPage()
	src := &fetch.File{Path: filepath.Join(g.OutputDir, g.DataFile)}
	if err := catalog.New(src, page).Load(ctx); err != nil {
		log.Printf("Warning: index.html rendered with load error: %v", err)
	}
	var buf bytes.Buffer
	if err := g.HTML.WriteCatalog(&buf, page); err != nil {
		return written, fmt.Errorf("rendering index.html: %w", err)
	}
	if err := g.write("index.html", buf.Bytes()); err != nil {
		return written, err
	}
	written++

	buf.Reset()
	form := view.SubmitForm{
		ID:         submit.NewID(),
		NewFileURL: g.Repo.NewFileEndpoint(),
		RulesDir:   g.Repo.RulesDir,
	}
	if err := g.HTML.WriteSubmit(&buf, form); err != nil {
		return written, fmt.Errorf("rendering submit.html: %w", err)
	}
	if err := g.write("submit.html", buf.Bytes()); err != nil {
		return written, err
	}
	written++

	for path, content := range Assets {
		if err := g.write(path, []byte(content)); err != nil {
			return written, err
		}
		written++
	}

	return written, nil
}

func (g *SiteGenerator) write(rel string, data []byte) error {
	dst := filepath.Join(g.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating dir for %s: %w", rel, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}
