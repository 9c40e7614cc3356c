// Package catalog holds the state of one catalog page: the fetched rule
// set, the renderer, and the search pipeline that connects them.
package catalog

import (
	"context"
	"log"

	"github.com/aj-tap/supersqlhunt/internal/fetch"
	"github.com/aj-tap/supersqlhunt/internal/rules"
	"github.com/aj-tap/supersqlhunt/internal/view"
)

// Catalog is the UI state of a catalog page. It is not safe for concurrent
// use; each page owns one.
type Catalog struct {
	source   fetch.Source
	renderer view.Renderer
	all      []rules.Rule
	query    string
}

// New creates a Catalog. If renderer also implements view.Events, search
// input is wired to Search.
func New(source fetch.Source, renderer view.Renderer) *Catalog {
	c := &Catalog{source: source, renderer: renderer}
	if ev, ok := renderer.(view.Events); ok {
		ev.OnSearchInput(c.Search)
	}
	return c
}

// Load fetches the rule set and renders it. Fetch failures replace the
// container with an error alert and are returned; an empty rule set shows
// an informational alert. The loading indicator is hidden in every case.
func (c *Catalog) Load(ctx context.Context) error {
	defer c.renderer.HideLoading()

	all, err := c.source.Fetch(ctx)
	if err != nil {
		log.Printf("Failed to fetch rules: %v", err)
		c.renderer.ShowAlert(view.ErrorAlert(err))
		return err
	}
	c.all = all

	if len(all) == 0 {
		c.renderer.ShowAlert(view.EmptyAlert())
		return nil
	}
	return c.renderer.Render(view.Build(all))
}

// Search filters the loaded rules by query and fully re-renders.
func (c *Catalog) Search(query string) {
	c.query = query
	if err := c.renderer.Render(view.Build(c.Filtered())); err != nil {
		log.Printf("Rendering rules: %v", err)
	}
}

// ClickTag sets the search field to the exact tag text and searches, as
// clicking a tag badge does.
func (c *Catalog) ClickTag(tag string) {
	if f, ok := c.renderer.(view.SearchField); ok {
		if _, wired := c.renderer.(view.Events); wired {
			f.SetQuery(tag)
			return
		}
	}
	c.Search(tag)
}

// Filtered returns the loaded rules matching the current query.
func (c *Catalog) Filtered() []rules.Rule {
	return rules.Filter(c.all, c.query)
}

// Rules returns the full loaded rule set.
func (c *Catalog) Rules() []rules.Rule {
	return c.all
}

// Query returns the current search query.
func (c *Catalog) Query() string {
	return c.query
}
