package view

import (
	"fmt"
	"html/template"
	"io"
	"log"
)

// HTMLOptions configures HTML output.
type HTMLOptions struct {
	SiteTitle string
	// Base is the relative prefix for asset and page links ("" or "../").
	Base string
	// Highlighter renders syntax blocks; nil leaves them as plain text.
	Highlighter *Highlighter
}

// HTML writes catalog and submission pages.
type HTML struct {
	opts HTMLOptions
	tmpl *template.Template
}

// NewHTML parses the page templates.
func NewHTML(opts HTMLOptions) (*HTML, error) {
	if opts.SiteTitle == "" {
		opts.SiteTitle = "SuperSQLHunt"
	}
	tmpl, err := template.New("pages").Parse(pageTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}
	return &HTML{opts: opts, tmpl: tmpl}, nil
}

// item is a node prepared for the template.
type item struct {
	Node
	SyntaxHTML template.HTML
}

func (i item) IsCard() bool        { return i.Kind == KindCard }
func (i item) IsPlaceholder() bool { return i.Kind == KindPlaceholder }

type catalogData struct {
	SiteTitle string
	Base      string
	Query     string
	Loading   bool
	Template  item
	Items     []item
}

// WriteCatalog renders the catalog page for p.
func (h *HTML) WriteCatalog(w io.Writer, p *Page) error {
	data := catalogData{
		SiteTitle: h.opts.SiteTitle,
		Base:      h.opts.Base,
		Query:     p.Query,
		Loading:   p.Loading,
	}
	for _, n := range p.Nodes() {
		it := item{Node: n}
		if n.Kind == KindCard && n.Card.Syntax != "" && h.opts.Highlighter != nil {
			out, err := h.opts.Highlighter.Highlight(n.Card.Syntax)
			if err != nil {
				// Fall back to the plain block.
				log.Printf("highlighting %q: %v", n.Card.Title, err)
			} else {
				it.SyntaxHTML = out
			}
		}
		data.Items = append(data.Items, it)
	}
	return h.tmpl.ExecuteTemplate(w, "catalog", data)
}

// SubmitForm holds the pre-populated values of the contribution form.
type SubmitForm struct {
	ID string
	// NewFileURL is the "create new file" endpoint without query parameters.
	NewFileURL string
	RulesDir   string
}

type submitData struct {
	SiteTitle string
	Base      string
	Form      SubmitForm
}

// WriteSubmit renders the contribution form page.
func (h *HTML) WriteSubmit(w io.Writer, form SubmitForm) error {
	return h.tmpl.ExecuteTemplate(w, "submit", submitData{
		SiteTitle: h.opts.SiteTitle,
		Base:      h.opts.Base,
		Form:      form,
	})
}
