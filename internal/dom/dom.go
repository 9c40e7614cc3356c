// Package dom is a minimal virtual DOM that follows the element-id
// contract of the catalog page. It implements view.Renderer so the
// render/filter pipeline can be exercised without a browser.
package dom

import (
	"fmt"
	"html/template"
	"log"
	"strings"

	"github.com/aj-tap/supersqlhunt/internal/view"
)

// Element ids the catalog page requires.
const (
	RulesContainerID   = "rules-container"
	SearchBarID        = "search-bar"
	LoadingIndicatorID = "loading-indicator"
	RuleTemplateID     = "rule-template"
)

// Form field ids of the contribution page.
const (
	RuleFormID      = "rule-form"
	RuleIDField     = "rule-id"
	RuleTitleField  = "rule-title"
	RuleDescField   = "rule-description"
	RuleAuthorField = "rule-author"
	RuleTagsField   = "rule-tags"
	RuleSyntaxField = "rule-syntax"
	RuleSourceField = "rule-source"
)

// TagBadgeClickable marks tag badges that trigger a search when clicked.
const TagBadgeClickable = "tag-badge-clickable"

// Element is a node in the virtual tree. InnerHTML is only set on nodes
// whose contents were assigned as markup.
type Element struct {
	ID        string
	Class     string
	Text      string
	InnerHTML template.HTML
	Hidden    bool
	Value     string
	Children  []*Element
}

// HasClass reports whether class is one of the element's classes.
func (e *Element) HasClass(class string) bool {
	for _, c := range strings.Fields(e.Class) {
		if c == class {
			return true
		}
	}
	return false
}

// Append adds child as the last child of e.
func (e *Element) Append(child *Element) {
	e.Children = append(e.Children, child)
}

// Query returns the first descendant carrying class, depth first.
func (e *Element) Query(class string) *Element {
	for _, c := range e.Children {
		if c.HasClass(class) {
			return c
		}
		if found := c.Query(class); found != nil {
			return found
		}
	}
	return nil
}

// QueryAll returns every descendant carrying class, depth first.
func (e *Element) QueryAll(class string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.HasClass(class) {
			out = append(out, c)
		}
		out = append(out, c.QueryAll(class)...)
	}
	return out
}

// Clone deep-copies e.
func (e *Element) Clone() *Element {
	c := *e
	c.Children = make([]*Element, 0, len(e.Children))
	for _, child := range e.Children {
		c.Append(child.Clone())
	}
	return &c
}

// Document is a page with the catalog elements.
type Document struct {
	elements map[string]*Element
	template *Element
	onInput  []func(string)
}

// NewCatalogDocument builds the catalog page skeleton: search bar, visible
// loading indicator, and a container holding the hidden card template.
func NewCatalogDocument() *Document {
	d := NewEmptyDocument()
	d.Add(&Element{ID: SearchBarID})
	d.Add(&Element{ID: LoadingIndicatorID})
	container := &Element{ID: RulesContainerID, Class: "row"}
	container.Append(newCardTemplate())
	d.Add(container)
	return d
}

// NewEmptyDocument returns a document with no elements.
func NewEmptyDocument() *Document {
	return &Document{elements: make(map[string]*Element)}
}

// Add registers el and its descendants under their ids.
func (d *Document) Add(el *Element) {
	if el.ID != "" {
		d.elements[el.ID] = el
	}
	for _, c := range el.Children {
		d.Add(c)
	}
}

// GetElementByID returns the element with id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	return d.elements[id]
}

func newCardTemplate() *Element {
	body := &Element{Class: "card-body"}
	body.Append(&Element{Class: "card-title"})
	body.Append(&Element{Class: "card-subtitle"})
	body.Append(&Element{Class: "card-text"})
	pre := &Element{Class: "pre"}
	pre.Append(&Element{Class: "code"})
	body.Append(pre)
	body.Append(&Element{Class: "rule-tags-container"})
	card := &Element{Class: "card"}
	card.Append(body)
	tmpl := &Element{ID: RuleTemplateID, Class: "col-md-6 mb-4", Hidden: true}
	tmpl.Append(card)
	return tmpl
}

// Bind resolves the card template. Its absence is a developer error: it is
// logged, the container shows an alert, and the loading indicator is
// hidden.
func (d *Document) Bind() error {
	d.template = d.GetElementByID(RuleTemplateID)
	if d.template != nil {
		return nil
	}
	log.Printf("Error: %v", view.ErrTemplateMissing)
	d.HideLoading()
	d.ShowAlert(view.TemplateMissingAlert())
	return view.ErrTemplateMissing
}

func (d *Document) container() *Element {
	c := d.GetElementByID(RulesContainerID)
	if c == nil {
		panic(fmt.Sprintf("dom: element #%s not found", RulesContainerID))
	}
	return c
}

// Render removes every container child except the card template and
// appends nodes.
func (d *Document) Render(nodes []view.Node) error {
	if d.template == nil {
		return view.ErrTemplateMissing
	}
	c := d.container()
	kept := c.Children[:0]
	for _, child := range c.Children {
		if child.ID == RuleTemplateID {
			kept = append(kept, child)
		}
	}
	c.Children = kept

	for _, n := range nodes {
		switch n.Kind {
		case view.KindCard:
			c.Append(d.card(n.Card))
		case view.KindPlaceholder:
			ph := &Element{Class: "col-12"}
			ph.Append(&Element{Class: "text-center text-muted", Text: view.PlaceholderText})
			c.Append(ph)
		case view.KindAlert:
			c.Append(alertElement(n.Alert))
		}
	}
	return nil
}

func (d *Document) card(card view.Card) *Element {
	el := d.template.Clone()
	el.ID = ""
	el.Hidden = false
	el.Query("card-title").Text = card.Title
	el.Query("card-subtitle").Text = card.Subtitle
	el.Query("card-text").Text = card.Description
	el.Query("code").Text = card.Syntax

	tags := el.Query("rule-tags-container")
	tags.Children = nil
	for _, t := range card.Tags {
		tags.Append(&Element{Class: "badge bg-secondary me-1 " + TagBadgeClickable, Text: t})
	}
	return el
}

func alertElement(a view.Alert) *Element {
	wrap := &Element{Class: "col-12"}
	wrap.Append(&Element{Class: "alert alert-" + string(a.Level), InnerHTML: a.Message})
	return wrap
}

// ShowAlert replaces the entire container contents with a, including the
// template element. The template stays bound, so later renders still work.
func (d *Document) ShowAlert(a view.Alert) {
	c := d.container()
	c.Children = nil
	c.InnerHTML = ""
	c.Append(alertElement(a))
}

// HideLoading hides the loading indicator if the page has one.
func (d *Document) HideLoading() {
	if el := d.GetElementByID(LoadingIndicatorID); el != nil {
		el.Hidden = true
	}
}

// OnSearchInput registers handler for input events on the search bar.
func (d *Document) OnSearchInput(handler func(string)) {
	d.onInput = append(d.onInput, handler)
}

// SetQuery sets the search bar value and dispatches an input event, as
// typing into it would.
func (d *Document) SetQuery(value string) {
	bar := d.GetElementByID(SearchBarID)
	if bar == nil {
		panic(fmt.Sprintf("dom: element #%s not found", SearchBarID))
	}
	bar.Value = value
	for _, h := range d.onInput {
		h(value)
	}
}

// Click dispatches a click on el. Clicking a tag badge copies its text to
// the search bar and dispatches an input event; other clicks do nothing.
func (d *Document) Click(el *Element) {
	if el.HasClass(TagBadgeClickable) {
		d.SetQuery(el.Text)
	}
}

// Cards returns the visible rendered cards.
func (d *Document) Cards() []*Element {
	var out []*Element
	for _, c := range d.container().Children {
		if c.ID != RuleTemplateID && !c.Hidden && c.Query("card") != nil {
			out = append(out, c)
		}
	}
	return out
}
