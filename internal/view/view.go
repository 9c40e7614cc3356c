// Package view turns rules into a renderer-independent node list and
// defines the Renderer implemented by the virtual DOM and the HTML page.
package view

import (
	"errors"
	"html/template"

	"github.com/aj-tap/supersqlhunt/internal/rules"
)

// Kind identifies the type of a rendered node.
type Kind int

const (
	KindCard Kind = iota
	KindPlaceholder
	KindAlert
)

// Fixed user-visible text.
const (
	PlaceholderText = "No rules found matching your criteria."
	EmptyMessage    = template.HTML("No rules were found in <code>rules.json</code>.")
	ErrorPrefix     = template.HTML("<strong>An error occurred while loading rules:</strong> ")
	TemplateMissing = template.HTML("<strong>Developer Error:</strong> The <code>#rule-template</code> was not found. Cannot render rules.")
)

// ErrTemplateMissing is returned by renderers whose card template is absent.
var ErrTemplateMissing = errors.New("the #rule-template element was not found")

// Card is the view model of one rule.
type Card struct {
	Title       string
	Subtitle    string
	Description string
	Syntax      string
	Tags        []string
}

// Level is the alert severity, mapped to Bootstrap alert classes.
type Level string

const (
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Alert replaces the whole rendering container.
type Alert struct {
	Level Level
	// Message is inserted without escaping. Error text from a Source ends
	// up here as-is; see ErrorAlert.
	Message template.HTML
}

// Node is one child of the rules container.
type Node struct {
	Kind  Kind
	Card  Card
	Alert Alert
}

// Renderer displays nodes. Render clears every previously rendered node
// (but never the hidden card template) before appending the new ones.
type Renderer interface {
	Render(nodes []Node) error
	ShowAlert(a Alert)
	HideLoading()
}

// Events is implemented by renderers that deliver search input. The
// handler receives the raw search field value on every change.
type Events interface {
	OnSearchInput(handler func(value string))
}

// SearchField is implemented by renderers whose search field can be set
// programmatically. SetQuery fires the Events handler, if any.
type SearchField interface {
	SetQuery(value string)
}

// NewCard maps a rule to its card, applying display defaults.
func NewCard(r rules.Rule) Card {
	tags := make([]string, len(r.Tags))
	copy(tags, r.Tags)
	return Card{
		Title:       r.DisplayTitle(),
		Subtitle:    "By: " + r.DisplayAuthor(),
		Description: r.Description,
		Syntax:      r.Syntax,
		Tags:        tags,
	}
}

// Build returns one card node per rule, or a single placeholder node when
// rs is empty.
func Build(rs []rules.Rule) []Node {
	if len(rs) == 0 {
		return []Node{{Kind: KindPlaceholder}}
	}
	nodes := make([]Node, 0, len(rs))
	for _, r := range rs {
		nodes = append(nodes, Node{Kind: KindCard, Card: NewCard(r)})
	}
	return nodes
}

// EmptyAlert is shown when the document is a valid, empty array.
func EmptyAlert() Alert {
	return Alert{Level: LevelWarning, Message: EmptyMessage}
}

// ErrorAlert wraps a load failure. The error text is not escaped: the
// fixed fetch errors carry <code> markup.
func ErrorAlert(err error) Alert {
	return Alert{Level: LevelDanger, Message: ErrorPrefix + template.HTML(err.Error())}
}

// TemplateMissingAlert is the developer error shown when the card template
// cannot be found.
func TemplateMissingAlert() Alert {
	return Alert{Level: LevelDanger, Message: TemplateMissing}
}
