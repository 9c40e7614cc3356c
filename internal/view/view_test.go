package view

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/aj-tap/supersqlhunt/internal/rules"
)

func TestBuildCardsPerRule(t *testing.T) {
	rs := []rules.Rule{
		{Title: "A", Author: "alice", Tags: rules.Tags{"x", "y"}, Syntax: "SELECT 1"},
		{},
		{Title: "C"},
	}
	nodes := Build(rs)
	if len(nodes) != len(rs) {
		t.Fatalf("Build() = %d nodes, want %d", len(nodes), len(rs))
	}
	for i, n := range nodes {
		if n.Kind != KindCard {
			t.Errorf("node %d kind = %v, want card", i, n.Kind)
		}
	}
	if nodes[0].Card.Subtitle != "By: alice" || len(nodes[0].Card.Tags) != 2 {
		t.Errorf("card 0 = %+v", nodes[0].Card)
	}
	if nodes[1].Card.Title != "Untitled Rule" || nodes[1].Card.Subtitle != "By: Unknown" {
		t.Errorf("card 1 defaults = %+v", nodes[1].Card)
	}
}

func TestBuildEmptyIsPlaceholder(t *testing.T) {
	for _, rs := range [][]rules.Rule{nil, {}} {
		nodes := Build(rs)
		if len(nodes) != 1 || nodes[0].Kind != KindPlaceholder {
			t.Errorf("Build(%v) = %+v, want single placeholder", rs, nodes)
		}
	}
}

func TestNewCardCopiesTags(t *testing.T) {
	r := rules.Rule{Tags: rules.Tags{"a"}}
	c := NewCard(r)
	c.Tags[0] = "changed"
	if r.Tags[0] != "a" {
		t.Error("NewCard aliases the rule's tag slice")
	}
}

func TestAlerts(t *testing.T) {
	a := ErrorAlert(errors.New("network down"))
	if a.Level != LevelDanger {
		t.Errorf("level = %q, want danger", a.Level)
	}
	if string(a.Message) != "<strong>An error occurred while loading rules:</strong> network down" {
		t.Errorf("message = %q", a.Message)
	}
	if e := EmptyAlert(); e.Level != LevelWarning || !strings.Contains(string(e.Message), "rules.json") {
		t.Errorf("empty alert = %+v", e)
	}
}

func TestPageRenderer(t *testing.T) {
	p := NewPage()
	if !p.Loading {
		t.Fatal("new page should show the loading indicator")
	}
	var got string
	p.OnSearchInput(func(q string) { got = q })
	p.SetQuery("owasp")
	if got != "owasp" || p.Query != "owasp" {
		t.Errorf("SetQuery: handler got %q, Query %q", got, p.Query)
	}

	_ = p.Render(Build([]rules.Rule{{Title: "A"}, {Title: "B"}}))
	if len(p.Nodes()) != 2 {
		t.Errorf("nodes = %d, want 2", len(p.Nodes()))
	}
	p.ShowAlert(EmptyAlert())
	if len(p.Nodes()) != 1 || p.Nodes()[0].Kind != KindAlert {
		t.Errorf("after ShowAlert nodes = %+v", p.Nodes())
	}
	p.HideLoading()
	if p.Loading {
		t.Error("HideLoading did not hide the indicator")
	}
}

func TestWriteCatalog(t *testing.T) {
	h, err := NewHTML(HTMLOptions{SiteTitle: "Hunt"})
	if err != nil {
		t.Fatalf("NewHTML: %v", err)
	}
	p := NewPage()
	p.Query = "sq"
	p.HideLoading()
	_ = p.Render(Build([]rules.Rule{
		{Title: "<b>bold</b>", Author: "eve", Tags: rules.Tags{"sql injection"}, Syntax: "SELECT '<x>'"},
	}))

	var buf bytes.Buffer
	if err := h.WriteCatalog(&buf, p); err != nil {
		t.Fatalf("WriteCatalog: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`id="rules-container"`,
		`id="rule-template"`,
		`id="search-bar"`,
		`value="sq"`,
		`id="loading-indicator" class="text-center my-5" style="display: none;"`,
		`&lt;b&gt;bold&lt;/b&gt;`,
		`By: eve`,
		`SELECT &#39;&lt;x&gt;&#39;`,
		`href="index.html?q=sql%20injection"`,
		`tag-badge-clickable`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("catalog HTML missing %q", want)
		}
	}
	if strings.Contains(out, "<b>bold</b>") {
		t.Error("rule title was not escaped")
	}
}

func TestWriteCatalogAlertAndPlaceholder(t *testing.T) {
	h, _ := NewHTML(HTMLOptions{})
	p := NewPage()
	p.ShowAlert(ErrorAlert(errors.New("The <code>rules.json</code> file was not found.")))

	var buf bytes.Buffer
	if err := h.WriteCatalog(&buf, p); err != nil {
		t.Fatalf("WriteCatalog: %v", err)
	}
	if !strings.Contains(buf.String(), `<div class="alert alert-danger" role="alert"><strong>An error occurred while loading rules:</strong> The <code>rules.json</code> file was not found.</div>`) {
		t.Errorf("alert not rendered as markup:\n%s", buf.String())
	}

	_ = p.Render(Build(nil))
	buf.Reset()
	_ = h.WriteCatalog(&buf, p)
	if !strings.Contains(buf.String(), PlaceholderText) {
		t.Error("placeholder text missing")
	}
}

func TestWriteCatalogHighlighted(t *testing.T) {
	h, _ := NewHTML(HTMLOptions{Highlighter: NewHighlighter("github", "sql")})
	p := NewPage()
	_ = p.Render(Build([]rules.Rule{{Title: "A", Syntax: "SELECT * FROM users WHERE id = '1'"}}))

	var buf bytes.Buffer
	if err := h.WriteCatalog(&buf, p); err != nil {
		t.Fatalf("WriteCatalog: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<pre") || !strings.Contains(out, "SELECT") {
		t.Errorf("highlighted block missing:\n%s", out)
	}
	if !strings.Contains(out, "style=") {
		t.Error("expected inline highlight styles")
	}
}

func TestHighlightFence(t *testing.T) {
	hl := NewHighlighter("", "")
	out, err := hl.Highlight("select '```' from t")
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if !strings.Contains(string(out), "from") {
		t.Errorf("code containing a fence was truncated: %s", out)
	}
}

func TestWriteSubmit(t *testing.T) {
	h, _ := NewHTML(HTMLOptions{})
	var buf bytes.Buffer
	err := h.WriteSubmit(&buf, SubmitForm{ID: "abc-123", NewFileURL: "https://github.com/o/r/new/main", RulesDir: "_rules"})
	if err != nil {
		t.Fatalf("WriteSubmit: %v", err)
	}
	out := buf.String()
	for _, id := range []string{"rule-form", "rule-id", "rule-title", "rule-description", "rule-author", "rule-tags", "rule-syntax", "rule-source"} {
		if !strings.Contains(out, `id="`+id+`"`) {
			t.Errorf("submit form missing #%s", id)
		}
	}
	if !strings.Contains(out, `value="abc-123"`) {
		t.Error("rule id not pre-populated")
	}
	if !strings.Contains(out, `data-new-file-url="https://github.com/o/r/new/main"`) {
		t.Error("new file URL not exposed to the script")
	}
}
