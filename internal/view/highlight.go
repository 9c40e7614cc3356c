package view

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// Highlighter renders rule syntax as a syntax-highlighted code block.
type Highlighter struct {
	md       goldmark.Markdown
	language string
}

// NewHighlighter returns a Highlighter using the given chroma style and
// language (for example "github" and "sql").
func NewHighlighter(style, language string) *Highlighter {
	if style == "" {
		style = "github"
	}
	if language == "" {
		language = "sql"
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
			),
		),
	)
	return &Highlighter{md: md, language: language}
}

// Highlight returns a complete <pre> block for code. Code is escaped by
// the highlighter; nothing in it is interpreted as markdown.
func (h *Highlighter) Highlight(code string) (template.HTML, error) {
	fence := strings.Repeat("`", longestRun(code, '`')+1)
	if len(fence) < 3 {
		fence = "```"
	}
	src := fence + h.language + "\n" + strings.TrimSuffix(code, "\n") + "\n" + fence + "\n"

	var buf bytes.Buffer
	if err := h.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}
