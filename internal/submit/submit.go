// Package submit turns the contribution form into a rule file and a
// pre-filled "create new file" URL on the code-hosting service.
package submit

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/aj-tap/supersqlhunt/internal/dom"
)

// DefaultRulesDir is the repository directory rule files are created in.
const DefaultRulesDir = "_rules"

// Form holds the seven contribution form fields.
type Form struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Tags        string `json:"tags"` // comma separated
	Syntax      string `json:"syntax"`
	Source      string `json:"source"`
}

// NewForm returns an empty form with a fresh version 4 UUID.
func NewForm() Form {
	return Form{ID: NewID()}
}

// NewID returns a random version 4 UUID string.
func NewID() string {
	return uuid.New().String()
}

// ReadForm reads the form fields through get, keyed by element id.
func ReadForm(get func(id string) string) Form {
	return Form{
		ID:          get(dom.RuleIDField),
		Title:       get(dom.RuleTitleField),
		Description: get(dom.RuleDescField),
		Author:      get(dom.RuleAuthorField),
		Tags:        get(dom.RuleTagsField),
		Syntax:      get(dom.RuleSyntaxField),
		Source:      get(dom.RuleSourceField),
	}
}

// Normalized returns the form with CRLF and lone CR line endings turned
// into LF in every field, as browsers submit textarea values with CRLF.
func (f Form) Normalized() Form {
	for _, v := range []*string{&f.ID, &f.Title, &f.Description, &f.Author, &f.Tags, &f.Syntax, &f.Source} {
		*v = newlines.Replace(*v)
	}
	return f
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// TagList splits the comma separated tags, trimming each and dropping
// empty entries.
func (f Form) TagList() []string {
	var out []string
	for _, t := range strings.Split(f.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Record renders the rule file content. Values are interpolated verbatim;
// only the title's double quotes are escaped.
func Record(f Form) string {
	lines := make([]string, 0, len(f.TagList()))
	for _, t := range f.TagList() {
		lines = append(lines, "  - "+t)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "id: %s\n", f.ID)
	fmt.Fprintf(&b, "title: \"%s\"\n", strings.ReplaceAll(f.Title, `"`, `\"`))
	fmt.Fprintf(&b, "description: %s\n", f.Description)
	fmt.Fprintf(&b, "author: %s\n", f.Author)
	b.WriteString("tags:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	b.WriteString("syntax: |\n")
	b.WriteString("  " + strings.ReplaceAll(f.Syntax, "\n", "\n  ") + "\n")
	fmt.Fprintf(&b, "source: %s\n", f.Source)
	return b.String()
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases title and collapses every run of characters outside
// [a-z0-9] into a single hyphen.
func Slug(title string) string {
	return nonSlug.ReplaceAllString(strings.ToLower(title), "-")
}

// Filename returns the rule file name for title.
func Filename(title string) string {
	return Slug(title) + ".yaml"
}

// Path returns the path of the rule file for title under DefaultRulesDir.
func Path(title string) string {
	return DefaultRulesDir + "/" + Filename(title)
}

// Repo identifies the repository contributions are proposed against.
type Repo struct {
	Host     string
	Owner    string
	Name     string
	Branch   string
	RulesDir string
}

// DefaultRepo is the upstream rules repository.
func DefaultRepo() Repo {
	return Repo{
		Host:     "github.com",
		Owner:    "aj-tap",
		Name:     "SuperSQLHunt",
		Branch:   "main",
		RulesDir: DefaultRulesDir,
	}
}

// NewFileEndpoint returns the "create new file" URL without parameters.
func (r Repo) NewFileEndpoint() string {
	branch := r.Branch
	if branch == "" {
		branch = "main"
	}
	return fmt.Sprintf("https://%s/%s/%s/new/%s", r.Host, r.Owner, r.Name, branch)
}

// Path returns the repository path of the rule file for title.
func (r Repo) Path(title string) string {
	dir := r.RulesDir
	if dir == "" {
		dir = DefaultRulesDir
	}
	return strings.TrimSuffix(dir, "/") + "/" + Filename(title)
}

// NewFileURL returns the endpoint with filename and value parameters.
func (r Repo) NewFileURL(path, content string) string {
	return r.NewFileEndpoint() + "?filename=" + encodeComponent(path) + "&value=" + encodeComponent(content)
}

// Submission is the result of preparing a contribution.
type Submission struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// Prepare builds the record, target path and URL for f.
func (r Repo) Prepare(f Form) Submission {
	path := r.Path(f.Title)
	content := Record(f)
	return Submission{
		Path:    path,
		Content: content,
		URL:     r.NewFileURL(path, content),
	}
}

// encodeComponent percent-encodes s for a query value, writing spaces as
// %20 the way browsers' encodeURIComponent does.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
