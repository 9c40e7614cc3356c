package rules

import "strings"

// Filter returns the rules whose title, description, author, syntax or any
// tag contains query, ignoring case. An empty query returns all rules.
// The result preserves input order and never aliases entries outside all.
func Filter(all []Rule, query string) []Rule {
	q := strings.ToLower(query)
	out := make([]Rule, 0, len(all))
	for _, r := range all {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether r matches query under the same rules as Filter.
func Matches(r Rule, query string) bool {
	return matches(r, strings.ToLower(query))
}

// matches expects q to be lowercased already.
func matches(r Rule, q string) bool {
	if q == "" {
		return true
	}
	for _, field := range []string{r.Title, r.Description, r.Author, r.Syntax} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// FindByID returns the first rule with the given id.
func FindByID(all []Rule, id string) (Rule, bool) {
	for _, r := range all {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}
