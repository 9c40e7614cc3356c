package rules

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Display defaults for rules that omit a field.
const (
	DefaultTitle  = "Untitled Rule"
	DefaultAuthor = "Unknown"
)

// Rule is a single community-contributed hunting rule, as stored in a
// _rules/*.yaml file and compiled into rules.json.
type Rule struct {
	ID          string `json:"id,omitempty" yaml:"id"`
	Title       string `json:"title,omitempty" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description"`
	Author      string `json:"author,omitempty" yaml:"author"`
	Tags        Tags   `json:"tags,omitempty" yaml:"tags"`
	Syntax      string `json:"syntax,omitempty" yaml:"syntax"`
	Source      string `json:"source,omitempty" yaml:"source"`
}

// DisplayTitle returns the title, or DefaultTitle when it is empty.
func (r Rule) DisplayTitle() string {
	if r.Title == "" {
		return DefaultTitle
	}
	return r.Title
}

// DisplayAuthor returns the author, or DefaultAuthor when it is empty.
func (r Rule) DisplayAuthor() string {
	if r.Author == "" {
		return DefaultAuthor
	}
	return r.Author
}

// Tags is a rule's tag list. Authors may write a single string or a list;
// both decode to a slice. An empty string or null yields no tags.
type Tags []string

// UnmarshalJSON accepts a string, an array of strings, or null.
func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*t = nil
	case string:
		*t = single(v)
	case []any:
		out := make(Tags, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("tags[%d]: expected string, got %T", i, item)
			}
			out = append(out, s)
		}
		*t = out
	default:
		return fmt.Errorf("tags: expected string or array, got %T", raw)
	}
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (t *Tags) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*t = nil
			return nil
		}
		*t = single(value.Value)
		return nil
	case yaml.SequenceNode:
		var out []string
		if err := value.Decode(&out); err != nil {
			return fmt.Errorf("tags: %w", err)
		}
		*t = out
		return nil
	default:
		return fmt.Errorf("tags: line %d: expected string or list", value.Line)
	}
}

func single(s string) Tags {
	if s == "" {
		return nil
	}
	return Tags{s}
}
