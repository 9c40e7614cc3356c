package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// DefaultGlob matches the rule files compiled into rules.json.
const DefaultGlob = "*.{yaml,yml}"

// ErrNoRuleFiles is returned by LoadDir when no file matches the pattern.
var ErrNoRuleFiles = errors.New("no .yaml or .yml rule files found")

// FileError records a rule file that could not be read or parsed.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// LoadResult is the outcome of compiling a rules directory.
type LoadResult struct {
	Rules    []Rule
	Files    int
	Failures []FileError
}

// ProgressFunc is called after each file is processed.
type ProgressFunc func(done, total int, path string)

// LoadDir parses every file under dir matching pattern. Files that fail to
// parse are collected in Failures and skipped; empty documents are skipped
// silently. Files are processed in lexical order.
func LoadDir(dir, pattern string, progress ProgressFunc) (*LoadResult, error) {
	if pattern == "" {
		pattern = DefaultGlob
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("accessing rules dir %s: %w", dir, err)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("globbing %s in %s: %w", pattern, dir, err)
	}
	if len(matches) == 0 {
		return nil, ErrNoRuleFiles
	}
	sort.Strings(matches)

	res := &LoadResult{Files: len(matches)}
	for i, rel := range matches {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		rule, ok, err := parseFile(path)
		switch {
		case err != nil:
			res.Failures = append(res.Failures, FileError{Path: path, Err: err})
		case ok:
			res.Rules = append(res.Rules, rule)
		}
		if progress != nil {
			progress(i+1, len(matches), path)
		}
	}
	return res, nil
}

// parseFile decodes a single rule file. ok is false for empty documents.
func parseFile(path string) (rule Rule, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rule{}, false, err
	}
	return Parse(data)
}

// Parse decodes a YAML rule document. ok is false when the document is
// empty or null.
func Parse(data []byte) (rule Rule, ok bool, err error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Rule{}, false, err
	}
	if len(doc.Content) == 0 {
		return Rule{}, false, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return Rule{}, false, nil
	}
	if err := root.Decode(&rule); err != nil {
		return Rule{}, false, err
	}
	return rule, true, nil
}

// WriteJSON writes rules as a two-space indented JSON array. A nil slice is
// written as [] so the output is always an array.
func WriteJSON(path string, rules []Rule) error {
	if rules == nil {
		rules = []Rule{}
	}
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling rules: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
