package submit

import (
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/aj-tap/supersqlhunt/internal/dom"
	"github.com/aj-tap/supersqlhunt/internal/rules"
)

func sampleForm() Form {
	return Form{
		ID:          "0b0c3c1e-5a6f-4b7e-9d2a-1f2e3d4c5b6a",
		Title:       "My Rule!",
		Description: "Detects a thing",
		Author:      "alice",
		Tags:        "sql, injection",
		Syntax:      "SELECT 1\nFROM x",
		Source:      "https://example.com/post",
	}
}

func TestSlugAndFilename(t *testing.T) {
	tests := []struct {
		title, want string
	}{
		{"My Rule!", "my-rule-.yaml"},
		{"Union--Based   SQLi", "union-based-sqli.yaml"},
		{"  leading", "-leading.yaml"},
		{"ÄÖÜ rule 42", "-rule-42.yaml"},
		{"", ".yaml"},
	}
	for _, tt := range tests {
		if got := Filename(tt.title); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.title, got, tt.want)
		}
		if got := Path(tt.title); got != "_rules/"+tt.want {
			t.Errorf("Path(%q) = %q", tt.title, got)
		}
	}
}

func TestRecord(t *testing.T) {
	rec := Record(sampleForm())
	want := `id: 0b0c3c1e-5a6f-4b7e-9d2a-1f2e3d4c5b6a
title: "My Rule!"
description: Detects a thing
author: alice
tags:
  - sql
  - injection
syntax: |
  SELECT 1
  FROM x
source: https://example.com/post
`
	if rec != want {
		t.Errorf("Record() =\n%s\nwant:\n%s", rec, want)
	}

	lines := strings.Split(rec, "\n")
	var first, second string
	for i, l := range lines {
		if l == "syntax: |" {
			first, second = lines[i+1], lines[i+2]
		}
	}
	if indent(first) != 2 || indent(second) != 2 {
		t.Errorf("syntax lines %q / %q not both indented two spaces under the key", first, second)
	}
}

func indent(s string) int {
	return len(s) - len(strings.TrimLeft(s, " "))
}

func TestRecordParsesAsRule(t *testing.T) {
	f := sampleForm()
	f.Title = `Say "hi"`
	r, ok, err := rules.Parse([]byte(Record(f)))
	if err != nil || !ok {
		t.Fatalf("Parse(Record()): ok=%v err=%v", ok, err)
	}
	if r.Title != `Say "hi"` {
		t.Errorf("Title = %q", r.Title)
	}
	if len(r.Tags) != 2 || r.Tags[0] != "sql" || r.Tags[1] != "injection" {
		t.Errorf("Tags = %v", r.Tags)
	}
	if r.Syntax != "SELECT 1\nFROM x\n" {
		t.Errorf("Syntax = %q", r.Syntax)
	}
}

func TestRecordNoTags(t *testing.T) {
	f := sampleForm()
	f.Tags = " , ,"
	if !strings.Contains(Record(f), "tags:\n\nsyntax: |\n") {
		t.Errorf("empty tag list rendered unexpectedly:\n%s", Record(f))
	}
}

func TestTagList(t *testing.T) {
	f := Form{Tags: " a ,b,, c "}
	got := f.TagList()
	if strings.Join(got, "|") != "a|b|c" {
		t.Errorf("TagList() = %v", got)
	}
}

var uuidV4 = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewForm(t *testing.T) {
	a, b := NewForm(), NewForm()
	if !uuidV4.MatchString(a.ID) {
		t.Errorf("ID %q is not a version 4 UUID", a.ID)
	}
	if a.ID == b.ID {
		t.Error("two forms got the same ID")
	}
}

func TestNewFileURL(t *testing.T) {
	repo := DefaultRepo()
	sub := repo.Prepare(sampleForm())

	if sub.Path != "_rules/my-rule-.yaml" {
		t.Errorf("Path = %q", sub.Path)
	}
	if !strings.HasPrefix(sub.URL, "https://github.com/aj-tap/SuperSQLHunt/new/main?filename=") {
		t.Errorf("URL = %q", sub.URL)
	}
	if strings.Contains(sub.URL, "+") {
		t.Errorf("URL encodes spaces as '+': %q", sub.URL)
	}

	u, err := url.Parse(sub.URL)
	if err != nil {
		t.Fatalf("url.Parse: %v", err)
	}
	q := u.Query()
	if q.Get("filename") != "_rules/my-rule-.yaml" {
		t.Errorf("filename = %q", q.Get("filename"))
	}
	if q.Get("value") != sub.Content {
		t.Errorf("value does not round-trip:\n%s", q.Get("value"))
	}
}

func TestRepoCustomBranchAndDir(t *testing.T) {
	repo := Repo{Host: "git.example.com", Owner: "me", Name: "rules", Branch: "dev", RulesDir: "contrib/"}
	if got := repo.NewFileEndpoint(); got != "https://git.example.com/me/rules/new/dev" {
		t.Errorf("NewFileEndpoint() = %q", got)
	}
	if got := repo.Path("A b"); got != "contrib/a-b.yaml" {
		t.Errorf("Path() = %q", got)
	}
}

func TestReadForm(t *testing.T) {
	values := map[string]string{
		dom.RuleIDField:     "id-1",
		dom.RuleTitleField:  "T",
		dom.RuleTagsField:   "x,y",
		dom.RuleSyntaxField: "s",
	}
	f := ReadForm(func(id string) string { return values[id] })
	if f.ID != "id-1" || f.Title != "T" || f.Tags != "x,y" || f.Syntax != "s" || f.Author != "" {
		t.Errorf("ReadForm() = %+v", f)
	}
}

func TestNormalized(t *testing.T) {
	f := Form{
		Title:       "T",
		Description: "one\rtwo",
		Source:      "ref\r\n",
		Syntax:      "SELECT *\r\nFROM logs\r\nWHERE 1",
	}.Normalized()
	if f.Syntax != "SELECT *\nFROM logs\nWHERE 1" {
		t.Errorf("Syntax = %q", f.Syntax)
	}
	if f.Description != "one\ntwo" || f.Source != "ref\n" {
		t.Errorf("Normalized() = %+v", f)
	}
	sub := DefaultRepo().Prepare(f)
	if strings.Contains(sub.Content, "\r") || strings.Contains(sub.URL, "%0D") {
		t.Errorf("carriage return leaked into submission: %q", sub.URL)
	}
	if !strings.Contains(sub.Content, "syntax: |\n  SELECT *\n  FROM logs\n  WHERE 1\n") {
		t.Errorf("syntax block not re-indented:\n%s", sub.Content)
	}
}
