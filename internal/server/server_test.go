package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aj-tap/supersqlhunt/internal/fetch"
	"github.com/aj-tap/supersqlhunt/internal/rules"
	"github.com/aj-tap/supersqlhunt/internal/site"
	"github.com/aj-tap/supersqlhunt/internal/submit"
	"github.com/aj-tap/supersqlhunt/internal/view"
)

var testRules = []rules.Rule{
	{ID: "r1", Title: "Failed Logins", Author: "alice", Tags: rules.Tags{"auth"}, Syntax: "SELECT * FROM logins"},
	{ID: "r2", Title: "DNS Tunnels", Author: "bob", Tags: rules.Tags{"dns", "exfil"}, Syntax: "SELECT * FROM dns"},
}

type sourceFunc func() ([]rules.Rule, error)

func (f sourceFunc) Fetch(ctx context.Context) ([]rules.Rule, error) { return f() }

func newTestServer(t *testing.T, src fetch.Source) *Server {
	t.Helper()
	html, err := view.NewHTML(view.HTMLOptions{})
	if err != nil {
		t.Fatalf("NewHTML: %v", err)
	}
	return New(Config{Port: 0}, src, html, submit.DefaultRepo())
}

func do(t *testing.T, srv *Server, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if method == http.MethodPost && strings.HasPrefix(body, "{") {
		req.Header.Set("Content-Type", "application/json")
	} else if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, fetch.Static{Rules: testRules})
	w := do(t, srv, "GET", "/healthz", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	html, _ := view.NewHTML(view.HTMLOptions{})
	srv := New(Config{Port: 0, AllowAll: true}, fetch.Static{}, html, submit.DefaultRepo())

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestIndex(t *testing.T) {
	srv := newTestServer(t, fetch.Static{Rules: testRules})
	w := do(t, srv, "GET", "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Failed Logins") || !strings.Contains(body, "DNS Tunnels") {
		t.Error("index should list every rule")
	}
	if !strings.Contains(body, `id="loading-indicator" class="text-center my-5" style="display: none;"`) {
		t.Error("loading indicator should be hidden after load")
	}
}

func TestIndexQuery(t *testing.T) {
	srv := newTestServer(t, fetch.Static{Rules: testRules})
	w := do(t, srv, "GET", "/index.html?q=EXFIL", "")
	body := w.Body.String()
	if !strings.Contains(body, "DNS Tunnels") {
		t.Error("matching rule missing")
	}
	if strings.Contains(body, "By: alice") {
		t.Error("non-matching rule should be filtered out")
	}
	if !strings.Contains(body, `value="EXFIL"`) {
		t.Error("search bar should keep the query")
	}

	w = do(t, srv, "GET", "/?q=nothing-matches", "")
	if !strings.Contains(w.Body.String(), "No rules found matching your criteria.") {
		t.Error("expected placeholder for empty result")
	}
}

func TestIndexLoadError(t *testing.T) {
	srv := newTestServer(t, fetch.Static{Err: &fetch.NotFoundError{Name: "rules.json"}})
	w := do(t, srv, "GET", "/?q=auth", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<strong>An error occurred while loading rules:</strong> The <code>rules.json</code> file was not found.") {
		t.Errorf("expected not-found alert, got:\n%s", body)
	}
	if strings.Contains(body, "No rules found matching your criteria.") {
		t.Error("a query must not replace the error alert")
	}
}

func TestDocument(t *testing.T) {
	srv := newTestServer(t, fetch.Static{Rules: testRules})
	w := do(t, srv, "GET", "/rules.json", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []rules.Rule
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 rules, got %d", len(got))
	}

	srv = newTestServer(t, fetch.Static{Err: &fetch.NotFoundError{Name: "rules.json"}})
	if w := do(t, srv, "GET", "/rules.json", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestListRules(t *testing.T) {
	srv := newTestServer(t, fetch.Static{Rules: testRules})
	w := do(t, srv, "GET", "/api/rules?q=alice", "")
	var got []rules.Rule
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Errorf("unexpected result: %+v", got)
	}

	w = do(t, srv, "GET", "/api/rules?q=zzz", "")
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %q", w.Body.String())
	}
}

func TestListRulesError(t *testing.T) {
	srv := newTestServer(t, fetch.Static{Err: errors.New("boom")})
	w := do(t, srv, "GET", "/api/rules", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "boom") {
		t.Error("error message missing from body")
	}
}

func TestGetRule(t *testing.T) {
	srv := newTestServer(t, fetch.Static{Rules: testRules})
	w := do(t, srv, "GET", "/api/rules/r2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got rules.Rule
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Title != "DNS Tunnels" {
		t.Errorf("got %q", got.Title)
	}

	if w := do(t, srv, "GET", "/api/rules/missing", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSubmitForm(t *testing.T) {
	srv := newTestServer(t, fetch.Static{})
	w := do(t, srv, "GET", "/submit", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `id="rule-form"`) {
		t.Error("form missing")
	}
}

func TestSubmitPostRedirects(t *testing.T) {
	srv := newTestServer(t, fetch.Static{})
	form := url.Values{
		"id":          {"abc"},
		"title":       {"My Rule"},
		"description": {"d"},
		"author":      {"me"},
		"tags":        {"a, b"},
		"syntax":      {"SELECT 1"},
		"source":      {"s"},
	}
	w := do(t, srv, "POST", "/submit.html", form.Encode())
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	want := submit.DefaultRepo().Prepare(submit.Form{
		ID: "abc", Title: "My Rule", Description: "d", Author: "me",
		Tags: "a, b", Syntax: "SELECT 1", Source: "s",
	}).URL
	if got := w.Header().Get("Location"); got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
}

func TestSubmitPostNormalizesLineEndings(t *testing.T) {
	srv := newTestServer(t, fetch.Static{})
	form := url.Values{
		"id":     {"abc"},
		"title":  {"Multi Line"},
		"syntax": {"SELECT *\r\nFROM logs\r\nWHERE 1"},
	}
	w := do(t, srv, "POST", "/submit", form.Encode())
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	got := w.Header().Get("Location")
	want := submit.DefaultRepo().Prepare(submit.Form{
		ID: "abc", Title: "Multi Line", Syntax: "SELECT *\nFROM logs\nWHERE 1",
	}).URL
	if got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
	if strings.Contains(got, "%0D") {
		t.Errorf("carriage return leaked into %q", got)
	}
}

func TestCreateSubmissionNormalizesLineEndings(t *testing.T) {
	srv := newTestServer(t, fetch.Static{})
	w := do(t, srv, "POST", "/api/submissions", `{"id":"x","title":"T","syntax":"a\r\nb"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var sub submit.Submission
	if err := json.Unmarshal(w.Body.Bytes(), &sub); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sub.Content, "syntax: |\n  a\n  b\n") {
		t.Errorf("content = %q", sub.Content)
	}
}

func TestSubmitPostRequiresTitle(t *testing.T) {
	srv := newTestServer(t, fetch.Static{})
	w := do(t, srv, "POST", "/submit", url.Values{"author": {"me"}}.Encode())
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreateSubmission(t *testing.T) {
	srv := newTestServer(t, fetch.Static{})
	w := do(t, srv, "POST", "/api/submissions", `{"id":"x","title":"My Rule!","tags":"t"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var sub submit.Submission
	if err := json.Unmarshal(w.Body.Bytes(), &sub); err != nil {
		t.Fatal(err)
	}
	if sub.Path != "_rules/my-rule-.yaml" {
		t.Errorf("path = %q", sub.Path)
	}
	if !strings.HasPrefix(sub.Content, "id: x\n") {
		t.Errorf("content = %q", sub.Content)
	}
	if !strings.HasPrefix(sub.URL, "https://github.com/aj-tap/SuperSQLHunt/new/main?filename=") {
		t.Errorf("url = %q", sub.URL)
	}

	if w := do(t, srv, "POST", "/api/submissions", `{not json`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestAssets(t *testing.T) {
	srv := newTestServer(t, fetch.Static{})
	w := do(t, srv, "GET", "/"+site.AppScriptPath, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/javascript") {
		t.Errorf("content type %q", ct)
	}
	if w := do(t, srv, "GET", "/assets/js/missing.js", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSourceFetchedOnce(t *testing.T) {
	calls := 0
	src := sourceFunc(func() ([]rules.Rule, error) {
		calls++
		return testRules, nil
	})
	srv := newTestServer(t, src)
	do(t, srv, "GET", "/", "")
	do(t, srv, "GET", "/api/rules", "")
	do(t, srv, "GET", "/rules.json", "")
	if calls != 1 {
		t.Errorf("expected 1 fetch, got %d", calls)
	}
}
