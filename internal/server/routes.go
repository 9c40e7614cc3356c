package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aj-tap/supersqlhunt/internal/catalog"
	"github.com/aj-tap/supersqlhunt/internal/fetch"
	"github.com/aj-tap/supersqlhunt/internal/rules"
	"github.com/aj-tap/supersqlhunt/internal/site"
	"github.com/aj-tap/supersqlhunt/internal/submit"
	"github.com/aj-tap/supersqlhunt/internal/view"
)

type routeHandler struct {
	source fetch.Source
	html   *view.HTML
	repo   submit.Repo
}

func registerRoutes(r chi.Router, h *routeHandler) {
	r.Get("/", h.index)
	r.Get("/index.html", h.index)
	r.Get("/rules.json", h.document)
	r.Get("/submit", h.submitForm)
	r.Get("/submit.html", h.submitForm)
	r.Post("/submit", h.submitPost)
	r.Post("/submit.html", h.submitPost)
	r.Get("/assets/*", h.asset)

	r.Route("/api", func(r chi.Router) {
		r.Get("/rules", h.listRules)
		r.Get("/rules/{id}", h.getRule)
		r.Post("/submissions", h.createSubmission)
	})
}

// index renders the catalog for ?q=. A failed load still renders the page
// with its alert.
func (h *routeHandler) index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	page := view.NewPage()
	c := catalog.New(h.source, page)
	if err := c.Load(r.Context()); err == nil && len(c.Rules()) > 0 && q != "" {
		page.SetQuery(q)
	}
	page.Query = q

	var buf bytes.Buffer
	if err := h.html.WriteCatalog(&buf, page); err != nil {
		log.Printf("Rendering catalog: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// document serves the rules document as loaded.
func (h *routeHandler) document(w http.ResponseWriter, r *http.Request) {
	all, err := h.source.Fetch(r.Context())
	if err != nil {
		var nf *fetch.NotFoundError
		if errors.As(err, &nf) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, nonNil(all))
}

func (h *routeHandler) listRules(w http.ResponseWriter, r *http.Request) {
	all, err := h.source.Fetch(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, nonNil(rules.Filter(all, r.URL.Query().Get("q"))))
}

func (h *routeHandler) getRule(w http.ResponseWriter, r *http.Request) {
	all, err := h.source.Fetch(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	rule, ok := rules.FindByID(all, chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "rule not found"})
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

func (h *routeHandler) submitForm(w http.ResponseWriter, r *http.Request) {
	form := view.SubmitForm{
		ID:         submit.NewID(),
		NewFileURL: h.repo.NewFileEndpoint(),
		RulesDir:   h.repo.RulesDir,
	}
	var buf bytes.Buffer
	if err := h.html.WriteSubmit(&buf, form); err != nil {
		log.Printf("Rendering submit form: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// submitPost handles the form without script: it redirects to the
// pre-filled new-file page.
func (h *routeHandler) submitPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := submit.ReadForm(func(id string) string {
		return r.PostFormValue(strings.TrimPrefix(id, "rule-"))
	}).Normalized()
	if form.ID == "" {
		form.ID = submit.NewID()
	}
	if strings.TrimSpace(form.Title) == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	sub := h.repo.Prepare(form)
	http.Redirect(w, r, sub.URL, http.StatusSeeOther)
}

func (h *routeHandler) createSubmission(w http.ResponseWriter, r *http.Request) {
	var form submit.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	form = form.Normalized()
	if strings.TrimSpace(form.Title) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}
	if form.ID == "" {
		form.ID = submit.NewID()
	}
	writeJSON(w, http.StatusOK, h.repo.Prepare(form))
}

func (h *routeHandler) asset(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	content, ok := site.Assets[path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", site.ContentType(path))
	w.Write([]byte(content))
}

func nonNil(rs []rules.Rule) []rules.Rule {
	if rs == nil {
		return []rules.Rule{}
	}
	return rs
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
