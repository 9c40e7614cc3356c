package view

const pageTemplates = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.}}</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
{{end}}

{{define "nav"}}<nav class="navbar navbar-dark bg-dark mb-4">
  <div class="container">
    <a class="navbar-brand" href="{{.Base}}index.html">{{.SiteTitle}}</a>
    <a class="btn btn-outline-light btn-sm" href="{{.Base}}submit.html">Submit a Rule</a>
  </div>
</nav>
{{end}}

{{define "cardbody"}}<div class="card h-100 shadow-sm">
    <div class="card-body">
      <h5 class="card-title">{{.Card.Title}}</h5>
      <h6 class="card-subtitle mb-2 text-muted">{{.Card.Subtitle}}</h6>
      <p class="card-text">{{.Card.Description}}</p>
      {{if .SyntaxHTML}}{{.SyntaxHTML}}{{else}}<pre><code>{{.Card.Syntax}}</code></pre>{{end}}
      <div class="rule-tags-container">{{range .Card.Tags}}<a href="index.html?q={{.}}" class="badge bg-secondary me-1 tag-badge-clickable">{{.}}</a>{{end}}</div>
    </div>
  </div>{{end}}

{{define "catalog"}}{{template "head" .SiteTitle}}<link rel="stylesheet" href="{{.Base}}assets/css/style.css">
</head>
<body>
{{template "nav" .}}
<main class="container">
  <form class="mb-4" method="get" action="{{.Base}}index.html" role="search">
    <input type="search" id="search-bar" name="q" class="form-control" value="{{.Query}}" placeholder="Search by title, description, author, syntax or tag" autocomplete="off">
  </form>
  <div id="loading-indicator" class="text-center my-5"{{if not .Loading}} style="display: none;"{{end}}>
    <div class="spinner-border" role="status"><span class="visually-hidden">Loading...</span></div>
  </div>
  <div id="rules-container" class="row">
    <div id="rule-template" class="col-md-6 col-lg-4 mb-4" style="display: none;">
      {{template "cardbody" .Template}}
    </div>
{{- range .Items}}
{{- if .IsCard}}
    <div class="col-md-6 col-lg-4 mb-4">
      {{template "cardbody" .}}
    </div>
{{- else if .IsPlaceholder}}
    <div class="col-12"><p class="text-center text-muted">No rules found matching your criteria.</p></div>
{{- else}}
    <div class="col-12"><div class="alert alert-{{.Alert.Level}}" role="alert">{{.Alert.Message}}</div></div>
{{- end}}
{{- end}}
  </div>
</main>
<script src="{{.Base}}assets/js/app.js"></script>
</body>
</html>
{{end}}

{{define "submit"}}{{template "head" .SiteTitle}}<link rel="stylesheet" href="{{.Base}}assets/css/style.css">
</head>
<body>
{{template "nav" .}}
<main class="container">
  <h1 class="h3 mb-3">Submit a Rule</h1>
  <p class="text-muted">Submitting opens a pre-filled pull request file on GitHub for review.</p>
  <form id="rule-form" method="post" action="{{.Base}}submit.html" data-new-file-url="{{.Form.NewFileURL}}" data-rules-dir="{{.Form.RulesDir}}">
    <div class="mb-3">
      <label for="rule-id" class="form-label">ID</label>
      <input type="text" id="rule-id" name="id" class="form-control" value="{{.Form.ID}}" readonly>
    </div>
    <div class="mb-3">
      <label for="rule-title" class="form-label">Title</label>
      <input type="text" id="rule-title" name="title" class="form-control" required>
    </div>
    <div class="mb-3">
      <label for="rule-description" class="form-label">Description</label>
      <textarea id="rule-description" name="description" class="form-control" rows="3" required></textarea>
    </div>
    <div class="mb-3">
      <label for="rule-author" class="form-label">Author</label>
      <input type="text" id="rule-author" name="author" class="form-control" required>
    </div>
    <div class="mb-3">
      <label for="rule-tags" class="form-label">Tags (comma separated)</label>
      <input type="text" id="rule-tags" name="tags" class="form-control">
    </div>
    <div class="mb-3">
      <label for="rule-syntax" class="form-label">Syntax</label>
      <textarea id="rule-syntax" name="syntax" class="form-control font-monospace" rows="8" required></textarea>
    </div>
    <div class="mb-3">
      <label for="rule-source" class="form-label">Source</label>
      <input type="text" id="rule-source" name="source" class="form-control">
    </div>
    <button type="submit" class="btn btn-primary">Open on GitHub</button>
  </form>
</main>
<script src="{{.Base}}assets/js/submit.js"></script>
</body>
</html>
{{end}}
`
