package site

import "strings"

// Asset paths relative to the site root.
const (
	StylePath     = "assets/css/style.css"
	AppScriptPath = "assets/js/app.js"
	SubmitJSPath  = "assets/js/submit.js"
)

// Assets maps each static asset path to its content.
var Assets = map[string]string{
	StylePath:     cssContent,
	AppScriptPath: appJSContent,
	SubmitJSPath:  submitJSContent,
}

// ContentType returns the MIME type for an asset path.
func ContentType(path string) string {
	switch {
	case strings.HasSuffix(path, ".css"):
		return "text/css; charset=utf-8"
	case strings.HasSuffix(path, ".js"):
		return "text/javascript; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

const cssContent = `.tag-badge-clickable { cursor: pointer; text-decoration: none; }
.tag-badge-clickable:hover { filter: brightness(1.2); }
.card pre { max-height: 18rem; overflow: auto; background: #f6f8fa; padding: .75rem; border-radius: .25rem; font-size: .85rem; }
.card pre code { white-space: pre; }
#search-bar { max-width: 40rem; }
`

// appJSContent fetches rules.json and renders cards client-side. It mirrors
// the Go catalog pipeline: same messages, same filter fields.
const appJSContent = `document.addEventListener('DOMContentLoaded', () => {
  const container = document.getElementById('rules-container');
  const searchBar = document.getElementById('search-bar');
  const loading = document.getElementById('loading-indicator');
  const template = document.getElementById('rule-template');

  const alertBox = (level, html) =>
    '<div class="col-12"><div class="alert alert-' + level + '" role="alert">' + html + '</div></div>';

  if (!template) {
    console.error('Error: the #rule-template element was not found');
    if (loading) loading.style.display = 'none';
    container.innerHTML = alertBox('danger', '<strong>Developer Error:</strong> The <code>#rule-template</code> was not found. Cannot render rules.');
    return;
  }

  let rules = [];
  const tagsOf = (r) => Array.isArray(r.tags) ? r.tags : (r.tags ? [r.tags] : []);

  function render(list) {
    Array.from(container.children).forEach((child) => {
      if (child.id !== 'rule-template') container.removeChild(child);
    });
    if (list.length === 0) {
      const ph = document.createElement('div');
      ph.className = 'col-12';
      ph.innerHTML = '<p class="text-center text-muted">No rules found matching your criteria.</p>';
      container.appendChild(ph);
      return;
    }
    list.forEach((r) => {
      const card = template.cloneNode(true);
      card.id = '';
      card.style.display = '';
      card.querySelector('.card-title').textContent = r.title || 'Untitled Rule';
      card.querySelector('.card-subtitle').textContent = 'By: ' + (r.author || 'Unknown');
      card.querySelector('.card-text').textContent = r.description || '';
      const pre = card.querySelector('pre');
      pre.outerHTML = '<pre><code></code></pre>';
      card.querySelector('pre code').textContent = r.syntax || '';
      const tags = card.querySelector('.rule-tags-container');
      tags.innerHTML = '';
      tagsOf(r).forEach((t) => {
        const badge = document.createElement('a');
        badge.className = 'badge bg-secondary me-1 tag-badge-clickable';
        badge.href = 'index.html?q=' + encodeURIComponent(t);
        badge.textContent = t;
        tags.appendChild(badge);
      });
      container.appendChild(card);
    });
  }

  function filterAndRender() {
    const q = searchBar.value.toLowerCase();
    const has = (s) => (s || '').toLowerCase().includes(q);
    render(rules.filter((r) =>
      has(r.title) || has(r.description) || has(r.author) || has(r.syntax) || tagsOf(r).some(has)));
  }

  async function load() {
    try {
      const resp = await fetch('rules.json');
      if (!resp.ok) {
        if (resp.status === 404) {
          throw new Error('The <code>rules.json</code> file was not found. It may not have been generated yet.');
        }
        throw new Error('Error fetching rules: ' + resp.status + ' ' + resp.statusText);
      }
      const data = await resp.json();
      if (!Array.isArray(data)) {
        throw new Error('The <code>rules.json</code> file is not in the correct format (expected an array).');
      }
      rules = data;
      if (rules.length === 0) {
        container.innerHTML = alertBox('warning', 'No rules were found in <code>rules.json</code>.');
        return;
      }
      if (searchBar.value) filterAndRender(); else render(rules);
    } catch (err) {
      console.error('Failed to fetch rules:', err);
      container.innerHTML = alertBox('danger', '<strong>An error occurred while loading rules:</strong> ' + err.message);
    } finally {
      if (loading) loading.style.display = 'none';
    }
  }

  searchBar.form.addEventListener('submit', (e) => e.preventDefault());
  searchBar.addEventListener('input', filterAndRender);
  container.addEventListener('click', (e) => {
    if (e.target.classList.contains('tag-badge-clickable')) {
      e.preventDefault();
      searchBar.value = e.target.innerText;
      searchBar.dispatchEvent(new Event('input', { bubbles: true }));
    }
  });

  load();
});
`

// submitJSContent builds the rule record and opens the pre-filled
// "create new file" page, using the same format as the Go submit package.
const submitJSContent = `function newRuleID() {
  if (window.crypto && crypto.randomUUID) {
    return crypto.randomUUID();
  }
  return 'xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx'.replace(/[xy]/g, (c) => {
    const r = Math.random() * 16 | 0;
    const v = c === 'x' ? r : (r & 0x3 | 0x8);
    return v.toString(16);
  });
}

document.addEventListener('DOMContentLoaded', () => {
  const idInput = document.getElementById('rule-id');
  if (idInput) {
    idInput.value = newRuleID();
  }

  const form = document.getElementById('rule-form');
  if (!form) return;

  form.addEventListener('submit', (event) => {
    event.preventDefault();
    const val = (id) => document.getElementById(id).value;
    const title = val('rule-title');
    const tags = val('rule-tags').split(',')
      .map((t) => t.trim())
      .filter((t) => t.length > 0)
      .map((t) => '  - ' + t)
      .join('\n');

    const content = 'id: ' + val('rule-id') + '\n' +
      'title: "' + title.replace(/"/g, '\\"') + '"\n' +
      'description: ' + val('rule-description') + '\n' +
      'author: ' + val('rule-author') + '\n' +
      'tags:\n' + tags + '\n' +
      'syntax: |\n' +
      '  ' + val('rule-syntax').replace(/\n/g, '\n  ') + '\n' +
      'source: ' + val('rule-source') + '\n';

    const dir = (form.dataset.rulesDir || '_rules').replace(/\/$/, '');
    const filename = dir + '/' + title.toLowerCase().replace(/[^a-z0-9]+/g, '-') + '.yaml';
    const url = form.dataset.newFileUrl +
      '?filename=' + encodeURIComponent(filename) +
      '&value=' + encodeURIComponent(content);
    window.open(url, '_blank');
  });
});
`
