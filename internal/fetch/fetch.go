// Package fetch loads the compiled rules document from a URL, a file, or
// memory, classifying failures as NotFound, Fetch, Format or generic errors.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aj-tap/supersqlhunt/internal/rules"
)

// DefaultName is the relative path of the rules document.
const DefaultName = "rules.json"

// Source produces the full rule set.
type Source interface {
	Fetch(ctx context.Context) ([]rules.Rule, error)
}

// Decode validates that data is a JSON array and decodes it into rules.
// Malformed JSON is returned as a generic error; any other JSON value
// yields a FormatError.
func Decode(name string, data []byte) ([]rules.Rule, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	if _, ok := raw.([]any); !ok {
		return nil, &FormatError{Name: name}
	}
	out := []rules.Rule{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return out, nil
}

// HTTP fetches the rules document over HTTP.
type HTTP struct {
	URL    string
	Client *http.Client
}

// NewHTTP returns an HTTP source for name resolved against base.
// An empty base leaves name as-is.
func NewHTTP(base, name string, timeout time.Duration) (*HTTP, error) {
	if name == "" {
		name = DefaultName
	}
	target := name
	if base != "" {
		b, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parsing base URL %q: %w", base, err)
		}
		ref, err := url.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("parsing rules path %q: %w", name, err)
		}
		target = b.ResolveReference(ref).String()
	}
	return &HTTP{
		URL:    target,
		Client: &http.Client{Timeout: timeout},
	}, nil
}

// Fetch performs a single GET and decodes the response.
func (h *HTTP) Fetch(ctx context.Context) ([]rules.Rule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	name := documentName(h.URL)
	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{Name: name}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Status: resp.StatusCode, StatusText: statusText(resp)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return Decode(name, data)
}

// File reads the rules document from a local path.
type File struct {
	Path string
}

// Fetch reads and decodes the file. A missing file is a NotFoundError.
func (f *File) Fetch(ctx context.Context) ([]rules.Rule, error) {
	name := path.Base(strings.ReplaceAll(f.Path, "\\", "/"))
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &NotFoundError{Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return Decode(name, data)
}

// Static returns a fixed result. It is used by tests and to replay a
// previously fetched document.
type Static struct {
	Rules []rules.Rule
	Err   error
}

func (s Static) Fetch(ctx context.Context) ([]rules.Rule, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Rules, nil
}

// Once wraps a Source so that it is fetched at most once; every caller
// observes the same rules or error. A failure caused by the caller's own
// context being cancelled or timing out is not kept, so the next caller
// fetches again. Concurrent callers wait for the fetch in progress.
type Once struct {
	src    Source
	mu     sync.Mutex
	done   bool
	cached []rules.Rule
	err    error
}

// NewOnce returns a memoizing wrapper around src.
func NewOnce(src Source) *Once {
	return &Once{src: src}
}

func (o *Once) Fetch(ctx context.Context) ([]rules.Rule, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.done {
		return o.cached, o.err
	}

	all, err := o.src.Fetch(ctx)
	if err != nil && ctx.Err() != nil && isContextError(err) {
		return nil, err
	}
	o.cached, o.err, o.done = all, err, true
	return o.cached, o.err
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// statusText returns the reason phrase sent by the server, falling back to
// the standard text for the code.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}

func documentName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return DefaultName
	}
	base := path.Base(u.Path)
	if base == "/" || base == "." {
		return DefaultName
	}
	return base
}
