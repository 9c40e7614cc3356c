package view

// Page is an in-memory Renderer backing server-side and static HTML
// output. It starts with the loading indicator visible, like the browser
// page before the rules document arrives.
type Page struct {
	Query   string
	Loading bool
	nodes   []Node
	handler func(string)
}

// NewPage returns an empty page with the loading indicator shown.
func NewPage() *Page {
	return &Page{Loading: true}
}

// Render replaces the rendered nodes.
func (p *Page) Render(nodes []Node) error {
	p.nodes = append([]Node(nil), nodes...)
	return nil
}

// ShowAlert replaces the rendered nodes with a single alert.
func (p *Page) ShowAlert(a Alert) {
	p.nodes = []Node{{Kind: KindAlert, Alert: a}}
}

// HideLoading hides the loading indicator.
func (p *Page) HideLoading() {
	p.Loading = false
}

// OnSearchInput registers the search handler invoked by SetQuery.
func (p *Page) OnSearchInput(handler func(string)) {
	p.handler = handler
}

// SetQuery sets the search field value and fires the search handler, the
// same way typing into the search bar would.
func (p *Page) SetQuery(q string) {
	p.Query = q
	if p.handler != nil {
		p.handler(q)
	}
}

// Nodes returns the currently rendered nodes.
func (p *Page) Nodes() []Node {
	return p.nodes
}
