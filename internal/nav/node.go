package nav

// Kind discriminates the variants of Node.
type Kind int

const (
	KindPage Kind = iota
	KindSection
)

func (k Kind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindSection:
		return "section"
	default:
		return "unknown"
	}
}

// Node is a navigation entry: either a Page or a Section.
type Node interface {
	Kind() Kind
	// ID is the identifier overrides are resolved against.
	ID() string
	Text() string
	isNode()
}

// Page is a leaf entry linking to one content page.
type Page struct {
	id   string
	text string
	link string
}

// NewPage returns a page with final text and link.
func NewPage(id, text, link string) Page {
	return Page{id: id, text: text, link: link}
}

func (p Page) Kind() Kind   { return KindPage }
func (p Page) ID() string   { return p.id }
func (p Page) Text() string { return p.text }
func (p Page) Link() string { return p.link }
func (p Page) isNode()      {}

// Section is a named, collapsible group of nodes.
type Section struct {
	id        string
	text      string
	collapsed bool
	items     []Node
}

// NewSection returns a section owning a copy of items.
func NewSection(id, text string, collapsed bool, items []Node) Section {
	return Section{id: id, text: text, collapsed: collapsed, items: append([]Node(nil), items...)}
}

func (s Section) Kind() Kind      { return KindSection }
func (s Section) ID() string      { return s.id }
func (s Section) Text() string    { return s.text }
func (s Section) Collapsed() bool { return s.collapsed }
func (s Section) isNode()         {}

// Items returns a copy of the section's children.
func (s Section) Items() []Node {
	return append([]Node(nil), s.items...)
}

// Tree is the complete navigation for one locale.
type Tree struct {
	Lang  string
	Nodes []Node
}

// Walk visits every node depth-first in order. depth is 0 for top-level nodes.
func (t Tree) Walk(fn func(n Node, depth int)) {
	var visit func(nodes []Node, depth int)
	visit = func(nodes []Node, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			if s, ok := n.(Section); ok {
				visit(s.items, depth+1)
			}
		}
	}
	visit(t.Nodes, 0)
}

// Counts returns the number of pages and sections in the tree.
func (t Tree) Counts() (pages, sections int) {
	t.Walk(func(n Node, _ int) {
		switch n.Kind() {
		case KindPage:
			pages++
		case KindSection:
			sections++
		}
	})
	return pages, sections
}
