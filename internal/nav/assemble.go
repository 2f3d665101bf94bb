package nav

// Builder assembles navigation trees from a Scanner.
type Builder struct {
	scanner *Scanner
}

// NewBuilder returns a Builder reading module files through scanner.
func NewBuilder(scanner *Scanner) *Builder {
	return &Builder{scanner: scanner}
}

// Build produces the navigation tree for lang ("" for the root locale) with
// text resolved against o. Top-level pages keep their declared order and the
// config entry is expanded into the Configuration section. Any unreadable
// category directory fails the whole build.
func (b *Builder) Build(lang string, o Overrides) (Tree, error) {
	nodes := make([]Node, 0, len(topLevelPages))
	for _, decl := range topLevelPages {
		if decl.ID == configPageID {
			section, err := b.configSection(lang, o, decl)
			if err != nil {
				return Tree{}, err
			}
			nodes = append(nodes, section)
			continue
		}
		nodes = append(nodes, page(decl, lang, o))
	}
	return Tree{Lang: lang, Nodes: nodes}, nil
}

func (b *Builder) configSection(lang string, o Overrides, decl PageDecl) (Section, error) {
	items := make([]Node, 0, len(categories)+1)
	items = append(items, page(promptPage, lang, o))
	for _, c := range categories {
		files, err := b.scanner.Category(c)
		if err != nil {
			return Section{}, err
		}
		pages := make([]Node, 0, len(files))
		for _, f := range files {
			pages = append(pages, page(PageDecl{ID: f.ID(), Path: f.ID(), Text: f.Title}, lang, o))
		}
		items = append(items, NewSection(c.ID(), o.Resolve(c.ID(), c.Key, c.Text), true, pages))
	}
	return NewSection(decl.ID, o.Resolve(decl.ID, "", decl.Text), false, items), nil
}

func page(decl PageDecl, lang string, o Overrides) Page {
	return NewPage(decl.ID, o.Resolve(decl.ID, "", decl.Text), LocalizeLink(PagePath(decl.Path), lang))
}
