package nav

import "path"

// ModulesDir is the content path, relative to the content root, holding one
// directory per module category.
const ModulesDir = "config/modules"

// ContentExt is the extension of module documentation files.
const ContentExt = ".md"

// configPageID is the top-level entry expanded into the Configuration section.
const configPageID = "config"

// PageDecl declares a page with its default (untranslated) text.
type PageDecl struct {
	// ID is the override key. For declared pages it equals Path except for
	// entries that share a path with a section.
	ID   string
	Path string
	Text string
}

// topLevelPages is the sidebar order of the site's top-level pages.
var topLevelPages = []PageDecl{
	{ID: "", Path: "", Text: "Home"},
	{ID: "guide", Path: "guide", Text: "Guide"},
	{ID: "installing", Path: "installing", Text: "Advanced Installation"},
	{ID: configPageID, Path: configPageID, Text: "Configuration"},
	{ID: "advanced-config", Path: "advanced-config", Text: "Advanced Configuration"},
	{ID: "faq", Path: "faq", Text: "FAQ"},
	{ID: "presets", Path: "presets", Text: "Presets"},
}

// promptPage opens the Configuration section and links to the config page itself.
var promptPage = PageDecl{ID: "prompt", Path: configPageID, Text: "Prompt"}

// CategoryKey names a module category directory.
type CategoryKey string

const (
	CategoryCore       CategoryKey = "core"
	CategoryVCS        CategoryKey = "vcs"
	CategoryLanguages  CategoryKey = "languages"
	CategoryBuild      CategoryKey = "build"
	CategoryCloud      CategoryKey = "cloud"
	CategoryContainers CategoryKey = "containers"
	CategoryShell      CategoryKey = "shell"
	CategoryMisc       CategoryKey = "misc"
)

// Category is a module grouping with its default display text.
type Category struct {
	Key  CategoryKey
	Text string
}

// ID is the override identifier of the category section.
func (c Category) ID() string { return c.Dir() }

// Dir is the category directory relative to the content root.
func (c Category) Dir() string { return path.Join(ModulesDir, string(c.Key)) }

// categories is the fixed sidebar order; it never follows directory order.
var categories = []Category{
	{Key: CategoryCore, Text: "Core & System"},
	{Key: CategoryVCS, Text: "Version Control"},
	{Key: CategoryLanguages, Text: "Languages & Runtimes"},
	{Key: CategoryBuild, Text: "Build Tools & Package Managers"},
	{Key: CategoryCloud, Text: "Cloud & Infrastructure"},
	{Key: CategoryContainers, Text: "Containers & Environments"},
	{Key: CategoryShell, Text: "Shell & Session"},
	{Key: CategoryMisc, Text: "Miscellaneous"},
}

// TopLevelPages returns the declared top-level pages in sidebar order.
func TopLevelPages() []PageDecl {
	return append([]PageDecl(nil), topLevelPages...)
}

// Categories returns the module categories in sidebar order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// LookupCategory finds a declared category by key.
func LookupCategory(key CategoryKey) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}
