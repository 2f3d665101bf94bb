package nav

import "path"

// Overrides holds a locale's text substitutions.
//
// Resolution for a node stops at the first hit: Pages by exact identifier,
// Legacy by short name (last identifier segment), Categories for category
// sections, then the declared default.
type Overrides struct {
	Pages      map[string]string `yaml:"pages,omitempty" json:"pages,omitempty"`
	Legacy     map[string]string `yaml:"legacy,omitempty" json:"legacy,omitempty"`
	Categories CategoryText      `yaml:"categories,omitempty" json:"categories,omitempty"`
}

// CategoryText has one optional field per module category.
type CategoryText struct {
	Core       *string `yaml:"core,omitempty" json:"core,omitempty"`
	VCS        *string `yaml:"vcs,omitempty" json:"vcs,omitempty"`
	Languages  *string `yaml:"languages,omitempty" json:"languages,omitempty"`
	Build      *string `yaml:"build,omitempty" json:"build,omitempty"`
	Cloud      *string `yaml:"cloud,omitempty" json:"cloud,omitempty"`
	Containers *string `yaml:"containers,omitempty" json:"containers,omitempty"`
	Shell      *string `yaml:"shell,omitempty" json:"shell,omitempty"`
	Misc       *string `yaml:"misc,omitempty" json:"misc,omitempty"`
}

// Lookup returns the override for a category key, if set.
func (c CategoryText) Lookup(key CategoryKey) (string, bool) {
	var v *string
	switch key {
	case CategoryCore:
		v = c.Core
	case CategoryVCS:
		v = c.VCS
	case CategoryLanguages:
		v = c.Languages
	case CategoryBuild:
		v = c.Build
	case CategoryCloud:
		v = c.Cloud
	case CategoryContainers:
		v = c.Containers
	case CategoryShell:
		v = c.Shell
	case CategoryMisc:
		v = c.Misc
	}
	if v == nil {
		return "", false
	}
	return *v, true
}

// Resolve returns the display text for the node identified by id. category
// is set only for module category sections. def is returned when no
// override matches.
func (o Overrides) Resolve(id string, category CategoryKey, def string) string {
	if text, ok := o.Pages[id]; ok {
		return text
	}
	if text, ok := o.Legacy[shortName(id)]; ok {
		return text
	}
	if category != "" {
		if text, ok := o.Categories.Lookup(category); ok {
			return text
		}
	}
	return def
}

func shortName(id string) string {
	if id == "" {
		return ""
	}
	return path.Base(id)
}
