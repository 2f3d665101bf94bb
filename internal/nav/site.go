package nav

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Item is a sidebar entry in the schema read by the site generator.
type Item struct {
	Text      string `json:"text" yaml:"text"`
	Link      string `json:"link,omitempty" yaml:"link,omitempty"`
	Collapsed *bool  `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	Items     []Item `json:"items,omitempty" yaml:"items,omitempty"`
}

// NavLink is a navbar entry.
type NavLink struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

// Encode converts nodes into sidebar items.
func Encode(nodes []Node) []Item {
	items := make([]Item, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case Page:
			items = append(items, Item{Text: v.text, Link: v.link})
		case Section:
			collapsed := v.collapsed
			items = append(items, Item{Text: v.text, Collapsed: &collapsed, Items: Encode(v.items)})
		}
	}
	return items
}

// LocaleInfo holds the per-locale site strings that are not part of the sidebar.
type LocaleInfo struct {
	Lang         string
	Title        string
	Description  string
	Label        string
	SelectText   string
	EditLinkText string
	// NavText labels the navbar link to the configuration page.
	NavText string
}

// SiteLocale is the generated configuration of one locale.
type SiteLocale struct {
	Lang         string    `json:"lang" yaml:"lang"`
	Title        string    `json:"title,omitempty" yaml:"title,omitempty"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	Label        string    `json:"label,omitempty" yaml:"label,omitempty"`
	SelectText   string    `json:"selectText,omitempty" yaml:"selectText,omitempty"`
	EditLinkText string    `json:"editLinkText,omitempty" yaml:"editLinkText,omitempty"`
	Nav          []NavLink `json:"nav" yaml:"nav"`
	Sidebar      []Item    `json:"sidebar" yaml:"sidebar"`
}

// NewSiteLocale combines a tree with its locale strings. The navbar links to
// the configuration page under the tree's language.
func NewSiteLocale(tree Tree, info LocaleInfo) SiteLocale {
	navText := info.NavText
	if navText == "" {
		navText = "Configuration"
	}
	return SiteLocale{
		Lang:         info.Lang,
		Title:        info.Title,
		Description:  info.Description,
		Label:        info.Label,
		SelectText:   info.SelectText,
		EditLinkText: info.EditLinkText,
		Nav:          []NavLink{{Text: navText, Link: LocalizeLink(PagePath(configPageID), tree.Lang)}},
		Sidebar:      Encode(tree.Nodes),
	}
}

// Site maps locale paths ("/", "/de-DE/") to their configuration.
type Site struct {
	Locales map[string]SiteLocale `json:"locales" yaml:"locales"`
}

// Format selects the output encoding of a Site.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// Write encodes site to w.
func (s Site) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
