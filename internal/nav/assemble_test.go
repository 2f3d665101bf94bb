package nav

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func sampleContent(t *testing.T) string {
	t.Helper()
	return writeContent(t, map[string]string{
		"core/character.md":   "# Character\n",
		"core/battery.md":     "# Battery\n\n## Options\n",
		"vcs/git_branch.md":   "---\n# frontmatter comment\n---\n# Git Branch\n",
		"misc/custom.md":      "Custom commands without a heading.\n",
		"misc/ignored.txt":    "# Ignored\n",
		"cloud/aws.md":        "# AWS\n",
		"languages/golang.md": "# Go\n",
	})
}

func TestBuild_RootLocaleWithoutOverrides(t *testing.T) {
	root := sampleContent(t)

	tree, err := NewBuilder(NewScanner(root)).Build("", Overrides{})
	require.NoError(t, err)

	want := []Item{
		{Text: "Home", Link: "/"},
		{Text: "Guide", Link: "/guide/"},
		{Text: "Advanced Installation", Link: "/installing/"},
		{Text: "Configuration", Collapsed: boolPtr(false), Items: []Item{
			{Text: "Prompt", Link: "/config/"},
			{Text: "Core & System", Collapsed: boolPtr(true), Items: []Item{
				{Text: "Battery", Link: "/config/modules/core/battery/"},
				{Text: "Character", Link: "/config/modules/core/character/"},
			}},
			{Text: "Version Control", Collapsed: boolPtr(true), Items: []Item{
				{Text: "Git Branch", Link: "/config/modules/vcs/git_branch/"},
			}},
			{Text: "Languages & Runtimes", Collapsed: boolPtr(true), Items: []Item{
				{Text: "Go", Link: "/config/modules/languages/golang/"},
			}},
			{Text: "Build Tools & Package Managers", Collapsed: boolPtr(true), Items: []Item{}},
			{Text: "Cloud & Infrastructure", Collapsed: boolPtr(true), Items: []Item{
				{Text: "AWS", Link: "/config/modules/cloud/aws/"},
			}},
			{Text: "Containers & Environments", Collapsed: boolPtr(true), Items: []Item{}},
			{Text: "Shell & Session", Collapsed: boolPtr(true), Items: []Item{}},
			{Text: "Miscellaneous", Collapsed: boolPtr(true), Items: []Item{
				{Text: "custom", Link: "/config/modules/misc/custom/"},
			}},
		}},
		{Text: "Advanced Configuration", Link: "/advanced-config/"},
		{Text: "FAQ", Link: "/faq/"},
		{Text: "Presets", Link: "/presets/"},
	}
	assert.Equal(t, want, Encode(tree.Nodes))
	assert.Equal(t, "", tree.Lang)

	pages, sections := tree.Counts()
	assert.Equal(t, 13, pages)
	assert.Equal(t, 9, sections)
}

func TestBuild_LocalizedLinksAndText(t *testing.T) {
	root := sampleContent(t)
	o := Overrides{
		Pages: map[string]string{
			"guide":                       "Anleitung",
			"installing":                  "Erweiterte Installation",
			"config/modules/core/battery": "Akku",
		},
		Legacy: map[string]string{
			"config": "Konfiguration",
			"prompt": "Eingabeaufforderung",
		},
		Categories: CategoryText{VCS: strPtr("Versionsverwaltung")},
	}

	tree, err := NewBuilder(NewScanner(root)).Build("de-DE", o)
	require.NoError(t, err)
	items := Encode(tree.Nodes)

	assert.Equal(t, Item{Text: "Home", Link: "/de-DE/"}, items[0])
	assert.Equal(t, Item{Text: "Anleitung", Link: "/de-DE/guide/"}, items[1])
	assert.Equal(t, Item{Text: "Erweiterte Installation", Link: "/de-DE/installing/"}, items[2])
	assert.Equal(t, Item{Text: "FAQ", Link: "/de-DE/faq/"}, items[5])

	config := items[3]
	assert.Equal(t, "Konfiguration", config.Text)
	assert.Equal(t, Item{Text: "Eingabeaufforderung", Link: "/de-DE/config/"}, config.Items[0])
	assert.Equal(t, "Core & System", config.Items[1].Text)
	assert.Equal(t, Item{Text: "Akku", Link: "/de-DE/config/modules/core/battery/"}, config.Items[1].Items[0])
	assert.Equal(t, "Versionsverwaltung", config.Items[2].Text)
	assert.Equal(t, "/de-DE/config/modules/vcs/git_branch/", config.Items[2].Items[0].Link)
}

func TestBuild_CategoryOrderIsDeclared(t *testing.T) {
	root := sampleContent(t)
	// An undeclared category directory is never picked up.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config", "modules", "aaa"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", "modules", "aaa", "x.md"), []byte("# X\n"), 0o600))

	tree, err := NewBuilder(NewScanner(root)).Build("", Overrides{})
	require.NoError(t, err)

	config, ok := tree.Nodes[3].(Section)
	require.True(t, ok)
	var ids []string
	for _, n := range config.Items()[1:] {
		ids = append(ids, n.ID())
	}
	var want []string
	for _, c := range Categories() {
		want = append(want, c.ID())
	}
	assert.Equal(t, want, ids)
}

func TestBuild_Deterministic(t *testing.T) {
	root := sampleContent(t)
	b := NewBuilder(NewScanner(root))

	first, err := b.Build("ja-JP", Overrides{})
	require.NoError(t, err)
	second, err := NewBuilder(NewScanner(root)).Build("ja-JP", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, Encode(first.Nodes), Encode(second.Nodes))
}

func TestBuild_MissingCategoryDirectoryAborts(t *testing.T) {
	root := sampleContent(t)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "config", "modules", "containers")))

	tree, err := NewBuilder(NewScanner(root)).Build("", Overrides{})
	require.Error(t, err)
	assert.Empty(t, tree.Nodes)
}

func TestTree_WalkDepths(t *testing.T) {
	root := sampleContent(t)
	tree, err := NewBuilder(NewScanner(root)).Build("", Overrides{})
	require.NoError(t, err)

	maxDepth := 0
	kinds := map[Kind]int{}
	tree.Walk(func(n Node, depth int) {
		kinds[n.Kind()]++
		if depth > maxDepth {
			maxDepth = depth
		}
	})
	assert.Equal(t, 2, maxDepth)
	assert.Equal(t, 13, kinds[KindPage])
	assert.Equal(t, 9, kinds[KindSection])
}
