package build

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/config"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/manifest"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/workspace"
)

func writeContent(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for _, c := range nav.Categories() {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(c.Dir())), 0o750))
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
}

func testConfig(t *testing.T, contentDir, outputDir string, format nav.Format) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(`
locales:
  - tag: ""
    title: Starship
  - tag: de-DE
    nav_text: Konfiguration
    overrides:
      pages:
        guide: Anleitung
      categories:
        vcs: Versionsverwaltung
`))
	require.NoError(t, err)
	cfg.Content.Directory = contentDir
	cfg.Output.Directory = outputDir
	cfg.Output.Format = format
	return cfg
}

func TestRun_WritesSidebarAndManifest(t *testing.T) {
	content := t.TempDir()
	writeContent(t, content, map[string]string{
		"config/modules/core/battery.md":   "# Battery\n",
		"config/modules/vcs/git_branch.md": "# Git Branch\n",
		"config/modules/misc/custom.md":    "no heading\n",
	})
	out := filepath.Join(t.TempDir(), "out")

	rec := metrics.NewPrometheusRecorder(nil)
	svc := NewBuildService().WithRecorder(rec)
	result, err := svc.Run(context.Background(), BuildRequest{Config: testConfig(t, content, out, nav.FormatJSON)})
	require.NoError(t, err)

	assert.Equal(t, BuildStatusSuccess, result.Status)
	assert.True(t, result.Status.IsSuccess())
	assert.Len(t, result.Files, 3)
	assert.Equal(t, filepath.Join(out, "sidebar.json"), result.SidebarPath)
	assert.Equal(t, filepath.Join(out, manifest.FileName), result.ManifestPath)

	data, err := os.ReadFile(result.SidebarPath)
	require.NoError(t, err)
	var site nav.Site
	require.NoError(t, json.Unmarshal(data, &site))
	require.Contains(t, site.Locales, "/")
	require.Contains(t, site.Locales, "/de-DE/")

	de := site.Locales["/de-DE/"]
	assert.Equal(t, "de-DE", de.Lang)
	assert.Equal(t, []nav.NavLink{{Text: "Konfiguration", Link: "/de-DE/config/"}}, de.Nav)
	assert.Equal(t, "Anleitung", de.Sidebar[1].Text)
	assert.Equal(t, "/de-DE/guide/", de.Sidebar[1].Link)
	vcs := de.Sidebar[3].Items[2]
	assert.Equal(t, "Versionsverwaltung", vcs.Text)
	assert.Equal(t, "/de-DE/config/modules/vcs/git_branch/", vcs.Items[0].Link)

	mdata, err := os.ReadFile(result.ManifestPath)
	require.NoError(t, err)
	m, err := manifest.FromJSON(mdata)
	require.NoError(t, err)
	assert.Equal(t, result.BuildID, m.ID)
	assert.Equal(t, manifest.StatusSuccess, m.Status)
	assert.Equal(t, "sidebar.json", m.Outputs.Sidebar)
	assert.Len(t, m.Locales, 2)
	assert.Equal(t, 1, m.TitleFallbacks())

	textfile := filepath.Join(t.TempDir(), "docnav.prom")
	require.NoError(t, rec.WriteTextfile(textfile))
	prom, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `docnav_title_fallbacks_total{category="misc"} 1`)
	assert.Contains(t, string(prom), `docnav_build_outcomes_total{outcome="success"} 1`)
}

func TestRun_YAMLFormatAndNoManifest(t *testing.T) {
	content := t.TempDir()
	writeContent(t, content, map[string]string{"config/modules/core/battery.md": "# Battery\n"})
	out := t.TempDir()

	cfg := testConfig(t, content, out, nav.FormatYAML)
	cfg.Output.DisableManifest = true

	result, err := NewBuildService().Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "sidebar.yaml"), result.SidebarPath)
	assert.Empty(t, result.ManifestPath)
	assert.NoFileExists(t, filepath.Join(out, manifest.FileName))

	data, err := os.ReadFile(result.SidebarPath)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "locales")
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	content := t.TempDir()
	writeContent(t, content, nil)
	out := filepath.Join(t.TempDir(), "out")

	result, err := NewBuildService().Run(context.Background(), BuildRequest{
		Config:  testConfig(t, content, out, nav.FormatJSON),
		Options: BuildOptions{DryRun: true},
	})
	require.NoError(t, err)
	assert.Len(t, result.Site.Locales, 2)
	assert.Empty(t, result.SidebarPath)
	assert.NoDirExists(t, out)
}

func TestRun_OutputDirOverride(t *testing.T) {
	content := t.TempDir()
	writeContent(t, content, nil)
	override := t.TempDir()

	result, err := NewBuildService().Run(context.Background(), BuildRequest{
		Config:    testConfig(t, content, filepath.Join(t.TempDir(), "unused"), nav.FormatJSON),
		OutputDir: override,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(override, "sidebar.json"), result.SidebarPath)
}

func TestRun_MissingCategoryIsFatalConfigError(t *testing.T) {
	content := t.TempDir()
	writeContent(t, content, nil)
	require.NoError(t, os.RemoveAll(filepath.Join(content, "config", "modules", "cloud")))
	out := filepath.Join(t.TempDir(), "out")

	result, err := NewBuildService().Run(context.Background(), BuildRequest{Config: testConfig(t, content, out, nav.FormatJSON)})
	require.Error(t, err)
	assert.Equal(t, BuildStatusFailed, result.Status)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	assert.NoDirExists(t, out)
}

func TestRun_NilConfig(t *testing.T) {
	result, err := NewBuildService().Run(context.Background(), BuildRequest{})
	require.Error(t, err)
	assert.Equal(t, BuildStatusFailed, result.Status)
}

func TestRun_RepositoryContent(t *testing.T) {
	originPath := t.TempDir()
	origin, err := git.PlainInit(originPath, false)
	require.NoError(t, err)
	writeContent(t, filepath.Join(originPath, "docs"), map[string]string{
		"config/modules/core/battery.md": "# Battery\n",
	})
	// Empty category directories are not tracked by git.
	for _, c := range nav.Categories() {
		keep := filepath.Join(originPath, "docs", filepath.FromSlash(c.Dir()), ".keep")
		require.NoError(t, os.WriteFile(keep, nil, 0o600))
	}
	wt, err := origin.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("docs")
	require.NoError(t, err)
	commit, err := wt.Commit("content", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "t@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	cfg := testConfig(t, "docs", t.TempDir(), nav.FormatJSON)
	cfg.Content.Repository = &config.RepositoryConfig{URL: originPath}

	wsBase := t.TempDir()
	svc := NewBuildService().WithWorkspaceFactory(func() *workspace.Manager { return workspace.NewManager(wsBase) })
	result, err := svc.Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)

	assert.Equal(t, commit.String(), result.Manifest.Inputs.Commit)
	assert.Len(t, result.Files, 1)

	entries, err := os.ReadDir(wsBase)
	require.NoError(t, err)
	assert.Empty(t, entries, "ephemeral workspace is removed after the build")
}
