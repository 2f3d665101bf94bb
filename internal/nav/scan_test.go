package nav

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

func TestScanDir_SortedByFileName(t *testing.T) {
	dir := t.TempDir()
	// Written in non-lexicographic order on purpose.
	for _, name := range []string{"zig.md", "aws.md", "git_branch.md", "Battery.md", "b.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("# "+name+"\n"), 0o600))
	}

	files, err := ScanDir(dir, CategoryMisc)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Battery", "aws", "b", "git_branch", "zig"}, names)
}

func TestScanDir_FiltersExtensionAndSubdirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "battery.md"), []byte("# Battery\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("# Notes\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("# Readme\n"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.md"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested.md", "inner.md"), []byte("# Inner\n"), 0o600))

	files, err := ScanDir(dir, CategoryCore)
	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	assert.Equal(t, "battery", f.Name)
	assert.Equal(t, "Battery", f.Title)
	assert.False(t, f.TitleFallback)
	assert.Equal(t, "config/modules/core/battery", f.ID())
	assert.Equal(t, filepath.Join(dir, "battery.md"), f.Path)
	assert.Equal(t, []byte("# Battery\n"), f.Content)
}

func TestScanDir_TitleFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "battery.md"), []byte("no heading here\n"), 0o600))

	files, err := ScanDir(dir, CategoryCore)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "battery", files[0].Title)
	assert.True(t, files[0].TitleFallback)
}

func TestScanDir_MissingDirectoryIsFatalConfigError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")

	files, err := ScanDir(dir, CategoryVCS)
	require.Error(t, err)
	assert.Nil(t, files)

	classified, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.CategoryConfig, classified.Category())
	assert.True(t, classified.IsFatal())
	category, _ := classified.Context().GetString("category")
	assert.Equal(t, "vcs", category)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScanner_MemoizesPerDirectory(t *testing.T) {
	root := writeContent(t, map[string]string{"core/battery.md": "# Battery\n"})
	s := NewScanner(root)
	core, _ := LookupCategory(CategoryCore)

	first, err := s.Category(core)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Changes after the first scan are not visible to the same Scanner.
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", "modules", "core", "cmd_duration.md"), []byte("# Command Duration\n"), 0o600))
	second, err := s.Category(core)
	require.NoError(t, err)
	assert.Len(t, second, 1)

	fresh, err := NewScanner(root).Category(core)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestScanner_AllFailsOnMissingCategory(t *testing.T) {
	root := writeContent(t, nil)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "config", "modules", "shell")))

	_, err := NewScanner(root).All()
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}
