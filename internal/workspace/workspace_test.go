package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_EphemeralMode(t *testing.T) {
	mgr := NewManager(t.TempDir())
	require.NoError(t, mgr.Create())

	wsPath := mgr.Path()
	require.NotEmpty(t, wsPath)
	assert.True(t, strings.HasPrefix(filepath.Base(wsPath), "docnav-"))
	assert.DirExists(t, wsPath)
	assert.False(t, mgr.Persistent())

	require.NoError(t, mgr.Cleanup())
	assert.NoDirExists(t, wsPath)
	assert.Empty(t, mgr.Path())
}

func TestManager_EphemeralDirectoriesAreDistinct(t *testing.T) {
	base := t.TempDir()
	a, b := NewManager(base), NewManager(base)
	require.NoError(t, a.Create())
	require.NoError(t, b.Create())
	assert.NotEqual(t, a.Path(), b.Path())
}

func TestManager_PersistentMode(t *testing.T) {
	base := t.TempDir()
	mgr := NewPersistentManager(base, "working")
	require.NoError(t, mgr.Create())
	assert.Equal(t, filepath.Join(base, "working"), mgr.Path())

	marker := filepath.Join(mgr.Path(), "marker.txt")
	require.NoError(t, os.WriteFile(marker, []byte("persistent"), 0o600))

	require.NoError(t, mgr.Cleanup())
	assert.FileExists(t, marker)
}

func TestManager_Subdir(t *testing.T) {
	mgr := NewManager(t.TempDir())
	_, err := mgr.Subdir("repo")
	require.ErrorIs(t, err, ErrNotCreated)

	require.NoError(t, mgr.Create())
	t.Cleanup(func() { _ = mgr.Cleanup() })

	sub, err := mgr.Subdir("repo")
	require.NoError(t, err)
	assert.DirExists(t, sub)
	assert.Equal(t, filepath.Join(mgr.Path(), "repo"), sub)
}
