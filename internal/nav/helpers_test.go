package nav

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeContent creates a content root with every category directory and the
// given files, keyed by path relative to the modules directory.
func writeContent(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for _, c := range Categories() {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(c.Dir())), 0o750))
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(ModulesDir), filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return root
}

func strPtr(s string) *string { return &s }
