package integration

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/build"
	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/lint"
	"git.home.luguber.info/inful/docnav/internal/workspace"
)

// setupTestRepo creates a temporary git repository from a directory structure.
// The repository is initialized with an initial commit containing all files.
func setupTestRepo(t *testing.T, repoPath string) string {
	t.Helper()

	tmpDir := t.TempDir()
	require.NoError(t, copyDir(repoPath, tmpDir), "failed to copy test repo files")

	repo, err := git.PlainInit(tmpDir, false)
	require.NoError(t, err, "failed to initialize git repo")

	w, err := repo.Worktree()
	require.NoError(t, err, "failed to get worktree")

	require.NoError(t, w.AddWithOptions(&git.AddOptions{All: true}), "failed to add files to git")

	_, err = w.Commit("Initial test commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err, "failed to create initial commit")
	return tmpDir
}

// copyDir recursively copies a directory tree.
func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		if strings.HasPrefix(relPath, ".git") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		targetPath := filepath.Join(dst, relPath)
		if info.IsDir() {
			return os.MkdirAll(targetPath, 0o750)
		}
		return copyFile(path, targetPath)
	})
}

// copyFile copies a single file.
func copyFile(src, dst string) error {
	// #nosec G304 -- test utility with paths from test setup, not user input
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	// #nosec G304 -- test utility with paths from test setup, not user input
	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = dstFile.Close() }()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

// loadGoldenConfig loads a test configuration and returns it.
func loadGoldenConfig(t *testing.T, configPath string) *config.Config {
	t.Helper()

	cfg, err := config.Load(configPath)
	require.NoError(t, err, "failed to load test config")
	return cfg
}

// runGoldenTest builds the sidebar from a git repository created from
// testRepoPath and compares it with the golden files in goldenDirPath.
func runGoldenTest(t *testing.T, testRepoPath, configPath, goldenDirPath string, updateGolden bool) *build.BuildResult {
	t.Helper()

	repoPath := setupTestRepo(t, testRepoPath)

	cfg := loadGoldenConfig(t, configPath)
	require.NotNil(t, cfg.Content.Repository, "expected a content repository in config")
	cfg.Content.Repository.URL = repoPath

	outputDir := t.TempDir()
	cfg.Output.Directory = outputDir

	wsBase := t.TempDir()
	svc := build.NewBuildService().
		WithWorkspaceFactory(func() *workspace.Manager { return workspace.NewManager(wsBase) })
	result, err := svc.Run(t.Context(), build.BuildRequest{Config: cfg})
	require.NoError(t, err, "build pipeline failed")
	require.Equal(t, build.BuildStatusSuccess, result.Status, "build should succeed")

	verifySidebar(t, result.SidebarPath, filepath.Join(goldenDirPath, "sidebar.golden.json"), updateGolden)
	return result
}

// verifySidebar compares the generated sidebar against a golden file.
func verifySidebar(t *testing.T, actualPath, goldenPath string, updateGolden bool) {
	t.Helper()

	// #nosec G304 -- test utility reading from test output directory
	actual, err := os.ReadFile(actualPath)
	require.NoError(t, err, "failed to read generated sidebar")

	if updateGolden {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0o750))
		require.NoError(t, os.WriteFile(goldenPath, actual, 0o600))
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	// #nosec G304 -- test utility reading golden files
	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "failed to read golden file")
	assert.JSONEq(t, string(expected), string(actual), "sidebar does not match golden file")
}

// lintSummary is the stable part of a lint issue compared in golden tests.
type lintSummary struct {
	Page     string `json:"page"`
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Line     int    `json:"line"`
}

// verifyLintResult compares lint issues against a golden file.
func verifyLintResult(t *testing.T, result *lint.Result, goldenPath string, updateGolden bool) {
	t.Helper()

	actual := make([]lintSummary, 0, len(result.Issues))
	for _, issue := range result.Issues {
		actual = append(actual, lintSummary{
			Page:     issue.Page,
			Rule:     issue.Rule,
			Severity: issue.Severity.String(),
			Line:     issue.Line,
		})
	}
	data, err := json.MarshalIndent(actual, "", "  ")
	require.NoError(t, err)

	if updateGolden {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0o750))
		require.NoError(t, os.WriteFile(goldenPath, append(data, '\n'), 0o600))
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	// #nosec G304 -- test utility reading golden files
	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "failed to read golden file")
	assert.JSONEq(t, string(expected), string(data), "lint issues do not match golden file")
}
