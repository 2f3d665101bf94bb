// Package source resolves the documentation content root for a build: either
// a local directory or a git repository cloned into a workspace.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"git.home.luguber.info/inful/docnav/internal/config"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/workspace"
)

// checkoutDir is the workspace subdirectory holding the clone.
const checkoutDir = "content"

// Source is a resolved content root.
type Source struct {
	// Root is the directory holding config/modules.
	Root string
	// RepositoryURL and Commit are empty for local content.
	RepositoryURL string
	Branch        string
	Commit        string
}

// Resolve returns the content root described by cfg. Repository content is
// cloned into ws, or fetched and reset when ws already holds a clone.
func Resolve(ctx context.Context, cfg config.ContentConfig, ws *workspace.Manager) (Source, error) {
	if cfg.Repository == nil {
		root, err := contentRoot(cfg.Directory)
		if err != nil {
			return Source{}, err
		}
		return Source{Root: root}, nil
	}

	if ws == nil {
		return Source{}, ferrors.InternalError("repository content requires a workspace").Build()
	}
	dir, err := ws.Subdir(checkoutDir)
	if err != nil {
		return Source{}, ferrors.FileSystemError("failed to prepare workspace").WithCause(err).Build()
	}

	repo := cfg.Repository
	var r *git.Repository
	if _, statErr := os.Stat(filepath.Join(dir, git.GitDirName)); statErr == nil {
		r, err = update(ctx, dir, repo)
	} else {
		r, err = clone(ctx, dir, repo)
	}
	if err != nil {
		return Source{}, err
	}

	src := Source{RepositoryURL: repo.URL}
	if head, herr := r.Head(); herr == nil {
		src.Commit = head.Hash().String()
		src.Branch = head.Name().Short()
	}

	root := cfg.Directory
	if !filepath.IsAbs(root) {
		root = filepath.Join(dir, root)
	}
	if src.Root, err = contentRoot(root); err != nil {
		return Source{}, err
	}
	slog.Info("Content repository ready",
		logfields.URL(repo.URL),
		slog.String("commit", shortHash(src.Commit)),
		logfields.Path(src.Root))
	return src, nil
}

func contentRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", ferrors.ConfigError("invalid content directory").
			WithCause(err).WithContext(logfields.KeyPath, dir).Build()
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", ferrors.ConfigError("content directory not readable").
			WithCause(err).WithContext(logfields.KeyPath, abs).Build()
	}
	if !info.IsDir() {
		return "", ferrors.ConfigError("content path is not a directory").
			WithContext(logfields.KeyPath, abs).Build()
	}
	return abs, nil
}

func clone(ctx context.Context, dir string, repo *config.RepositoryConfig) (*git.Repository, error) {
	slog.Debug("Cloning content repository", logfields.URL(repo.URL), slog.String("branch", repo.Branch), logfields.Path(dir))

	opts := &git.CloneOptions{URL: repo.URL, Auth: authMethod(repo.Auth), Depth: repo.Depth, Tags: git.NoTags}
	if repo.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(repo.Branch)
		opts.SingleBranch = true
	}
	r, err := git.PlainCloneContext(ctx, dir, false, opts)
	if err != nil {
		// A failed clone can leave a partial .git behind.
		_ = os.RemoveAll(dir)
		return nil, gitError("clone", repo.URL, err)
	}
	return r, nil
}

// update fetches origin and hard-resets the worktree to the remote branch.
func update(ctx context.Context, dir string, repo *config.RepositoryConfig) (*git.Repository, error) {
	r, err := git.PlainOpen(dir)
	if err != nil {
		return nil, gitError("open", repo.URL, err)
	}

	branch := repo.Branch
	if branch == "" {
		head, herr := r.Head()
		if herr != nil {
			return nil, gitError("head", repo.URL, herr)
		}
		branch = head.Name().Short()
	}
	slog.Debug("Updating content repository", logfields.URL(repo.URL), slog.String("branch", branch))

	refSpec := ggitcfg.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/origin/%s", branch, branch))
	err = r.FetchContext(ctx, &git.FetchOptions{
		RemoteName: git.DefaultRemoteName,
		RefSpecs:   []ggitcfg.RefSpec{refSpec},
		Auth:       authMethod(repo.Auth),
		Depth:      repo.Depth,
		Tags:       git.NoTags,
		Force:      true,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil, gitError("fetch", repo.URL, err)
	}

	remote, err := r.Reference(plumbing.NewRemoteReferenceName(git.DefaultRemoteName, branch), true)
	if err != nil {
		return nil, gitError("resolve", repo.URL, err)
	}
	wt, err := r.Worktree()
	if err != nil {
		return nil, gitError("worktree", repo.URL, err)
	}
	checkout := &git.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(branch), Force: true}
	if !hasLocalBranch(r, branch) {
		checkout.Hash = remote.Hash()
		checkout.Create = true
	}
	if err := wt.Checkout(checkout); err != nil {
		return nil, gitError("checkout", repo.URL, err)
	}
	if err := wt.Reset(&git.ResetOptions{Commit: remote.Hash(), Mode: git.HardReset}); err != nil {
		return nil, gitError("reset", repo.URL, err)
	}
	return r, nil
}

func hasLocalBranch(r *git.Repository, branch string) bool {
	_, err := r.Reference(plumbing.NewBranchReferenceName(branch), false)
	return err == nil
}

// authMethod maps configured credentials to HTTP basic auth. A token without
// a username uses "token", which most git hosts accept.
func authMethod(a *config.AuthConfig) transport.AuthMethod {
	if a == nil || (a.Username == "" && a.Token == "") {
		return nil
	}
	user := a.Username
	if user == "" {
		user = "token"
	}
	return &http.BasicAuth{Username: user, Password: a.Token}
}

func gitError(op, url string, err error) error {
	b := ferrors.GitError(fmt.Sprintf("git %s failed", op)).
		WithCause(err).
		WithContext(logfields.KeyURL, url).
		WithContext("op", op)
	if errors.Is(err, transport.ErrAuthenticationRequired) || errors.Is(err, transport.ErrAuthorizationFailed) {
		b = b.UserAction()
	}
	return b.Build()
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
