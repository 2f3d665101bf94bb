package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docnav/internal/build"
	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/watch"
	"git.home.luguber.info/inful/docnav/internal/workspace"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output    string `short:"o" help:"Output directory (overrides output.directory)"`
	Workspace string `help:"Directory keeping the repository checkout between rebuilds" default:".docnav-cache" type:"path"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	recorder, flush := newRecorder(cfg)
	svc := build.NewBuildService().
		WithRecorder(recorder).
		WithWorkspaceFactory(func() *workspace.Manager {
			return workspace.NewPersistentManager(w.Workspace, "checkout")
		})

	run := func(ctx context.Context, cfg *config.Config) error {
		defer flush()
		result, err := svc.Run(ctx, build.BuildRequest{Config: cfg, OutputDir: w.Output})
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(g.out(), "Wrote %s (%d module pages)\n", result.SidebarPath, len(result.Files))
		return nil
	}

	if err := run(ctx, cfg); err != nil {
		return err
	}

	// Cloned content only changes through the periodic fetch.
	contentRoot := ""
	if cfg.Content.Repository == nil {
		contentRoot = cfg.Content.Directory
	}
	watcher, err := watch.New(watch.Options{
		ConfigPath:  root.Config,
		ContentRoot: contentRoot,
		Debounce:    cfg.Watch.Debounce,
		Interval:    cfg.Watch.Interval,
		Recorder:    recorder,
	}, func(ctx context.Context, _ string) error {
		// Reload so locale and override edits apply without a restart.
		current, err := loadConfig(root.Config)
		if err != nil {
			slog.Warn("Keeping previous configuration", logfields.Error(err))
			current = cfg
		}
		return run(ctx, current)
	})
	if err != nil {
		return err
	}
	if err := watcher.Run(ctx); err != nil {
		return err
	}
	slog.Info("Watch stopped")
	return nil
}
