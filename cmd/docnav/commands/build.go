package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/build"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory (overrides output.directory)"`
	DryRun bool   `help:"Assemble the navigation without writing files"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}

	recorder, flush := newRecorder(cfg)
	defer flush()

	svc := build.NewBuildService().WithRecorder(recorder)
	result, err := svc.Run(context.Background(), build.BuildRequest{
		Config:    cfg,
		OutputDir: b.Output,
		Options:   build.BuildOptions{DryRun: b.DryRun},
	})
	if err != nil {
		return err
	}

	out := g.out()
	if b.DryRun {
		_, _ = fmt.Fprintf(out, "Dry run: %d locales, %d module pages (nothing written)\n",
			len(result.Site.Locales), len(result.Files))
		return nil
	}
	_, _ = fmt.Fprintf(out, "Wrote %s (%d locales, %d module pages)\n",
		result.SidebarPath, len(result.Site.Locales), len(result.Files))
	if result.ManifestPath != "" {
		_, _ = fmt.Fprintf(out, "Wrote %s (build %s)\n", result.ManifestPath, result.BuildID)
	}
	return nil
}
