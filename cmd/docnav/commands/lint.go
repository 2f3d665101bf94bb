package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/config"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/lint"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/source"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Quiet  bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
	Strict bool   `help:"Fail on warnings as well as errors"`
	Path   string `arg:"" optional:"" help:"Content root to lint (defaults to the configured content source)" type:"path"`
}

func (l *LintCmd) Run(g *Global, root *CLI) error {
	var src source.Source
	if l.Path != "" {
		var err error
		if src, err = source.Resolve(context.Background(), config.ContentConfig{Directory: l.Path}, nil); err != nil {
			return err
		}
	} else {
		cfg, err := loadConfig(root.Config)
		if err != nil {
			return err
		}
		var cleanup func()
		if src, cleanup, err = resolveContent(context.Background(), cfg); err != nil {
			return err
		}
		defer cleanup()
	}

	linter := lint.NewLinter(&lint.Config{Quiet: l.Quiet, Format: l.Format})
	result, err := linter.Lint(nav.NewScanner(src.Root))
	if err != nil {
		return err
	}

	if err := lint.NewFormatter(l.Format).Format(g.out(), result, src.Root); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	switch {
	case result.HasErrors():
		return ferrors.ValidationError(fmt.Sprintf("lint found %d errors", result.ErrorCount())).Build()
	case l.Strict && result.HasWarnings():
		return ferrors.ValidationError(fmt.Sprintf("lint found %d warnings", result.WarningCount())).Build()
	}
	return nil
}
