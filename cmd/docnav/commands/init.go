package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/config"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	out := g.out()
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		return ferrors.ConfigError("initialization failed").
			WithCause(err).
			WithContext(logfields.KeyPath, root.Config).
			UserAction().
			Build()
	}
	_, _ = fmt.Fprintf(out, "Initialized with %d locales\n", len(config.DefaultLocales()))
	return nil
}
