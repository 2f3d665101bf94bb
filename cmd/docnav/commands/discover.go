package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"git.home.luguber.info/inful/docnav/internal/config"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/source"
	"git.home.luguber.info/inful/docnav/internal/workspace"
)

// DiscoverCmd implements the 'discover' command.
type DiscoverCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

type discoveredCategory struct {
	Key   string           `json:"key"`
	Text  string           `json:"text"`
	Dir   string           `json:"dir"`
	Pages []discoveredPage `json:"pages"`
}

type discoveredPage struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	TitleFallback bool   `json:"title_fallback,omitempty"`
	Link          string `json:"link"`
}

func (d *DiscoverCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	src, cleanup, err := resolveContent(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	scanner := nav.NewScanner(src.Root)
	categories := make([]discoveredCategory, 0, len(nav.Categories()))
	for _, c := range nav.Categories() {
		files, err := scanner.Category(c)
		if err != nil {
			return err
		}
		dc := discoveredCategory{Key: string(c.Key), Text: c.Text, Dir: c.Dir(), Pages: make([]discoveredPage, 0, len(files))}
		for _, f := range files {
			dc.Pages = append(dc.Pages, discoveredPage{
				ID:            f.ID(),
				Title:         f.Title,
				TitleFallback: f.TitleFallback,
				Link:          nav.PagePath(f.ID()),
			})
		}
		categories = append(categories, dc)
	}

	if d.Format == "json" {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Root       string               `json:"root"`
			Categories []discoveredCategory `json:"categories"`
		}{Root: src.Root, Categories: categories})
	}
	return printDiscovery(g, src.Root, categories)
}

func printDiscovery(g *Global, root string, categories []discoveredCategory) error {
	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Content root: %s\n\n", root)
	total, fallbacks := 0, 0
	for _, c := range categories {
		_, _ = fmt.Fprintf(tw, "%s\t%s (%d)\n", c.Key, c.Text, len(c.Pages))
		for _, p := range c.Pages {
			title := p.Title
			if p.TitleFallback {
				title += " (file name)"
				fallbacks++
			}
			_, _ = fmt.Fprintf(tw, "  %s\t%s\n", p.Link, title)
		}
		total += len(c.Pages)
	}
	_, _ = fmt.Fprintf(tw, "\nTotal: %d module pages, %d without heading\n", total, fallbacks)
	return tw.Flush()
}

// resolveContent resolves the content root, cloning into an ephemeral
// workspace for repository content. cleanup removes the workspace.
func resolveContent(ctx context.Context, cfg *config.Config) (source.Source, func(), error) {
	noop := func() {}
	if cfg.Content.Repository == nil {
		src, err := source.Resolve(ctx, cfg.Content, nil)
		return src, noop, err
	}
	ws := workspace.NewManager("")
	if err := ws.Create(); err != nil {
		return source.Source{}, noop, ferrors.FileSystemError("failed to create workspace").WithCause(err).Build()
	}
	cleanup := func() {
		if err := ws.Cleanup(); err != nil {
			slog.Warn("Failed to cleanup workspace", logfields.Error(err))
		}
	}
	src, err := source.Resolve(ctx, cfg.Content, ws)
	if err != nil {
		cleanup()
		return source.Source{}, noop, err
	}
	return src, cleanup, nil
}
