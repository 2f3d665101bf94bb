package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/manifest"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/source"
	"git.home.luguber.info/inful/docnav/internal/workspace"
)

// SidebarBaseName is the sidebar file name without extension.
const SidebarBaseName = "sidebar"

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	workspaceFactory func() *workspace.Manager
	recorder         metrics.Recorder
}

// NewBuildService creates a DefaultBuildService cloning into ephemeral workspaces.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		workspaceFactory: func() *workspace.Manager { return workspace.NewManager("") },
		recorder:         metrics.NoopRecorder{},
	}
}

// WithWorkspaceFactory sets the workspace used for repository content.
func (s *DefaultBuildService) WithWorkspaceFactory(factory func() *workspace.Manager) *DefaultBuildService {
	s.workspaceFactory = factory
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// Run executes the complete build pipeline.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	result := &BuildResult{StartTime: time.Now()}
	fail := func(err error) (*BuildResult, error) {
		result.finish(BuildStatusFailed)
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		s.recorder.ObserveBuildDuration(result.Duration)
		return result, err
	}

	if req.Config == nil {
		return fail(ferrors.ConfigError("config required").Build())
	}
	cfg := req.Config
	result.OutputPath = cfg.Output.Directory
	if req.OutputDir != "" {
		result.OutputPath = req.OutputDir
	}

	// Stage 1: content source
	stageStart := time.Now()
	var ws *workspace.Manager
	if cfg.Content.Repository != nil {
		ws = s.workspaceFactory()
		if err := ws.Create(); err != nil {
			return fail(ferrors.FileSystemError("failed to create workspace").WithCause(err).Build())
		}
		defer func() {
			if err := ws.Cleanup(); err != nil {
				slog.Warn("Failed to cleanup workspace", logfields.Error(err))
			}
		}()
	}
	src, err := source.Resolve(ctx, cfg.Content, ws)
	if err != nil {
		return fail(err)
	}
	result.Source = src
	s.recorder.ObserveStageDuration(metrics.StageSource, time.Since(stageStart))

	m := manifest.New(manifest.Inputs{
		ContentDir:    src.Root,
		RepositoryURL: src.RepositoryURL,
		Branch:        src.Branch,
		Commit:        src.Commit,
	})
	result.Manifest = m
	result.BuildID = m.ID
	log := slog.With(logfields.BuildID(m.ID))
	log.Info("Starting navigation build", logfields.Path(src.Root), logfields.Count(len(cfg.Locales)))

	if ctx.Err() != nil {
		result.finish(BuildStatusCancelled)
		return result, ctx.Err()
	}

	// Stage 2: scan every category once; the builder reuses the scanner's results.
	stageStart = time.Now()
	scanner := nav.NewScanner(src.Root)
	for _, c := range nav.Categories() {
		files, err := scanner.Category(c)
		if err != nil {
			return fail(err)
		}
		s.recorder.SetCategoryPages(string(c.Key), len(files))
		for _, f := range files {
			if f.TitleFallback {
				s.recorder.IncTitleFallback(string(c.Key))
			}
		}
		result.Files = append(result.Files, files...)
	}
	m.AddPages(result.Files)
	s.recorder.ObserveStageDuration(metrics.StageScan, time.Since(stageStart))

	// Stage 3: one tree per locale
	stageStart = time.Now()
	builder := nav.NewBuilder(scanner)
	site := nav.Site{Locales: make(map[string]nav.SiteLocale, len(cfg.Locales))}
	for _, l := range cfg.Locales {
		tree, err := builder.Build(l.Tag, l.Overrides)
		if err != nil {
			return fail(err)
		}
		site.Locales[nav.LocalePath(l.Tag)] = nav.NewSiteLocale(tree, l.Info())
		m.AddLocale(tree)
		pages, sections := tree.Counts()
		s.recorder.SetLocaleNodes(l.Tag, pages, sections)
		log.Debug("Assembled locale", logfields.Locale(l.Tag), logfields.Count(pages))
	}
	result.Site = site
	s.recorder.ObserveStageDuration(metrics.StageAssemble, time.Since(stageStart))

	// Stage 4: output
	if !req.Options.DryRun {
		stageStart = time.Now()
		if err := s.write(result, cfg.Output.Format, !cfg.Output.DisableManifest); err != nil {
			return fail(err)
		}
		s.recorder.ObserveStageDuration(metrics.StageWrite, time.Since(stageStart))
	}

	result.finish(BuildStatusSuccess)
	s.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	s.recorder.ObserveBuildDuration(result.Duration)
	s.recorder.SetLastBuild(result.EndTime)
	log.Info("Navigation build complete",
		logfields.Count(len(result.Files)),
		logfields.Path(result.SidebarPath),
		logfields.Duration(result.Duration))
	return result, nil
}

func (s *DefaultBuildService) write(result *BuildResult, format nav.Format, withManifest bool) error {
	dir := result.OutputPath
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ferrors.FileSystemError("failed to create output directory").
			WithCause(err).WithContext(logfields.KeyPath, dir).Build()
	}

	name := SidebarBaseName + format.Ext()
	sidebar := filepath.Join(dir, name)
	if err := writeAtomic(sidebar, func(f *os.File) error { return result.Site.Write(f, format) }); err != nil {
		return ferrors.FileSystemError("failed to write sidebar").
			WithCause(err).WithContext(logfields.KeyPath, sidebar).Build()
	}
	result.SidebarPath = sidebar

	if !withManifest {
		return nil
	}
	result.Manifest.Outputs.Sidebar = name
	result.Manifest.Finish(manifest.StatusSuccess)
	p, err := result.Manifest.WriteFile(dir)
	if err != nil {
		return ferrors.FileSystemError("failed to write manifest").
			WithCause(err).WithContext(logfields.KeyPath, dir).Build()
	}
	result.ManifestPath = p
	return nil
}

// writeAtomic writes through a temporary file in the target directory and
// renames it into place, so readers never see a partial sidebar.
func writeAtomic(path string, write func(f *os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
