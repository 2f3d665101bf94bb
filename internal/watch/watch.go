// Package watch rebuilds the navigation when module documentation or the
// configuration file changes, and optionally on a fixed interval.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Rebuild triggers.
const (
	TriggerFilesystem = "fsnotify"
	TriggerInterval   = "interval"
)

// RebuildFunc runs one complete build.
type RebuildFunc func(ctx context.Context, trigger string) error

// Options configures a Watcher.
type Options struct {
	// ConfigPath is watched for edits; empty disables it.
	ConfigPath string
	// ContentRoot is the directory holding config/modules; empty disables
	// content watching (e.g. for cloned content refreshed by Interval).
	ContentRoot string
	Debounce    time.Duration
	// Interval schedules periodic rebuilds; zero disables them.
	Interval time.Duration
	Recorder metrics.Recorder
}

// Watcher serializes rebuilds triggered by file events and the interval job.
type Watcher struct {
	opts    Options
	rebuild RebuildFunc
	fsw     *fsnotify.Watcher
	mu      sync.Mutex

	configPath string
	modulesDir string
}

// New creates a Watcher and registers the file watches.
func New(opts Options, rebuild RebuildFunc) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{opts: opts, rebuild: rebuild, fsw: fsw}

	if opts.ConfigPath != "" {
		abs, err := filepath.Abs(opts.ConfigPath)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
		w.configPath = abs
		// Editors replace files on save; watching the directory survives that.
		if err := fsw.Add(filepath.Dir(abs)); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch config directory: %w", err)
		}
	}

	if opts.ContentRoot != "" {
		w.modulesDir = filepath.Join(opts.ContentRoot, filepath.FromSlash(nav.ModulesDir))
		if err := w.addContentWatches(); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addContentWatches() error {
	if err := w.fsw.Add(w.modulesDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.modulesDir, err)
	}
	for _, c := range nav.Categories() {
		dir := filepath.Join(w.opts.ContentRoot, filepath.FromSlash(c.Dir()))
		if _, err := os.Stat(dir); err != nil {
			slog.Warn("Category directory missing, not watched", logfields.Category(string(c.Key)), logfields.Path(dir))
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return nil
}

// Run processes events until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fsw.Close() }()

	if w.opts.Interval > 0 {
		s, err := w.schedule(ctx)
		if err != nil {
			return err
		}
		s.Start()
		defer func() {
			if err := s.Shutdown(); err != nil {
				slog.Warn("Scheduler shutdown failed", logfields.Error(err))
			}
		}()
	}

	slog.Info("Watching for changes",
		logfields.Path(w.opts.ContentRoot),
		slog.String("config", w.configPath),
		slog.Duration("interval", w.opts.Interval))

	var debounce *time.Timer
	var fire <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if debounce == nil {
				debounce = time.NewTimer(w.opts.Debounce)
			} else {
				debounce.Reset(w.opts.Debounce)
			}
			fire = debounce.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))
		case <-fire:
			fire = nil
			_ = w.Rebuild(ctx, TriggerFilesystem)
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(w.opts.Interval),
		gocron.NewTask(func() { _ = w.Rebuild(ctx, TriggerInterval) }),
		gocron.WithName("periodic-rebuild"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create periodic rebuild job: %w", err)
	}
	return s, nil
}

// relevant reports whether event affects the build. New category directories
// are added to the watch list as a side effect.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Clean(event.Name)
	if w.configPath != "" && name == w.configPath {
		return !event.Has(fsnotify.Chmod)
	}
	if w.modulesDir == "" || event.Has(fsnotify.Chmod) {
		return false
	}
	if filepath.Dir(name) == w.modulesDir {
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(name); err == nil && info.IsDir() {
				if err := w.fsw.Add(name); err != nil {
					slog.Warn("Failed to watch new directory", logfields.Path(name), logfields.Error(err))
				}
			}
		}
		return true
	}
	return strings.EqualFold(filepath.Ext(name), nav.ContentExt) &&
		filepath.Dir(filepath.Dir(name)) == w.modulesDir
}

// Rebuild runs the rebuild function, one at a time.
func (w *Watcher) Rebuild(ctx context.Context, trigger string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.opts.Recorder.IncRebuildTrigger(trigger)
	start := time.Now()
	err := w.rebuild(ctx, trigger)
	if err != nil {
		slog.Error("Rebuild failed", slog.String("trigger", trigger), logfields.Error(err))
		return err
	}
	slog.Info("Rebuilt navigation", slog.String("trigger", trigger), logfields.Duration(time.Since(start)))
	return nil
}
