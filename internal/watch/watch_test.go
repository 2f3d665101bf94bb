package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/nav"
)

func contentTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, c := range nav.Categories() {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(c.Dir())), 0o750))
	}
	return root
}

type recorder struct {
	mu       sync.Mutex
	triggers []string
	calls    chan string
}

func newRecorder() *recorder {
	return &recorder{calls: make(chan string, 16)}
}

func (r *recorder) rebuild(_ context.Context, trigger string) error {
	r.mu.Lock()
	r.triggers = append(r.triggers, trigger)
	r.mu.Unlock()
	r.calls <- trigger
	return nil
}

func runWatcher(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestWatcher_DebouncesContentChanges(t *testing.T) {
	root := contentTree(t)
	rec := newRecorder()
	w, err := New(Options{ContentRoot: root, Debounce: 150 * time.Millisecond}, rec.rebuild)
	require.NoError(t, err)
	runWatcher(t, w)

	file := filepath.Join(root, "config", "modules", "core", "battery.md")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte("# Battery\n"), 0o600))
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case trigger := <-rec.calls:
		assert.Equal(t, TriggerFilesystem, trigger)
	case <-time.After(3 * time.Second):
		t.Fatal("expected a rebuild after content change")
	}

	select {
	case <-rec.calls:
		t.Fatal("burst of writes should produce a single rebuild")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_ConfigChangeTriggersRebuild(t *testing.T) {
	cfgDir := t.TempDir()
	cfgPath := filepath.Join(cfgDir, "docnav.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("locales: []\n"), 0o600))

	rec := newRecorder()
	w, err := New(Options{ConfigPath: cfgPath, Debounce: 50 * time.Millisecond}, rec.rebuild)
	require.NoError(t, err)
	runWatcher(t, w)

	// Unrelated files next to the config are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "notes.txt"), []byte("x"), 0o600))
	select {
	case <-rec.calls:
		t.Fatal("unrelated file should not trigger a rebuild")
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(cfgPath, []byte("locales: []\n# edited\n"), 0o600))
	select {
	case <-rec.calls:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a rebuild after config change")
	}
}

func TestWatcher_IntervalRebuild(t *testing.T) {
	rec := newRecorder()
	w, err := New(Options{Interval: 100 * time.Millisecond}, rec.rebuild)
	require.NoError(t, err)
	runWatcher(t, w)

	select {
	case trigger := <-rec.calls:
		assert.Equal(t, TriggerInterval, trigger)
	case <-time.After(3 * time.Second):
		t.Fatal("expected a periodic rebuild")
	}
}

func TestWatcher_RebuildIsSerialized(t *testing.T) {
	var active, peak int32
	w, err := New(Options{}, func(context.Context, string) error {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return nil
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.fsw.Close() })

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.Rebuild(context.Background(), TriggerInterval)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&peak))
}

func TestWatcher_Relevant(t *testing.T) {
	root := contentTree(t)
	w, err := New(Options{ContentRoot: root}, func(context.Context, string) error { return nil })
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.fsw.Close() })

	modules := filepath.Join(root, "config", "modules")
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"module file write", fsnotify.Event{Name: filepath.Join(modules, "core", "battery.md"), Op: fsnotify.Write}, true},
		{"module file removed", fsnotify.Event{Name: filepath.Join(modules, "vcs", "git.md"), Op: fsnotify.Remove}, true},
		{"non markdown file", fsnotify.Event{Name: filepath.Join(modules, "core", "image.png"), Op: fsnotify.Write}, false},
		{"chmod only", fsnotify.Event{Name: filepath.Join(modules, "core", "battery.md"), Op: fsnotify.Chmod}, false},
		{"category dir removed", fsnotify.Event{Name: filepath.Join(modules, "misc"), Op: fsnotify.Remove}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}
