package nav

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// ModuleFile is one module documentation page found in a category directory.
type ModuleFile struct {
	Category CategoryKey
	// Name is the file name without extension; it is the last segment of ID.
	Name string
	// Path is the file path on disk.
	Path  string
	Title string
	// TitleFallback is set when the file had no heading and Title is Name.
	TitleFallback bool
	Content       []byte
}

// ID is the page identifier, e.g. "config/modules/core/battery".
func (f ModuleFile) ID() string {
	return path.Join(ModulesDir, string(f.Category), f.Name)
}

// ScanDir lists the module files directly inside dir, sorted by file name.
// Only files with ContentExt are returned. A missing or unreadable directory
// or file is a fatal configuration error.
func ScanDir(dir string, category CategoryKey) ([]ModuleFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ferrors.ConfigError("module category directory not readable").
			WithCause(err).
			WithContext(logfields.KeyCategory, string(category)).
			WithContext(logfields.KeyPath, dir).
			Build()
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ContentExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	files := make([]ModuleFile, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, ferrors.ConfigError("module documentation file not readable").
				WithCause(err).
				WithContext(logfields.KeyCategory, string(category)).
				WithContext(logfields.KeyPath, p).
				Build()
		}
		title, fallback := ExtractTitle(content, name)
		if fallback {
			slog.Debug("No heading found, using file name as title",
				logfields.Category(string(category)), logfields.Path(p))
		}
		files = append(files, ModuleFile{
			Category:      category,
			Name:          fileTitle(name),
			Path:          p,
			Title:         title,
			TitleFallback: fallback,
			Content:       content,
		})
	}
	return files, nil
}

// Scanner reads category directories below a content root. Results are
// memoized per directory for the lifetime of the Scanner; create one per build.
type Scanner struct {
	root  string
	cache map[string][]ModuleFile
}

// NewScanner returns a Scanner for the given content root.
func NewScanner(root string) *Scanner {
	return &Scanner{root: root, cache: make(map[string][]ModuleFile)}
}

// Root returns the content root.
func (s *Scanner) Root() string { return s.root }

// Category returns the module files of a category.
func (s *Scanner) Category(c Category) ([]ModuleFile, error) {
	dir := filepath.Join(s.root, filepath.FromSlash(c.Dir()))
	if files, ok := s.cache[dir]; ok {
		return files, nil
	}
	files, err := ScanDir(dir, c.Key)
	if err != nil {
		return nil, err
	}
	s.cache[dir] = files
	return files, nil
}

// All returns the module files of every declared category in sidebar order.
func (s *Scanner) All() ([]ModuleFile, error) {
	var all []ModuleFile
	for _, c := range categories {
		files, err := s.Category(c)
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}
	return all, nil
}
