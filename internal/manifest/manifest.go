// Package manifest records what a navigation build consumed and produced.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// FileName is the manifest file written next to the sidebar output.
const FileName = "manifest.json"

// Build outcomes.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// BuildManifest represents a complete record of a build's inputs and outputs.
type BuildManifest struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Status    string         `json:"status"`
	Duration  int64          `json:"duration_ms"`
	Inputs    Inputs         `json:"inputs"`
	Locales   []LocaleOutput `json:"locales"`
	Pages     []Page         `json:"pages"`
	Outputs   Outputs        `json:"outputs"`
}

// Inputs captures where the content came from.
type Inputs struct {
	ContentDir    string `json:"content_dir"`
	RepositoryURL string `json:"repository_url,omitempty"`
	Branch        string `json:"branch,omitempty"`
	Commit        string `json:"commit,omitempty"`
}

// LocaleOutput summarizes one generated locale.
type LocaleOutput struct {
	Lang     string `json:"lang"`
	Path     string `json:"path"`
	Pages    int    `json:"pages"`
	Sections int    `json:"sections"`
}

// Page is a scanned module documentation file.
type Page struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	Title         string `json:"title"`
	TitleFallback bool   `json:"title_fallback,omitempty"`
	Fingerprint   string `json:"fingerprint"`
}

// Outputs captures the generated artifacts.
type Outputs struct {
	Sidebar     string `json:"sidebar,omitempty"`
	ContentHash string `json:"content_hash,omitempty"`
}

// New starts a manifest with a fresh build id.
func New(inputs Inputs) *BuildManifest {
	return &BuildManifest{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Inputs:    inputs,
		Locales:   []LocaleOutput{},
		Pages:     []Page{},
	}
}

// AddPages records module files in the given order.
func (m *BuildManifest) AddPages(files []nav.ModuleFile) {
	for _, f := range files {
		m.Pages = append(m.Pages, Page{
			ID:            f.ID(),
			Category:      string(f.Category),
			Title:         f.Title,
			TitleFallback: f.TitleFallback,
			Fingerprint:   Fingerprint(f.Content),
		})
	}
	m.Outputs.ContentHash = m.contentHash()
}

// AddLocale records the page and section counts of a generated tree.
func (m *BuildManifest) AddLocale(tree nav.Tree) {
	pages, sections := tree.Counts()
	m.Locales = append(m.Locales, LocaleOutput{
		Lang:     tree.Lang,
		Path:     nav.LocalePath(tree.Lang),
		Pages:    pages,
		Sections: sections,
	})
}

// Finish sets the outcome and duration measured from Timestamp.
func (m *BuildManifest) Finish(status string) {
	m.Status = status
	m.Duration = time.Since(m.Timestamp).Milliseconds()
}

// TitleFallbacks counts pages whose title came from the file name.
func (m *BuildManifest) TitleFallbacks() int {
	n := 0
	for _, p := range m.Pages {
		if p.TitleFallback {
			n++
		}
	}
	return n
}

// Fingerprint returns the mdfp fingerprint of a module file. Frontmatter and
// body are hashed separately so reformatting the delimiters does not change it.
func Fingerprint(content []byte) string {
	doc, err := frontmatter.Split(content)
	if err != nil {
		return mdfp.CalculateFingerprintFromParts("", string(content))
	}
	fm := strings.TrimSuffix(strings.ReplaceAll(string(doc.Frontmatter), "\r\n", "\n"), "\n")
	return mdfp.CalculateFingerprintFromParts(fm, string(doc.Body))
}

// contentHash is a digest over all page ids and fingerprints.
func (m *BuildManifest) contentHash() string {
	h := sha256.New()
	for _, p := range m.Pages {
		fmt.Fprintf(h, "%s\x00%s\n", p.ID, p.Fingerprint)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// ToJSON serializes the manifest to JSON.
func (m *BuildManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*BuildManifest, error) {
	var m BuildManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// WriteFile writes the manifest as FileName into dir.
func (m *BuildManifest) WriteFile(dir string) (string, error) {
	data, err := m.ToJSON()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, FileName)
	if err := os.WriteFile(p, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return p, nil
}
