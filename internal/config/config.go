package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/nav"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "docnav.yaml"

// Config represents the application configuration.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
	Watch   WatchConfig   `yaml:"watch,omitempty"`
	Locales []Locale      `yaml:"locales"`
}

// ContentConfig locates the documentation content root.
type ContentConfig struct {
	// Directory is the content root. With a repository it is relative to the clone.
	Directory  string            `yaml:"directory"`
	Repository *RepositoryConfig `yaml:"repository,omitempty"`
}

// RepositoryConfig describes a git repository holding the content.
type RepositoryConfig struct {
	URL    string      `yaml:"url"`
	Branch string      `yaml:"branch,omitempty"`
	Depth  int         `yaml:"depth,omitempty"`
	Auth   *AuthConfig `yaml:"auth,omitempty"`
}

// AuthConfig holds HTTP basic/token credentials for the content repository.
type AuthConfig struct {
	Username string `yaml:"username,omitempty"`
	Token    string `yaml:"token,omitempty"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory       string     `yaml:"directory"`
	Format          nav.Format `yaml:"format,omitempty"`
	DisableManifest bool       `yaml:"disable_manifest,omitempty"`
}

// MetricsConfig enables the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce,omitempty"`
	// Interval triggers a full rebuild periodically; zero disables it.
	Interval time.Duration `yaml:"interval,omitempty"`
}

// Default values applied by ApplyDefaults.
const (
	DefaultContentDirectory = "docs"
	DefaultOutputDirectory  = "./.docnav"
	DefaultDebounce         = 500 * time.Millisecond
)

// Load reads, expands and validates the configuration file at configPath.
// Variables from .env files are available for ${VAR} expansion.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration, applies defaults and validates it.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Content.Directory == "" {
		c.Content.Directory = DefaultContentDirectory
	}
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDirectory
	}
	if c.Output.Format == "" {
		c.Output.Format = nav.FormatJSON
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = DefaultDebounce
	}
	if len(c.Locales) == 0 {
		c.Locales = []Locale{{Lang: RootLang, Label: "English", SelectText: "Languages"}}
	}
	for i := range c.Locales {
		if c.Locales[i].Lang == "" {
			if c.Locales[i].Tag == "" {
				c.Locales[i].Lang = RootLang
			} else {
				c.Locales[i].Lang = c.Locales[i].Tag
			}
		}
	}
}

// Locale returns the configured locale with the given tag.
func (c *Config) Locale(tag string) (Locale, bool) {
	for _, l := range c.Locales {
		if l.Tag == tag {
			return l, true
		}
	}
	return Locale{}, false
}

// Init writes an example configuration with the full locale table.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Content: ContentConfig{Directory: DefaultContentDirectory},
		Output:  OutputConfig{Directory: DefaultOutputDirectory, Format: nav.FormatJSON},
		Watch:   WatchConfig{Debounce: DefaultDebounce},
		Locales: DefaultLocales(),
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&example); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
