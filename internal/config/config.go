package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/matheuskafuri/cardex/internal/card"
	"github.com/matheuskafuri/cardex/internal/source"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Encoding string `yaml:"encoding"`
}

type Config struct {
	RefreshInterval string              `yaml:"refresh_interval"`
	HTTPTimeout     string              `yaml:"http_timeout,omitempty"`
	Variants        map[string][]Source `yaml:"variants"`
}

func (c *Config) RefreshDuration() time.Duration {
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}

func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil {
		return 20 * time.Second
	}
	return d
}

// Registry converts the configured source lists into the ordered
// per-variant registry the fetcher walks. Assumes a validated config.
func (c *Config) Registry() source.Registry {
	reg := make(source.Registry, len(c.Variants))
	for name, sources := range c.Variants {
		list := make([]source.Source, 0, len(sources))
		for _, s := range sources {
			list = append(list, source.Source{
				Name:     s.Name,
				URL:      s.URL,
				Encoding: source.Encoding(s.Encoding),
			})
		}
		reg[card.Variant(name)] = list
	}
	return reg
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "cardex", "config.yaml")
}

func SnapshotPath() string {
	return filepath.Join(xdg.CacheHome, "cardex", "cardex.db")
}

func SessionPath() string {
	return filepath.Join(xdg.CacheHome, "cardex", "session.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if len(cfg.Variants) == 0 {
		return fmt.Errorf("no variants configured (expected: base, all)")
	}

	for name, sources := range cfg.Variants {
		if _, err := card.ParseVariant(name); err != nil {
			return err
		}
		if len(sources) == 0 {
			return fmt.Errorf("variant %q: at least one source is required", name)
		}
		for i, s := range sources {
			if s.Name == "" {
				return fmt.Errorf("variant %q, source %d: name is required", name, i)
			}
			if s.URL == "" {
				return fmt.Errorf("source %q: url is required", s.Name)
			}
			u, err := url.Parse(s.URL)
			if err != nil {
				return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
			}
			if _, err := source.ParseEncoding(s.Encoding); err != nil {
				return fmt.Errorf("source %q: %w", s.Name, err)
			}
		}
	}

	for _, v := range card.Variants() {
		if _, ok := cfg.Variants[string(v)]; !ok {
			return fmt.Errorf("variant %q is not configured", v)
		}
	}
	return nil
}
