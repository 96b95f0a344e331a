// Package config handles loading and parsing of skycast configuration.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/skycast/internal/serrors"
)

//go:embed defaults.yml
var defaultsYAML []byte

// SupportedExtensions lists config file extensions in order of preference
var SupportedExtensions = []string{".yml", ".yaml", ".toml", ".json"}

const (
	// DefaultConfigName is the name of the config file under the XDG config dir
	DefaultConfigName = "config.yml"
)

// APIConfig configures the upstream weather API
type APIConfig struct {
	BaseURL string        `koanf:"base_url" yaml:"base_url" jsonschema:"description=Weather API base URL (search.json and current.json are appended),format=uri"`
	Key     string        `koanf:"key" yaml:"key" jsonschema:"description=Weather API key"`
	Timeout time.Duration `koanf:"timeout" yaml:"timeout" jsonschema:"description=Per-request timeout (e.g. 10s)"`
	Retries int           `koanf:"retries" yaml:"retries" jsonschema:"minimum=0,description=Retries on transport errors and 5xx/429 responses"`
}

// AutocompleteConfig configures the city input widget
type AutocompleteConfig struct {
	Threshold  int `koanf:"threshold" yaml:"threshold" jsonschema:"minimum=1,description=Minimum input length before suggestions are shown and searched"`
	MaxVisible int `koanf:"max_visible" yaml:"max_visible" jsonschema:"minimum=1,description=Maximum suggestion rows drawn in the terminal UI"`
}

// CacheConfig configures the lookup cache
type CacheConfig struct {
	Path       string        `koanf:"path" yaml:"path" jsonschema:"description=Cache file path (empty means XDG cache dir)"`
	SearchTTL  time.Duration `koanf:"search_ttl" yaml:"search_ttl" jsonschema:"description=How long search results stay cached"`
	CurrentTTL time.Duration `koanf:"current_ttl" yaml:"current_ttl" jsonschema:"description=How long current conditions stay cached"`
	Disabled   bool          `koanf:"disabled" yaml:"disabled" jsonschema:"description=Disable the persistent cache"`
}

// ServerConfig configures the HTTP service
type ServerConfig struct {
	Addr string `koanf:"addr" yaml:"addr" jsonschema:"description=Listen address for skycast serve"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Format string `koanf:"format" yaml:"format" jsonschema:"enum=text,enum=json"`
}

// Config represents a skycast configuration
type Config struct {
	API          APIConfig          `koanf:"api" yaml:"api"`
	Autocomplete AutocompleteConfig `koanf:"autocomplete" yaml:"autocomplete"`
	Cache        CacheConfig        `koanf:"cache" yaml:"cache"`
	Server       ServerConfig       `koanf:"server" yaml:"server"`
	Log          LogConfig          `koanf:"log" yaml:"log"`
}

// Loader handles loading and layering configuration sources
type Loader struct {
	// Overrides are applied last, keyed by koanf path (e.g. "api.key")
	Overrides map[string]interface{}
}

// New creates a new config loader
func New() *Loader {
	return &Loader{Overrides: make(map[string]interface{})}
}

// Set records an override; empty strings are ignored so unset flags don't clobber files
func (l *Loader) Set(key string, value interface{}) {
	if s, ok := value.(string); ok && s == "" {
		return
	}
	l.Overrides[key] = value
}

// parserFor picks the koanf parser from a file extension
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
}

// Load builds the effective configuration: defaults, then the file at path
// (skipped when path is empty or missing), then overrides
func (l *Loader) Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			parser, err := parserFor(path)
			if err != nil {
				return nil, serrors.NewConfigurationError(path, "cannot read config", err)
			}
			if err := k.Load(file.Provider(path), parser); err != nil {
				return nil, serrors.NewConfigurationError(path, "failed to load config", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, serrors.NewConfigurationError(path, "cannot stat config", err)
		}
	}

	for key, value := range l.Overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply override %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, serrors.NewConfigurationError(path, "failed to unmarshal config", err)
	}

	return cfg, nil
}

// Default returns the embedded defaults without reading any file
func Default() *Config {
	cfg, err := New().Load("")
	if err != nil {
		// defaults.yml is embedded at build time
		panic(err)
	}
	return cfg
}

// configHome returns $XDG_CONFIG_HOME or ~/.config
func configHome() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config"), nil
}

// GetDefaultConfigPath returns the path to the user config file
func GetDefaultConfigPath() (string, error) {
	dir, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "skycast", DefaultConfigName), nil
}

// GetDefaultCachePath returns $XDG_CACHE_HOME/skycast/cache.json
func GetDefaultCachePath() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, _ := os.UserHomeDir()
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "skycast", "cache.json")
}

// CachePath resolves the effective cache path
func (c *Config) CachePath() string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return GetDefaultCachePath()
}
