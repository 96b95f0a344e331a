package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WriteSample writes the default configuration to path as YAML.
// It refuses to overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(sample())
	if err != nil {
		return fmt.Errorf("failed to encode sample config: %w", err)
	}

	header := []byte("# skycast configuration\n# Set api.key or export SKYCAST_API_KEY.\n")
	return os.WriteFile(path, append(header, data...), 0600)
}

// sampleConfig mirrors Config but renders durations as strings
type sampleConfig struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Key     string `yaml:"key"`
		Timeout string `yaml:"timeout"`
		Retries int    `yaml:"retries"`
	} `yaml:"api"`
	Autocomplete AutocompleteConfig `yaml:"autocomplete"`
	Cache        struct {
		Path       string `yaml:"path"`
		SearchTTL  string `yaml:"search_ttl"`
		CurrentTTL string `yaml:"current_ttl"`
		Disabled   bool   `yaml:"disabled"`
	} `yaml:"cache"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

func sample() sampleConfig {
	def := Default()

	var s sampleConfig
	s.API.BaseURL = def.API.BaseURL
	s.API.Key = ""
	s.API.Timeout = def.API.Timeout.String()
	s.API.Retries = def.API.Retries
	s.Autocomplete = def.Autocomplete
	s.Cache.Path = def.Cache.Path
	s.Cache.SearchTTL = def.Cache.SearchTTL.String()
	s.Cache.CurrentTTL = def.Cache.CurrentTTL.String()
	s.Cache.Disabled = def.Cache.Disabled
	s.Server = def.Server
	s.Log = def.Log
	return s
}
