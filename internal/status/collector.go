// Package status provides status information collection and display for skycast.
package status

import (
	"fmt"
	"os"
	"time"

	"github.com/NikitaCOEUR/skycast/internal/cache"
	"github.com/NikitaCOEUR/skycast/internal/config"
	"github.com/NikitaCOEUR/skycast/pkg/version"
)

// Collect gathers status information for a loaded configuration
func Collect(cfg *config.Config, configPath string, now time.Time) (*Data, error) {
	data := &Data{
		Version:       version.Version,
		ConfigPath:    configPath,
		APIBaseURL:    cfg.API.BaseURL,
		APIKeySet:     cfg.API.Key != "",
		Threshold:     cfg.Autocomplete.Threshold,
		MaxVisible:    cfg.Autocomplete.MaxVisible,
		CachePath:     cfg.CachePath(),
		CacheDisabled: cfg.Cache.Disabled,
		SearchTTL:     cfg.Cache.SearchTTL,
		CurrentTTL:    cfg.Cache.CurrentTTL,
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data.ConfigExists = true
		}
	}

	if err := collectCacheInfo(data, now); err != nil {
		return nil, err
	}
	return data, nil
}

func collectCacheInfo(data *Data, now time.Time) error {
	if data.CachePath == "" {
		return nil
	}

	info, err := cache.GetCacheInfo(data.CachePath, now)
	if err != nil {
		return fmt.Errorf("failed to read cache info: %w", err)
	}

	data.CacheFileSize = info.Size
	data.CacheTotalEntries = info.TotalEntries
	data.CacheExpiredEntries = info.ExpiredEntries
	return nil
}
