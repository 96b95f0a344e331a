package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/NikitaCOEUR/skycast/internal/autocomplete"
	"github.com/NikitaCOEUR/skycast/internal/cache"
)

// CompleteParams holds parameters for shell completion of city names
type CompleteParams struct {
	GlobalParams
	Prefix string
}

// CompleteCities prints cached city names matching prefix, for shell
// completion. It never calls the weather API.
func CompleteCities(params CompleteParams) error {
	cfg, _, err := loadConfig(params.GlobalParams, nil)
	if err != nil || cfg.Cache.Disabled {
		return err
	}

	c, err := cache.New(cfg.CachePath())
	if err != nil {
		return err
	}

	for _, name := range cachedCities(c, params.Prefix, time.Now()) {
		fmt.Println(name)
	}
	return nil
}

// cachedCities collects unique names from fresh search results
func cachedCities(c *cache.Cache, prefix string, now time.Time) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, entry := range c.Scan("search:", now) {
		var batch []string
		if err := json.Unmarshal(entry.Payload, &batch); err != nil {
			continue
		}
		for _, name := range batch {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	if prefix == "" {
		return names
	}
	return autocomplete.Filter(prefix, names, 1)
}
