package cache

import (
	"encoding/json"
	"os"
	"time"
)

// Info contains information about the cache file
type Info struct {
	Path           string
	Size           int64
	TotalEntries   int
	ExpiredEntries int
}

// GetCacheInfo returns information about the cache file at now
func GetCacheInfo(cachePath string, now time.Time) (*Info, error) {
	info, err := os.Stat(cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Info{Path: cachePath}, nil
		}
		return nil, err
	}

	result := &Info{
		Path: cachePath,
		Size: info.Size(),
	}

	data, err := os.ReadFile(cachePath)
	if err != nil {
		return result, nil // Return partial info
	}

	var entries map[string]*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return result, nil // Return partial info
	}

	result.TotalEntries = len(entries)
	for _, e := range entries {
		if e != nil && e.Expired(now) {
			result.ExpiredEntries++
		}
	}

	return result, nil
}
