package status

import "time"

// Data contains all the information to display in status
type Data struct {
	// Header
	Version string

	// Configuration
	ConfigPath   string
	ConfigExists bool
	APIBaseURL   string
	APIKeySet    bool
	Threshold    int
	MaxVisible   int

	// Cache
	CachePath           string
	CacheDisabled       bool
	CacheFileSize       int64
	CacheTotalEntries   int
	CacheExpiredEntries int
	SearchTTL           time.Duration
	CurrentTTL          time.Duration
}
