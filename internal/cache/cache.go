// Package cache provides the persistent lookup cache for skycast.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/NikitaCOEUR/skycast/internal/serrors"
)

// Entry represents one cached lookup result
type Entry struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	StoredAt  time.Time       `json:"stored_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Expired reports whether the entry is stale at now
func (e *Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// Cache manages persistent and in-memory cache. Every write re-reads the
// file under the lock, so instances sharing a path merge their changes.
type Cache struct {
	path      string
	lock      *flock.Flock
	mu        sync.RWMutex
	entries   map[string]*Entry
	recovered bool
}

// New creates a new cache instance. An empty path gives a memory-only cache.
// A file that cannot be decoded is treated as empty and replaced on the next write.
func New(path string) (*Cache, error) {
	c := &Cache{
		path:    path,
		entries: make(map[string]*Entry),
	}

	if path == "" {
		return c, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, serrors.NewCacheError(path, "failed to create cache directory", err)
	}
	c.lock = flock.New(path + ".lock")

	entries, corrupt, err := readEntries(path)
	if err != nil {
		return nil, serrors.NewCacheError(path, "failed to read cache", err)
	}
	c.entries = entries
	c.recovered = corrupt

	return c, nil
}

// Path returns the backing file, empty for memory-only caches
func (c *Cache) Path() string {
	return c.path
}

// Recovered reports whether New found an undecodable file and started empty
func (c *Cache) Recovered() bool {
	return c.recovered
}

// Get retrieves a fresh entry; expired entries are reported as misses
func (c *Cache) Get(key string, now time.Time) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[key]
	if !found || entry.Expired(now) {
		return nil, false
	}
	return entry, true
}

// Put marshals value and stores it under key for ttl
func (c *Cache) Put(key string, value interface{}, now time.Time, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return serrors.NewCacheError(c.path, "failed to encode entry", err)
	}
	return c.Set(&Entry{
		Key:       key,
		Payload:   payload,
		StoredAt:  now,
		ExpiresAt: now.Add(ttl),
	})
}

// Set stores an entry in cache and persists it
func (c *Cache) Set(entry *Entry) error {
	return c.update(func(entries map[string]*Entry) {
		entries[entry.Key] = entry
	})
}

// Delete removes an entry from cache
func (c *Cache) Delete(key string) error {
	return c.update(func(entries map[string]*Entry) {
		delete(entries, key)
	})
}

// Clear removes all entries from cache
func (c *Cache) Clear() error {
	return c.update(func(entries map[string]*Entry) {
		for key := range entries {
			delete(entries, key)
		}
	})
}

// PurgeExpired drops stale entries and returns how many were removed
func (c *Cache) PurgeExpired(now time.Time) (int, error) {
	removed := 0
	err := c.update(func(entries map[string]*Entry) {
		for key, entry := range entries {
			if entry == nil || entry.Expired(now) {
				delete(entries, key)
				removed++
			}
		}
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Scan returns the fresh entries whose key starts with prefix, sorted by key
func (c *Cache) Scan(prefix string, now time.Time) []*Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*Entry
	for key, entry := range c.entries {
		if strings.HasPrefix(key, prefix) && !entry.Expired(now) {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Len returns the number of entries, stale ones included
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// readEntries loads the file at path. A missing file yields an empty map;
// an undecodable one yields an empty map with corrupt set.
func readEntries(path string) (map[string]*Entry, bool, error) {
	entries := make(map[string]*Entry)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, false, nil
		}
		return nil, false, err
	}

	var decoded map[string]*Entry
	if err := json.Unmarshal(data, &decoded); err != nil {
		return entries, true, nil
	}
	for key, entry := range decoded {
		if entry != nil {
			entries[key] = entry
		}
	}
	return entries, false, nil
}

// update applies fn to the current on-disk entries under the file lock,
// writes the result and adopts it as the in-memory view
func (c *Cache) update(fn func(entries map[string]*Entry)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path == "" {
		fn(c.entries)
		return nil
	}

	if err := c.lock.Lock(); err != nil {
		return serrors.NewCacheError(c.path, "failed to lock cache", err)
	}
	defer func() { _ = c.lock.Unlock() }()

	entries, _, err := readEntries(c.path)
	if err != nil {
		return serrors.NewCacheError(c.path, "failed to read cache", err)
	}
	fn(entries)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return serrors.NewCacheError(c.path, "failed to encode cache", err)
	}

	// readers never observe a partially written file
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return serrors.NewCacheError(c.path, "failed to write cache", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return serrors.NewCacheError(c.path, "failed to replace cache", err)
	}

	c.entries = entries
	return nil
}
