// Package lookup is the container-side service shared by the terminal UI,
// the one-shot commands and the HTTP server: it turns queries into
// de-duplicated suggestions and weather snapshots, with caching.
package lookup

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/NikitaCOEUR/skycast/internal/cache"
	"github.com/NikitaCOEUR/skycast/internal/logger"
	"github.com/NikitaCOEUR/skycast/internal/trace"
	"github.com/NikitaCOEUR/skycast/internal/weather"
)

// Fetcher is the upstream weather API
type Fetcher interface {
	Search(ctx context.Context, q string) ([]weather.Location, error)
	Current(ctx context.Context, q string) (*weather.Snapshot, error)
}

// Options tunes a Service
type Options struct {
	Cache      *cache.Cache // nil disables caching
	SearchTTL  time.Duration
	CurrentTTL time.Duration
	Logger     *logger.Logger
	Now        func() time.Time
}

// Service answers suggestion and current-conditions lookups
type Service struct {
	fetcher    Fetcher
	cache      *cache.Cache
	searchTTL  time.Duration
	currentTTL time.Duration
	log        *logger.Logger
	now        func() time.Time
}

// New creates a lookup service
func New(fetcher Fetcher, opts Options) *Service {
	s := &Service{
		fetcher:    fetcher,
		cache:      opts.Cache,
		searchTTL:  opts.SearchTTL,
		currentTTL: opts.CurrentTTL,
		log:        opts.Logger,
		now:        opts.Now,
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	s.log = s.log.Component("lookup")
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func cacheKey(kind, q string) string {
	return kind + ":" + strings.ToLower(strings.TrimSpace(q))
}

// Suggest returns de-duplicated city names for q, in upstream order.
// An empty query returns an empty list without calling upstream.
func (s *Service) Suggest(ctx context.Context, q string) ([]string, error) {
	defer trace.Region(ctx, "lookup.Suggest")()
	if strings.TrimSpace(q) == "" {
		return []string{}, nil
	}

	key := cacheKey("search", q)
	var names []string
	if s.fromCache(key, &names) {
		return names, nil
	}

	locations, err := s.fetcher.Search(ctx, q)
	if err != nil {
		s.log.Warn().Str("query", q).Err(err).Msg("Search failed")
		return nil, err
	}

	names = weather.UniqueNames(locations)
	s.toCache(key, names, s.searchTTL)
	s.log.Debug().Str("query", q).Int("suggestions", len(names)).Msg("Search done")
	return names, nil
}

// Current returns the conditions for q, or nil when q is blank
func (s *Service) Current(ctx context.Context, q string) (*weather.Snapshot, error) {
	defer trace.Region(ctx, "lookup.Current")()
	if strings.TrimSpace(q) == "" {
		return nil, nil
	}

	key := cacheKey("current", q)
	var snap weather.Snapshot
	if s.fromCache(key, &snap) {
		return &snap, nil
	}

	result, err := s.fetcher.Current(ctx, q)
	if err != nil {
		s.log.Warn().Str("query", q).Err(err).Msg("Current conditions failed")
		return nil, err
	}

	s.toCache(key, result, s.currentTTL)
	return result, nil
}

// fromCache decodes a fresh entry into out
func (s *Service) fromCache(key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	entry, ok := s.cache.Get(key, s.now())
	if !ok {
		return false
	}
	if err := json.Unmarshal(entry.Payload, out); err != nil {
		s.log.Warn().Str("key", key).Err(err).Msg("Dropping undecodable cache entry")
		_ = s.cache.Delete(key)
		return false
	}
	s.log.Debug().Str("key", key).Msg("Cache hit")
	return true
}

// toCache stores value; failures only cost a future upstream call
func (s *Service) toCache(key string, value interface{}, ttl time.Duration) {
	if s.cache == nil || ttl <= 0 {
		return
	}
	if err := s.cache.Put(key, value, s.now(), ttl); err != nil {
		s.log.Warn().Str("key", key).Err(err).Msg("Failed to cache lookup")
	}
}
