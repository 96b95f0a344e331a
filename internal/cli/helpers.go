// Package cli implements the skycast commands
package cli

import (
	"fmt"
	"io"

	"github.com/NikitaCOEUR/skycast/internal/cache"
	"github.com/NikitaCOEUR/skycast/internal/config"
	"github.com/NikitaCOEUR/skycast/internal/logger"
	"github.com/NikitaCOEUR/skycast/internal/lookup"
	"github.com/NikitaCOEUR/skycast/internal/metrics"
	"github.com/NikitaCOEUR/skycast/internal/serrors"
	"github.com/NikitaCOEUR/skycast/internal/weather"
)

// GlobalParams holds the settings every command accepts
type GlobalParams struct {
	LogLevel   string
	ConfigPath string // empty means $XDG_CONFIG_HOME/skycast/config.yml
	APIURL     string
	APIKey     string
}

// components holds initialized skycast components
type components struct {
	cfg        *config.Config
	configPath string
	log        *logger.Logger
	cache      *cache.Cache
	metrics    *metrics.Recorder
	lookup     *lookup.Service
}

// loadConfig resolves the config path and applies flag overrides on top
// of the file and the embedded defaults. The result must pass config.Check.
func loadConfig(params GlobalParams, extra map[string]string) (*config.Config, string, error) {
	path := params.ConfigPath
	if path == "" {
		p, err := config.GetDefaultConfigPath()
		if err != nil {
			return nil, "", err
		}
		path = p
	}

	loader := config.New()
	loader.Set("log.level", params.LogLevel)
	loader.Set("api.base_url", params.APIURL)
	loader.Set("api.key", params.APIKey)
	for k, v := range extra {
		loader.Set(k, v)
	}

	cfg, err := loader.Load(path)
	if err != nil {
		return nil, "", err
	}
	if result := config.Check(cfg); !result.Valid {
		first := result.Errors[0]
		msg := fmt.Sprintf("invalid configuration: %s: %s (run 'skycast validate' for all errors)", first.Field, first.Message)
		return nil, "", serrors.NewConfigurationError(path, msg, nil)
	}
	return cfg, path, nil
}

// initializeComponents loads the configuration and wires the lookup
// stack, logging to out (stderr when nil)
func initializeComponents(params GlobalParams, out io.Writer, opts ...logger.Option) (*components, error) {
	cfg, path, err := loadConfig(params, nil)
	if err != nil {
		return nil, err
	}
	opts = append([]logger.Option{logger.WithFormat(cfg.Log.Format)}, opts...)
	return newComponents(cfg, path, logger.New(cfg.Log.Level, out, opts...))
}

func newComponents(cfg *config.Config, configPath string, log *logger.Logger) (*components, error) {
	c := &components{
		cfg:        cfg,
		configPath: configPath,
		log:        log,
		metrics:    metrics.NewRecorder(),
	}

	if !cfg.Cache.Disabled {
		store, err := cache.New(cfg.CachePath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cache: %w", err)
		}
		if store.Recovered() {
			log.Warn().Str("path", store.Path()).Msg("Cache file was unreadable; starting empty")
		}
		c.cache = store
	}

	if cfg.API.Key == "" {
		log.Warn().Msg("No API key configured; set api.key or SKYCAST_API_KEY")
	}

	client := weather.NewClient(cfg.API.BaseURL, cfg.API.Key,
		weather.WithTimeout(cfg.API.Timeout),
		weather.WithRetries(cfg.API.Retries),
		weather.WithObserver(c.metrics),
		weather.WithLogger(log),
	)
	c.lookup = lookup.New(client, lookup.Options{
		Cache:      c.cache,
		SearchTTL:  cfg.Cache.SearchTTL,
		CurrentTTL: cfg.Cache.CurrentTTL,
		Logger:     log,
	})
	return c, nil
}

// logMetrics reports upstream latencies at debug level
func (c *components) logMetrics() {
	if !c.log.Enabled("debug") {
		return
	}
	snapshot := c.metrics.Snapshot()
	for _, endpoint := range c.metrics.Endpoints() {
		s := snapshot[endpoint]
		c.log.Debug().
			Str("endpoint", endpoint).
			Int("count", int(s.Count)).
			Float("p50_ms", s.P50).
			Float("p95_ms", s.P95).
			Float("p99_ms", s.P99).
			Float("max_ms", s.Max).
			Msg("Upstream latency")
	}
}
