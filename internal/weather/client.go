package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/tidwall/gjson"

	"github.com/NikitaCOEUR/skycast/internal/logger"
	"github.com/NikitaCOEUR/skycast/internal/serrors"
	"github.com/NikitaCOEUR/skycast/pkg/version"
)

const (
	// EndpointSearch is the city search endpoint
	EndpointSearch = "search.json"
	// EndpointCurrent is the current conditions endpoint
	EndpointCurrent = "current.json"

	// DefaultTimeout bounds a single HTTP attempt
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20
)

// Observer receives the latency of every attempt, keyed by endpoint
type Observer interface {
	Observe(endpoint string, d time.Duration)
}

// Client talks to the weather API
type Client struct {
	baseURL   string
	key       string
	http      *http.Client
	retries   uint64
	baseDelay time.Duration
	observer  Observer
	log       *logger.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-attempt timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRetries sets how many times a transient failure is retried
func WithRetries(n int) Option {
	return func(c *Client) {
		if n < 0 {
			n = 0
		}
		c.retries = uint64(n)
	}
}

// WithRetryDelay sets the initial backoff interval
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.baseDelay = d }
}

// WithObserver reports per-attempt latencies
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithLogger sets the client logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l.Component("weather") }
}

// NewClient creates a client for baseURL; a missing trailing slash is added
func NewClient(baseURL, key string, opts ...Option) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	c := &Client{
		baseURL:   baseURL,
		key:       key,
		http:      &http.Client{Timeout: DefaultTimeout},
		retries:   2,
		baseDelay: 200 * time.Millisecond,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search returns the locations matching q
func (c *Client) Search(ctx context.Context, q string) ([]Location, error) {
	body, err := c.get(ctx, EndpointSearch, q)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, serrors.NewDecodeError(EndpointSearch, "invalid JSON in search response", nil)
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, serrors.NewDecodeError(EndpointSearch, "search response is not an array", nil)
	}

	items := root.Array()
	locations := make([]Location, 0, len(items))
	for _, item := range items {
		name := item.Get("name")
		if name.Type != gjson.String {
			continue
		}
		locations = append(locations, Location{
			Name:    name.String(),
			Region:  item.Get("region").String(),
			Country: item.Get("country").String(),
			Lat:     item.Get("lat").Float(),
			Lon:     item.Get("lon").Float(),
		})
	}
	return locations, nil
}

// Current returns the current conditions for q
func (c *Client) Current(ctx context.Context, q string) (*Snapshot, error) {
	body, err := c.get(ctx, EndpointCurrent, q)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, serrors.NewDecodeError(EndpointCurrent, "invalid JSON in current response", nil)
	}
	root := gjson.ParseBytes(body)
	current := root.Get("current")
	location := root.Get("location")
	if !current.IsObject() || !location.IsObject() {
		return nil, serrors.NewDecodeError(EndpointCurrent, "current response lacks current/location", nil)
	}

	return &Snapshot{
		City:                  location.Get("name").String(),
		LocalTime:             location.Get("localtime").String(),
		Condition:             current.Get("condition.text").String(),
		TemperatureCelsius:    current.Get("temp_c").Float(),
		TemperatureFahrenheit: current.Get("temp_f").Float(),
		FeelsLikeCelsius:      current.Get("feelslike_c").Float(),
		FeelsLikeFahrenheit:   current.Get("feelslike_f").Float(),
		Humidity:              current.Get("humidity").Float(),
		WindSpeedKph:          current.Get("wind_kph").Float(),
		WindSpeedMph:          current.Get("wind_mph").Float(),
	}, nil
}

// requestURL builds {base}{endpoint}?key=...&q=...
func (c *Client) requestURL(endpoint, q string) string {
	params := url.Values{}
	params.Set("key", c.key)
	params.Set("q", q)
	return c.baseURL + endpoint + "?" + params.Encode()
}

// get performs the request with retries and returns the 2xx body
func (c *Client) get(ctx context.Context, endpoint, q string) ([]byte, error) {
	var body []byte
	attempt := 0

	operation := func() error {
		attempt++
		b, err := c.do(ctx, endpoint, q)
		if err == nil {
			body = b
			return nil
		}

		var apiErr *serrors.APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			return backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}

		c.log.Debug().Str("endpoint", endpoint).Int("attempt", attempt).Err(err).Msg("Request failed, retrying")
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.baseDelay
	policy.MaxElapsedTime = 0

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, c.retries), ctx))
	if err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Err
		}
		return nil, err
	}
	return body, nil
}

// do performs a single attempt
func (c *Client) do(ctx context.Context, endpoint, q string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(endpoint, q), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	start := time.Now()
	resp, err := c.http.Do(req)
	if c.observer != nil {
		c.observer.Observe(endpoint, time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	c.log.Debug().
		Str("endpoint", endpoint).
		Str("query", q).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("Weather API response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, serrors.NewAPIError(endpoint, resp.StatusCode, msg)
	}

	return body, nil
}
