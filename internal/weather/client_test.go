package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/skycast/internal/serrors"
	"github.com/NikitaCOEUR/skycast/pkg/version"
)

const searchBody = `[
  {"id":1,"name":"London","region":"City of London, Greater London","country":"United Kingdom","lat":51.52,"lon":-0.11},
  {"id":2,"name":"London","region":"Ontario","country":"Canada","lat":42.98,"lon":-81.25},
  {"id":3,"name":"Londrina","region":"Parana","country":"Brazil","lat":-23.3,"lon":-51.15}
]`

const currentBody = `{
  "location": {"name":"London","region":"City of London","country":"UK","localtime":"2026-03-01 12:30"},
  "current": {
    "temp_c": 11.0, "temp_f": 51.8,
    "condition": {"text":"Partly cloudy","code":1003},
    "wind_mph": 9.4, "wind_kph": 15.1,
    "humidity": 72,
    "feelslike_c": 9.2, "feelslike_f": 48.6
  }
}`

type recordingObserver struct {
	calls atomic.Int32
}

func (o *recordingObserver) Observe(string, time.Duration) { o.calls.Add(1) }

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithRetryDelay(time.Millisecond)}, opts...)
	return NewClient(srv.URL+"/v1", "test-key", opts...)
}

func TestNewClient_NormalizesBaseURL(t *testing.T) {
	assert.Equal(t, "http://x/v1/", NewClient("http://x/v1", "k").BaseURL())
	assert.Equal(t, "http://x/v1/", NewClient("http://x/v1/", "k").BaseURL())
}

func TestClient_requestURL(t *testing.T) {
	c := NewClient("http://x/v1/", "abc")
	assert.Equal(t, "http://x/v1/search.json?key=abc&q=san+jos%C3%A9", c.requestURL(EndpointSearch, "san josé"))
}

func TestClient_Search(t *testing.T) {
	obs := &recordingObserver{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "lon", r.URL.Query().Get("q"))
		assert.Equal(t, version.UserAgent(), r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	}, WithObserver(obs))

	locs, err := c.Search(context.Background(), "lon")
	require.NoError(t, err)
	require.Len(t, locs, 3)
	assert.Equal(t, "London", locs[0].Name)
	assert.Equal(t, "United Kingdom", locs[0].Country)
	assert.InDelta(t, 51.52, locs[0].Lat, 1e-9)
	assert.Equal(t, "Ontario", locs[1].Region)
	assert.Equal(t, "Londrina", locs[2].Name)
	assert.Equal(t, int32(1), obs.calls.Load())

	assert.Equal(t, []string{"London", "Londrina"}, UniqueNames(locs))
}

func TestClient_Search_SkipsNamelessItems(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"Paris"},{"id":7},{"name":42}]`))
	})

	locs, err := c.Search(context.Background(), "par")
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris"}, UniqueNames(locs))
}

func TestClient_Search_NotArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Paris"}`))
	})

	_, err := c.Search(context.Background(), "par")
	require.Error(t, err)
	assert.Equal(t, "DECODE_ERROR", serrors.CodeOf(err))
}

func TestClient_Search_InvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"name":`))
	})

	_, err := c.Search(context.Background(), "par")
	require.Error(t, err)
	assert.Equal(t, "DECODE_ERROR", serrors.CodeOf(err))
}

func TestClient_Current(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/current.json", r.URL.Path)
		assert.Equal(t, "London", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(currentBody))
	})

	snap, err := c.Current(context.Background(), "London")
	require.NoError(t, err)
	assert.Equal(t, &Snapshot{
		City:                  "London",
		Condition:             "Partly cloudy",
		LocalTime:             "2026-03-01 12:30",
		TemperatureCelsius:    11.0,
		TemperatureFahrenheit: 51.8,
		FeelsLikeCelsius:      9.2,
		FeelsLikeFahrenheit:   48.6,
		Humidity:              72,
		WindSpeedKph:          15.1,
		WindSpeedMph:          9.4,
	}, snap)
}

func TestClient_Current_MissingSections(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"location":{"name":"X"}}`))
	})

	_, err := c.Current(context.Background(), "X")
	require.Error(t, err)
	assert.Equal(t, "DECODE_ERROR", serrors.CodeOf(err))
}

func TestClient_APIErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
	}, WithRetries(3))

	_, err := c.Current(context.Background(), "Nowhere")
	require.Error(t, err)

	var apiErr *serrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, EndpointCurrent, apiErr.Endpoint)
	assert.Contains(t, apiErr.Error(), "No matching location found.")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(searchBody))
	}, WithRetries(2))

	locs, err := c.Search(context.Background(), "lon")
	require.NoError(t, err)
	assert.Len(t, locs, 3)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, WithRetries(1))

	_, err := c.Search(context.Background(), "lon")
	require.Error(t, err)
	assert.Equal(t, "API_ERROR", serrors.CodeOf(err))
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(searchBody))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Search(ctx, "lon")
	assert.Error(t, err)
}

func TestUniqueNames(t *testing.T) {
	locs := []Location{{Name: "Cart"}, {Name: "Draw"}, {Name: "Cart"}, {Name: "Drama"}, {Name: "Draw"}}
	assert.Equal(t, []string{"Cart", "Draw", "Drama"}, UniqueNames(locs))
	assert.Empty(t, UniqueNames(nil))
}
