// Package metrics records upstream request latencies with HDR histograms.
package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	minLatencyMicros = 1
	maxLatencyMicros = int64(60 * time.Second / time.Microsecond)
	sigFigs          = 3
)

// Summary holds latency quantiles for one endpoint, in milliseconds
type Summary struct {
	Count int64   `json:"count"`
	P50   float64 `json:"p50_ms"`
	P95   float64 `json:"p95_ms"`
	P99   float64 `json:"p99_ms"`
	Max   float64 `json:"max_ms"`
}

// Recorder keeps one histogram per endpoint. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	hists map[string]*hdrhistogram.Histogram
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{hists: make(map[string]*hdrhistogram.Histogram)}
}

// Observe records one request latency for endpoint.
// Values outside the histogram range are clamped.
func (r *Recorder) Observe(endpoint string, d time.Duration) {
	if r == nil {
		return
	}
	v := d.Microseconds()
	if v < minLatencyMicros {
		v = minLatencyMicros
	}
	if v > maxLatencyMicros {
		v = maxLatencyMicros
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.hists[endpoint]
	if !ok {
		h = hdrhistogram.New(minLatencyMicros, maxLatencyMicros, sigFigs)
		r.hists[endpoint] = h
	}
	_ = h.RecordValue(v)
}

// Endpoints returns the observed endpoint names, sorted
func (r *Recorder) Endpoints() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.hists))
	for name := range r.hists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns the current quantiles for every endpoint
func (r *Recorder) Snapshot() map[string]Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Summary, len(r.hists))
	for name, h := range r.hists {
		out[name] = summarize(h)
	}
	return out
}

func summarize(h *hdrhistogram.Histogram) Summary {
	s := Summary{Count: h.TotalCount()}
	if s.Count == 0 {
		return s
	}
	s.P50 = toMillis(h.ValueAtQuantile(50.0))
	s.P95 = toMillis(h.ValueAtQuantile(95.0))
	s.P99 = toMillis(h.ValueAtQuantile(99.0))
	s.Max = toMillis(h.Max())
	return s
}

func toMillis(micros int64) float64 {
	return float64(micros) / 1e3
}
