package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Empty(t *testing.T) {
	r := NewRecorder()
	assert.Empty(t, r.Snapshot())
	assert.Empty(t, r.Endpoints())
}

func TestRecorder_Observe(t *testing.T) {
	r := NewRecorder()

	for i := 1; i <= 100; i++ {
		r.Observe("search.json", time.Duration(i)*time.Millisecond)
	}
	r.Observe("current.json", 250*time.Millisecond)

	snap := r.Snapshot()
	require.Contains(t, snap, "search.json")
	require.Contains(t, snap, "current.json")

	s := snap["search.json"]
	assert.Equal(t, int64(100), s.Count)
	assert.InDelta(t, 50, s.P50, 1)
	assert.InDelta(t, 95, s.P95, 1)
	assert.InDelta(t, 99, s.P99, 1)
	assert.InDelta(t, 100, s.Max, 1)

	assert.Equal(t, int64(1), snap["current.json"].Count)
	assert.Equal(t, []string{"current.json", "search.json"}, r.Endpoints())
}

func TestRecorder_Clamps(t *testing.T) {
	r := NewRecorder()
	r.Observe("x", 0)
	r.Observe("x", 2*time.Minute)

	s := r.Snapshot()["x"]
	assert.Equal(t, int64(2), s.Count)
	assert.InDelta(t, 60000, s.Max, 60)
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() { r.Observe("x", time.Millisecond) })
}

func TestRecorder_Concurrent(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Observe("search.json", time.Millisecond)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(800), r.Snapshot()["search.json"].Count)
}
