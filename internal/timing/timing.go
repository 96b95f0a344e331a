// Package timing measures the phases of a single command run
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Timer tracks elapsed time at labelled checkpoints
type Timer struct {
	now   func() time.Time
	start time.Time
	marks map[string]time.Duration
	order []string
}

// NewTimer creates a timer started now
func NewTimer() *Timer {
	return newTimerWithClock(time.Now)
}

func newTimerWithClock(now func() time.Time) *Timer {
	return &Timer{
		now:   now,
		start: now(),
		marks: make(map[string]time.Duration),
	}
}

// Mark records the time since start under label
func (t *Timer) Mark(label string) time.Duration {
	elapsed := t.now().Sub(t.start)
	if _, seen := t.marks[label]; !seen {
		t.order = append(t.order, label)
	}
	t.marks[label] = elapsed
	return elapsed
}

// Elapsed returns total elapsed time since timer creation
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Get returns the duration for a specific mark
func (t *Timer) Get(label string) (time.Duration, bool) {
	d, ok := t.marks[label]
	return d, ok
}

// Summary formats the total and every mark in milliseconds,
// e.g. "Total: 12.000ms (config: 1.000ms, lookup: 11.000ms)"
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %.3fms", millis(t.Elapsed()))

	if len(t.order) > 0 {
		b.WriteString(" (")
		for i, label := range t.order {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %.3fms", label, millis(t.marks[label]))
		}
		b.WriteString(")")
	}
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
