// Package metrics provides lightweight, zero-dependency metrics primitives
// for the compiler pipeline. Counter and Gauge use atomic operations for
// lock-free concurrent access; Histogram uses a mutex. Repurposed from a
// node/chain statistics package for compile-time statistics instead: the
// pipeline itself runs single-threaded, but the primitives stay
// atomic-backed so a caller embedding the compiler in a concurrent build
// system doesn't need to add its own locking.
package metrics

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// ---------------------------------------------------------------------------
// Counter
// ---------------------------------------------------------------------------

// Counter is a monotonically incrementing counter.
type Counter struct {
	name  string
	value atomic.Int64
}

// NewCounter returns a new Counter with the given name.
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc increments the counter by 1.
func (c *Counter) Inc() { c.value.Add(1) }

// Add increments the counter by n. Negative values are silently ignored
// because counters are monotonically increasing.
func (c *Counter) Add(n int64) {
	if n > 0 {
		c.value.Add(n)
	}
}

// Value returns the current counter value.
func (c *Counter) Value() int64 { return c.value.Load() }

// Name returns the metric name.
func (c *Counter) Name() string { return c.name }

// ---------------------------------------------------------------------------
// Gauge
// ---------------------------------------------------------------------------

// Gauge is a value that can go up and down.
type Gauge struct {
	name  string
	value atomic.Int64
}

// NewGauge returns a new Gauge with the given name.
func NewGauge(name string) *Gauge {
	return &Gauge{name: name}
}

// Set sets the gauge to the given value.
func (g *Gauge) Set(v int64) { g.value.Store(v) }

// Value returns the current gauge value.
func (g *Gauge) Value() int64 { return g.value.Load() }

// Name returns the metric name.
func (g *Gauge) Name() string { return g.name }

// ---------------------------------------------------------------------------
// Histogram
// ---------------------------------------------------------------------------

// Histogram tracks the distribution of observed values: count, sum, min,
// and max.
type Histogram struct {
	name  string
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

// NewHistogram returns a new Histogram with the given name.
func NewHistogram(name string) *Histogram {
	return &Histogram{
		name: name,
		min:  math.MaxFloat64,
		max:  -math.MaxFloat64,
	}
}

// Observe records a value.
func (h *Histogram) Observe(v float64) {
	h.mu.Lock()
	h.count++
	h.sum += v
	if v < h.min {
		h.min = v
	}
	if v > h.max {
		h.max = v
	}
	h.mu.Unlock()
}

// Count returns the number of observations.
func (h *Histogram) Count() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// Mean returns the arithmetic mean of all observations. Returns 0 when no
// values have been observed.
func (h *Histogram) Mean() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.count == 0 {
		return 0
	}
	return h.sum / float64(h.count)
}

// Name returns the metric name.
func (h *Histogram) Name() string { return h.name }

// ---------------------------------------------------------------------------
// Timer
// ---------------------------------------------------------------------------

// Timer is a convenience helper for timing operations. It records the
// elapsed duration (in milliseconds) into an associated Histogram when
// Stop is called.
type Timer struct {
	start time.Time
	hist  *Histogram
}

// NewTimer starts a new timer that will record into h when stopped.
func NewTimer(h *Histogram) *Timer {
	return &Timer{start: time.Now(), hist: h}
}

// Stop records the elapsed time in milliseconds into the associated
// histogram and returns the duration.
func (t *Timer) Stop() time.Duration {
	d := time.Since(t.start)
	if t.hist != nil {
		t.hist.Observe(float64(d.Milliseconds()))
	}
	return d
}

// ---------------------------------------------------------------------------
// Pipeline registers one fixed set of compile-time metrics.
// ---------------------------------------------------------------------------

// Pipeline bundles the counters and timer a single compilation reports.
// Unlike an open-ended registry built for an arbitrary set of chain/RPC
// metrics named at call sites across a long-running process, a compile
// run's metric set is small and fixed, so Pipeline just holds them as
// named fields.
type Pipeline struct {
	GatesBuilt       *Counter
	WiresBeforeRecyc *Gauge
	WiresAfterRecyc  *Gauge
	WiresRecycled    *Gauge
	CompileDuration  *Histogram
}

// NewPipeline returns a fresh, zeroed metric set for one compile run.
func NewPipeline() *Pipeline {
	return &Pipeline{
		GatesBuilt:       NewCounter("gates_built"),
		WiresBeforeRecyc: NewGauge("wires_before_recycle"),
		WiresAfterRecyc:  NewGauge("wires_after_recycle"),
		WiresRecycled:    NewGauge("wires_recycled"),
		CompileDuration:  NewHistogram("compile_duration_ms"),
	}
}
