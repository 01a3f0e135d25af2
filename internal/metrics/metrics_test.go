package metrics

import "testing"

func TestCounterAddIgnoresNegativeValues(t *testing.T) {
	c := NewCounter("gates_built")
	c.Add(5)
	c.Add(-3)
	c.Inc()
	if got := c.Value(); got != 6 {
		t.Fatalf("Value() = %d, want 6", got)
	}
	if c.Name() != "gates_built" {
		t.Fatalf("Name() = %q, want gates_built", c.Name())
	}
}

func TestGaugeSetOverwrites(t *testing.T) {
	g := NewGauge("wires_after_recycle")
	g.Set(10)
	g.Set(7)
	if got := g.Value(); got != 7 {
		t.Fatalf("Value() = %d, want 7", got)
	}
}

func TestHistogramMeanAndCount(t *testing.T) {
	h := NewHistogram("compile_duration_ms")
	if got := h.Mean(); got != 0 {
		t.Fatalf("Mean() on an empty histogram = %f, want 0", got)
	}
	h.Observe(2)
	h.Observe(4)
	h.Observe(6)
	if got := h.Count(); got != 3 {
		t.Fatalf("Count() = %d, want 3", got)
	}
	if got := h.Mean(); got != 4 {
		t.Fatalf("Mean() = %f, want 4", got)
	}
}

func TestTimerStopRecordsIntoHistogram(t *testing.T) {
	h := NewHistogram("compile_duration_ms")
	timer := NewTimer(h)
	timer.Stop()
	if h.Count() != 1 {
		t.Fatalf("expected Stop to record one observation, got %d", h.Count())
	}
}

func TestNewPipelineNamesEveryMetric(t *testing.T) {
	p := NewPipeline()
	p.GatesBuilt.Add(3)
	p.WiresBeforeRecyc.Set(10)
	p.WiresAfterRecyc.Set(6)
	p.WiresRecycled.Set(4)

	if p.GatesBuilt.Value() != 3 || p.WiresBeforeRecyc.Value() != 10 ||
		p.WiresAfterRecyc.Value() != 6 || p.WiresRecycled.Value() != 4 {
		t.Fatalf("unexpected pipeline values: %+v", p)
	}
	if p.CompileDuration.Name() != "compile_duration_ms" {
		t.Fatalf("unexpected histogram name: %q", p.CompileDuration.Name())
	}
	if p.GatesBuilt.Name() != "gates_built" || p.WiresBeforeRecyc.Name() != "wires_before_recycle" ||
		p.WiresAfterRecyc.Name() != "wires_after_recycle" || p.WiresRecycled.Name() != "wires_recycled" {
		t.Fatalf("unexpected metric names: %q %q %q %q", p.GatesBuilt.Name(), p.WiresBeforeRecyc.Name(),
			p.WiresAfterRecyc.Name(), p.WiresRecycled.Name())
	}
}
