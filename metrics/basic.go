package metrics

import (
	"math"
	"sync"
	"sync/atomic"
)

// BasicProvider is a simple in-memory implementation of Provider.
// It is concurrency-safe and suitable for tests, examples, and lightweight apps.
// Instruments are created on demand by name and reused for the same name.
type BasicProvider struct {
	counters   registry[*BasicCounter]
	updowns    registry[*BasicUpDownCounter]
	histograms registry[*BasicHistogram]

	metaMu sync.RWMutex
	meta   map[string]InstrumentConfig
}

// NewBasicProvider constructs a new BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{meta: make(map[string]InstrumentConfig)}
}

// Counter returns a monotonic counter instrument for the given name (created once).
func (p *BasicProvider) Counter(name string, opts ...InstrumentOption) Counter {
	return p.counters.get(name, func() *BasicCounter {
		p.remember(name, opts)
		return &BasicCounter{}
	})
}

// UpDownCounter returns an up/down counter instrument for the given name (created once).
func (p *BasicProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	return p.updowns.get(name, func() *BasicUpDownCounter {
		p.remember(name, opts)
		return &BasicUpDownCounter{}
	})
}

// Histogram returns a histogram instrument for the given name (created once).
func (p *BasicProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	return p.histograms.get(name, func() *BasicHistogram {
		p.remember(name, opts)
		return &BasicHistogram{min: math.Inf(1), max: math.Inf(-1)}
	})
}

// Meta returns the advisory configuration recorded when the named instrument was created.
func (p *BasicProvider) Meta(name string) (InstrumentConfig, bool) {
	p.metaMu.RLock()
	defer p.metaMu.RUnlock()
	cfg, ok := p.meta[name]
	return cfg, ok
}

// Snapshot returns the current values of every instrument created so far.
func (p *BasicProvider) Snapshot() Snapshot {
	s := Snapshot{
		Counters:       make(map[string]int64),
		UpDownCounters: make(map[string]int64),
		Histograms:     make(map[string]HistSnapshot),
	}
	p.counters.each(func(name string, c *BasicCounter) { s.Counters[name] = c.Snapshot() })
	p.updowns.each(func(name string, u *BasicUpDownCounter) { s.UpDownCounters[name] = u.Snapshot() })
	p.histograms.each(func(name string, h *BasicHistogram) { s.Histograms[name] = h.Snapshot() })
	return s
}

func (p *BasicProvider) remember(name string, opts []InstrumentOption) {
	cfg := applyOptions(opts)
	p.metaMu.Lock()
	p.meta[name] = cfg
	p.metaMu.Unlock()
}

// Snapshot is a point-in-time copy of all BasicProvider instruments, keyed by name.
type Snapshot struct {
	Counters       map[string]int64
	UpDownCounters map[string]int64
	Histograms     map[string]HistSnapshot
}

// registry is a name-keyed get-or-create store of instruments.
type registry[I any] struct {
	mu    sync.RWMutex
	items map[string]I
}

func (r *registry[I]) get(name string, create func() I) I {
	r.mu.RLock()
	i, ok := r.items[name]
	r.mu.RUnlock()
	if ok {
		return i
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// re-check after acquiring write lock
	if i, ok = r.items[name]; ok {
		return i
	}
	if r.items == nil {
		r.items = make(map[string]I)
	}
	i = create()
	r.items[name] = i
	return i
}

func (r *registry[I]) each(fn func(string, I)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, i := range r.items {
		fn(name, i)
	}
}

// applyOptions builds InstrumentConfig from options.
func applyOptions(opts []InstrumentOption) InstrumentConfig {
	var cfg InstrumentConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}

// BasicCounter is a thread-safe monotonic counter.
type BasicCounter struct {
	val atomic.Int64
}

// Add increments the counter by n.
func (c *BasicCounter) Add(n int64) { c.val.Add(n) }

// Snapshot returns the current value.
func (c *BasicCounter) Snapshot() int64 { return c.val.Load() }

// BasicUpDownCounter is a thread-safe up/down counter that also remembers its peak.
type BasicUpDownCounter struct {
	val  atomic.Int64
	peak atomic.Int64
}

// Add adds n (positive or negative) to the current value.
func (u *BasicUpDownCounter) Add(n int64) {
	v := u.val.Add(n)
	for {
		p := u.peak.Load()
		if v <= p || u.peak.CompareAndSwap(p, v) {
			return
		}
	}
}

// Snapshot returns the current value.
func (u *BasicUpDownCounter) Snapshot() int64 { return u.val.Load() }

// Peak returns the highest value observed so far.
func (u *BasicUpDownCounter) Peak() int64 { return u.peak.Load() }

// BasicHistogram is a thread-safe histogram that tracks count, sum, min, and max.
// It does not maintain buckets.
type BasicHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

// Record adds a measurement to the histogram.
func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += v
	h.min = math.Min(h.min, v)
	h.max = math.Max(h.max, v)
}

// HistSnapshot is an immutable snapshot of a BasicHistogram.
type HistSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

// Snapshot returns a copy of the histogram state at the time of call.
func (h *BasicHistogram) Snapshot() HistSnapshot {
	h.mu.Lock()
	s := HistSnapshot{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
	h.mu.Unlock()
	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}
