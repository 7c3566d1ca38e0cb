// Package metrics defines the minimal instrument surface recorded by settle
// combinators, with an in-memory BasicProvider and a discarding NoopProvider.
// Adapt Provider to your metrics backend to export the measurements.
package metrics

// Provider constructs instruments used to record metrics.
// Implementations must be safe for concurrent use.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter
	Histogram(name string, opts ...InstrumentOption) Histogram
}

// Counter records monotonic counts.
type Counter interface {
	Add(n int64)
}

// UpDownCounter records values that can move up or down (e.g., items in flight).
type UpDownCounter interface {
	Add(n int64)
}

// Histogram records a distribution of float64 measurements (e.g., durations in seconds).
type Histogram interface {
	Record(v float64)
}

// InstrumentConfig carries optional instrument metadata. It's advisory only.
type InstrumentConfig struct {
	Description string
	Unit        string
	// Attributes are static key-value pairs associated with the instrument itself.
	// Keep cardinality bounded.
	Attributes map[string]string
}

// InstrumentOption mutates InstrumentConfig.
type InstrumentOption func(*InstrumentConfig)

// WithDescription sets an advisory description for the instrument.
func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

// WithUnit sets an advisory unit for the instrument (e.g., "1", "seconds").
func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}

// WithAttributes attaches static attributes to the instrument.
func WithAttributes(attrs map[string]string) InstrumentOption {
	return func(c *InstrumentConfig) {
		if len(attrs) == 0 {
			return
		}
		if c.Attributes == nil {
			c.Attributes = make(map[string]string, len(attrs))
		}
		for k, v := range attrs {
			c.Attributes[k] = v
		}
	}
}
