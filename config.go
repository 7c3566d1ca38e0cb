package settle

import (
	"strconv"

	"github.com/rs/zerolog"
	"github.com/ygrebnov/errorc"
	"golang.org/x/time/rate"

	"github.com/ygrebnov/settle/metrics"
)

// config holds per-call combinator configuration.
type config struct {
	// Logger receives lifecycle events at Debug level and recovered panics at Warn level.
	// Default: zerolog.Nop()
	Logger zerolog.Logger

	// Metrics supplies the instruments recorded for every executed item.
	// Default: metrics.NoopProvider
	Metrics metrics.Provider

	// ErrorTagging wraps item errors with the item index and the batch ID.
	// Default: false (disabled).
	ErrorTagging bool

	// RateLimit throttles operation starts, in operations per second.
	// Zero means unthrottled: a freed slot is refilled immediately.
	// Default: 0
	RateLimit rate.Limit

	// RateBurst is the limiter bucket size used when RateLimit > 0.
	// Default: 1
	RateBurst int

	// Retry controls how ReverseOrder retries a failing operation.
	// Default: one attempt, no backoff.
	Retry RetryPolicy

	// StreamBufferSize defines the size of the OrderedStream output and
	// completion-events buffers.
	// Default: 1024.
	StreamBufferSize uint
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		Logger:       zerolog.Nop(),
		Metrics:      metrics.NewNoopProvider(),
		ErrorTagging: false,
		RateLimit:    0,
		RateBurst:    1,
		Retry:        RetryPolicy{Attempts: 1},

		StreamBufferSize: 1024,
	}
}

// validateConfig checks invariants that individual options cannot see on their own.
func validateConfig(cfg *config) error {
	if cfg.Metrics == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("metrics", "provider must not be nil"))
	}
	if cfg.RateLimit < 0 || (cfg.RateLimit > 0 && cfg.RateBurst <= 0) {
		return errorc.With(ErrInvalidConfig, errorc.String("rate_burst", strconv.Itoa(cfg.RateBurst)))
	}
	return cfg.Retry.validate()
}

// newConfig applies opts on top of the defaults. Nil options are skipped;
// the first failing option aborts with its error.
func newConfig(opts ...Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// limiter returns a fresh start limiter for one call, or nil when unthrottled.
func (c *config) limiter() *rate.Limiter {
	if c.RateLimit == 0 {
		return nil
	}
	return rate.NewLimiter(c.RateLimit, c.RateBurst)
}

// Option configures a combinator call.
type Option func(*config) error

// WithLogger sets the structured logger used for lifecycle and panic events.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *config) error { cfg.Logger = l; return nil }
}

// WithMetrics records per-item counters, in-flight gauge and duration histogram
// into the given provider.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// WithErrorTagging enables wrapping item errors with the item index and batch ID.
func WithErrorTagging() Option {
	return func(cfg *config) error { cfg.ErrorTagging = true; return nil }
}

// WithRateLimit throttles operation starts to perSecond, allowing bursts of burst.
// Both values must be positive.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(cfg *config) error {
		if perSecond <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithRateLimit requires perSecond > 0"))
		}
		if burst <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithRateLimit requires burst > 0"))
		}
		cfg.RateLimit = rate.Limit(perSecond)
		cfg.RateBurst = burst
		return nil
	}
}

// WithRetry sets the retry policy used by ReverseOrder.
func WithRetry(p RetryPolicy) Option {
	return func(cfg *config) error {
		if err := p.validate(); err != nil {
			return err
		}
		cfg.Retry = p
		return nil
	}
}

// WithStreamBuffer sets the OrderedStream buffer size (default 1024). Zero is unbuffered.
func WithStreamBuffer(size uint) Option {
	return func(cfg *config) error { cfg.StreamBufferSize = size; return nil }
}
