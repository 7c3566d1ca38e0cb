package settle

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/ygrebnov/settle/metrics"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := newConfig()
	require.NoError(t, err)

	require.Equal(t, zerolog.Disabled, cfg.Logger.GetLevel())
	require.IsType(t, metrics.NoopProvider{}, cfg.Metrics)
	require.False(t, cfg.ErrorTagging)
	require.Zero(t, cfg.RateLimit)
	require.Nil(t, cfg.limiter())
	require.Equal(t, RetryPolicy{Attempts: 1}, cfg.Retry)
	require.Equal(t, uint(1024), cfg.StreamBufferSize)
}

func TestOptions(t *testing.T) {
	p := metrics.NewBasicProvider()
	logger := zerolog.New(nil).Level(zerolog.InfoLevel)
	pol := RetryPolicy{Attempts: 3, Initial: time.Millisecond, Max: time.Second}

	cfg, err := newConfig(
		WithLogger(logger),
		WithMetrics(p),
		WithErrorTagging(),
		WithRateLimit(100, 5),
		WithRetry(pol),
		WithStreamBuffer(8),
		nil,
	)
	require.NoError(t, err)

	require.Equal(t, zerolog.InfoLevel, cfg.Logger.GetLevel())
	require.Same(t, p, cfg.Metrics)
	require.True(t, cfg.ErrorTagging)
	require.Equal(t, rate.Limit(100), cfg.RateLimit)
	require.Equal(t, 5, cfg.RateBurst)
	require.Equal(t, pol, cfg.Retry)
	require.Equal(t, uint(8), cfg.StreamBufferSize)

	lim := cfg.limiter()
	require.NotNil(t, lim)
	require.Equal(t, 5, lim.Burst())
	require.NotSame(t, lim, cfg.limiter(), "every call gets its own limiter")
}

func TestOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"nil metrics", WithMetrics(nil)},
		{"zero rate", WithRateLimit(0, 1)},
		{"negative rate", WithRateLimit(-5, 1)},
		{"zero burst", WithRateLimit(10, 0)},
		{"zero attempts", WithRetry(RetryPolicy{Attempts: 0})},
		{"negative initial", WithRetry(RetryPolicy{Attempts: 2, Initial: -time.Second})},
		{"negative max", WithRetry(RetryPolicy{Attempts: 2, Max: -time.Second})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := newConfig(tt.opt)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if cfg != nil {
				t.Fatalf("expected nil config on error")
			}
		})
	}
}

func TestValidateConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Metrics = nil
	require.ErrorIs(t, validateConfig(&cfg), ErrInvalidConfig)

	cfg = defaultConfig()
	cfg.RateLimit = 10
	cfg.RateBurst = 0
	require.ErrorIs(t, validateConfig(&cfg), ErrInvalidConfig)

	cfg = defaultConfig()
	cfg.Retry.Attempts = 0
	require.ErrorIs(t, validateConfig(&cfg), ErrInvalidConfig)

	cfg = defaultConfig()
	require.NoError(t, validateConfig(&cfg))
}
