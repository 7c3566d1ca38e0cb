package settle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape accepted by LoadOptions.
//
//	error_tagging: true
//	stream_buffer: 64
//	rate_limit:
//	  per_second: 50
//	  burst: 5
//	retry:
//	  attempts: 3
//	  initial: 200ms
//	  max: 5s
type fileConfig struct {
	ErrorTagging bool  `yaml:"error_tagging"`
	StreamBuffer *uint `yaml:"stream_buffer"`

	RateLimit *struct {
		PerSecond float64 `yaml:"per_second"`
		Burst     int     `yaml:"burst"`
	} `yaml:"rate_limit"`

	Retry *struct {
		Attempts int           `yaml:"attempts"`
		Initial  time.Duration `yaml:"initial"`
		Max      time.Duration `yaml:"max"`
	} `yaml:"retry"`
}

// LoadOptions parses a YAML document into options. Unknown keys are rejected.
// An empty document yields no options. Values are validated the same way as the
// corresponding With* options; failures wrap ErrInvalidConfig.
func LoadOptions(data []byte) ([]Option, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var opts []Option
	if fc.ErrorTagging {
		opts = append(opts, WithErrorTagging())
	}
	if fc.StreamBuffer != nil {
		opts = append(opts, WithStreamBuffer(*fc.StreamBuffer))
	}
	if fc.RateLimit != nil {
		opts = append(opts, WithRateLimit(fc.RateLimit.PerSecond, fc.RateLimit.Burst))
	}
	if fc.Retry != nil {
		opts = append(opts, WithRetry(RetryPolicy{
			Attempts: fc.Retry.Attempts,
			Initial:  fc.Retry.Initial,
			Max:      fc.Retry.Max,
		}))
	}

	// surface option errors now rather than at the first combinator call
	if _, err := newConfig(opts...); err != nil {
		return nil, err
	}
	return opts, nil
}
