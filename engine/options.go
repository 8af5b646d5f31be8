package engine

// ============================================================================
// ENGINE OPTIONS — Functional options for Apply()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	TopN          int // rows in the top-by-rating table
	HistogramBins int // bins in the rating histogram
}

// WithTopN sets how many movies TopByRatingThenVotes keeps. Values below 1
// are ignored.
func WithTopN(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.TopN = n
		}
	}
}

// WithHistogramBins sets the rating histogram bin count. Values below 1 are
// ignored.
func WithHistogramBins(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.HistogramBins = n
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		TopN:          10,
		HistogramBins: 10,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
