package generation

import (
	"context"
	"time"

	"github.com/scambait/honeypot/pkg/logging"
)

// FallbackGenerator wraps a primary generator with a bounded timeout
// and a scripted fallback. A slow, failing, or guard-rejected primary
// never stalls the reply path: the caller always gets a reply and a
// nil error.
type FallbackGenerator struct {
	primary  Generator
	scripted Generator
	timeout  time.Duration
	logger   *logging.Logger
}

// NewFallbackGenerator builds the wrapper. primary may be nil, in
// which case every reply is scripted.
func NewFallbackGenerator(primary Generator, timeout time.Duration, logger *logging.Logger) *FallbackGenerator {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &FallbackGenerator{
		primary:  primary,
		scripted: Scripted{},
		timeout:  timeout,
		logger:   logger,
	}
}

// Generate renders the reply, degrading to the scripted library on
// any primary failure. The returned error is always nil.
func (f *FallbackGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if f.primary == nil {
		return f.scripted.Generate(ctx, req)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	reply, err := f.primary.Generate(ctx, req)
	if err != nil {
		f.logger.Warn("primary generator failed, using scripted reply",
			"error", err,
			"turn", req.Turn,
			"phase", req.Phase,
		)
		return f.scripted.Generate(ctx, req)
	}
	return reply, nil
}

// UsedPrimary reports whether a primary model is configured at all;
// health reporting uses this.
func (f *FallbackGenerator) UsedPrimary() bool {
	return f.primary != nil
}
