package llm

import (
	"context"
	"time"
)

// TimeoutProvider bounds each Generate call, retries included. Callers
// never set deadlines themselves; the bound lives here so every path
// through the app gets it.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps inner with a per-call deadline. A zero timeout
// returns inner unchanged.
func WithTimeout(inner Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return inner
	}
	return &TimeoutProvider{inner: inner, timeout: timeout}
}

func (p *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.inner.Generate(ctx, req)
}

func (p *TimeoutProvider) ModelID() string {
	return p.inner.ModelID()
}
