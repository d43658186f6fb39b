package rate

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the spacing kept between consecutive submissions to a
// single RPC endpoint.
const DefaultInterval = 600 * time.Millisecond

// Pacer spaces out operations.
type Pacer interface {
	// Wait blocks until the next operation may proceed or ctx is done.
	Wait(ctx context.Context) error
}

type intervalPacer struct {
	limiter *rate.Limiter
}

// NewIntervalPacer returns a Pacer that lets one operation through
// immediately and every following one at most once per interval.
func NewIntervalPacer(interval time.Duration) Pacer {
	if interval <= 0 {
		return &NoPacer{}
	}

	return &intervalPacer{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Wait implements Pacer.Wait.
func (p *intervalPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// NoPacer never delays operations
type NoPacer struct {
}

// Wait implements Pacer.Wait.
func (n *NoPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}
